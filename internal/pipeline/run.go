package pipeline

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/gofrs/flock"

	"bds-pipeline/internal/bds"
	"bds-pipeline/internal/census"
	"bds-pipeline/internal/events"
	"bds-pipeline/internal/store"
)

// ErrRunInProgress means another process (or the scheduler) holds the run
// lock for this data dir.
var ErrRunInProgress = errors.New("pipeline run already in progress")

type Runner struct {
	DB      *sql.DB
	Client  *census.Client
	Policy  bds.MalformedPolicy
	DataDir string
	Hub     *events.Hub // optional

	status atomic.Value // Status
}

func (r *Runner) Status() Status {
	if v := r.status.Load(); v != nil {
		return v.(Status)
	}
	return Status{}
}

func (r *Runner) setStatus(st Status) { r.status.Store(st) }

func (r *Runner) publish(typ string, data any) {
	if r.Hub != nil {
		r.Hub.Publish(events.MakeEvent("", typ, 1, data))
	}
}

// RunOnce runs extract, transform, load as one sequential pass. Any stage
// failing fails the run; the stored tables keep their previous contents
// because each replace commits atomically.
func (r *Runner) RunOnce(ctx context.Context) (RowCounts, error) {
	lock := flock.New(filepath.Join(r.DataDir, "bdspipe.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		return RowCounts{}, fmt.Errorf("run lock: %w", err)
	}
	if !locked {
		return RowCounts{}, ErrRunInProgress
	}
	defer func() { _ = lock.Unlock() }()

	now := time.Now().Format(time.RFC3339)
	st := r.Status()
	st.Running = true
	st.LastRunAt = now
	st.LastError = ""
	r.setStatus(st)
	r.publish(events.TypeRunStarted, nil)

	counts, err := r.run(ctx)

	st = r.Status()
	st.Running = false
	if err != nil {
		st.LastError = err.Error()
		r.setStatus(st)
		r.publish(events.TypeRunFailed, map[string]any{"error": err.Error()})
		return RowCounts{}, err
	}
	st.LastOkAt = time.Now().Format(time.RFC3339)
	st.Rows = counts
	r.setStatus(st)
	r.publish(events.TypeRunFinished, counts)
	return counts, nil
}

func (r *Runner) run(ctx context.Context) (RowCounts, error) {
	// --- extract

	log.Printf("[extract] fetching national time series")
	rawNational, err := r.Client.FetchNational(ctx)
	if err != nil {
		return RowCounts{}, err
	}
	log.Printf("[extract] national rows=%d", len(rawNational.Rows))

	log.Printf("[extract] fetching by firm age")
	rawFirmAge, err := r.Client.FetchByFirmAge(ctx)
	if err != nil {
		return RowCounts{}, err
	}
	log.Printf("[extract] firm age rows=%d", len(rawFirmAge.Rows))

	log.Printf("[extract] fetching by state")
	rawState, err := r.Client.FetchByState(ctx)
	if err != nil {
		return RowCounts{}, err
	}
	log.Printf("[extract] state rows=%d", len(rawState.Rows))

	if err := writeRawCSV(filepath.Join(r.DataDir, "raw_national.csv"), rawNational); err != nil {
		return RowCounts{}, err
	}
	if err := writeRawCSV(filepath.Join(r.DataDir, "raw_by_firm_age.csv"), rawFirmAge); err != nil {
		return RowCounts{}, err
	}
	if err := writeRawCSV(filepath.Join(r.DataDir, "raw_by_state.csv"), rawState); err != nil {
		return RowCounts{}, err
	}
	r.publish(events.TypeRunStage, map[string]any{"stage": "extract"})

	// --- transform
	// Firm age goes first: the national series borrows its FAGE=10 firm
	// counts for the birth rate.

	byAge, err := bds.TransformFirmAge(rawFirmAge, r.Policy)
	if err != nil {
		return RowCounts{}, fmt.Errorf("transform: %w", err)
	}
	national, err := bds.TransformNational(rawNational, r.Policy)
	if err != nil {
		return RowCounts{}, fmt.Errorf("transform: %w", err)
	}
	national = bds.AddFirmBirthRates(national, byAge)
	byState, err := bds.TransformState(rawState, r.Policy)
	if err != nil {
		return RowCounts{}, fmt.Errorf("transform: %w", err)
	}
	log.Printf("[transform] national=%d firm_age=%d state=%d", len(national), len(byAge), len(byState))

	if err := writeTableCSV(filepath.Join(r.DataDir, "clean_national.csv"), bds.NationalCSVHeader, records(national)); err != nil {
		return RowCounts{}, err
	}
	if err := writeTableCSV(filepath.Join(r.DataDir, "clean_by_firm_age.csv"), bds.FirmAgeCSVHeader, records(byAge)); err != nil {
		return RowCounts{}, err
	}
	if err := writeTableCSV(filepath.Join(r.DataDir, "clean_by_state.csv"), bds.StateCSVHeader, records(byState)); err != nil {
		return RowCounts{}, err
	}
	r.publish(events.TypeRunStage, map[string]any{"stage": "transform"})

	// --- load

	if err := store.ReplaceFirmAge(ctx, r.DB, byAge); err != nil {
		return RowCounts{}, fmt.Errorf("load: %w", err)
	}
	if err := store.ReplaceNational(ctx, r.DB, national); err != nil {
		return RowCounts{}, fmt.Errorf("load: %w", err)
	}
	if err := store.ReplaceState(ctx, r.DB, byState); err != nil {
		return RowCounts{}, fmt.Errorf("load: %w", err)
	}

	var counts RowCounts
	for _, t := range []struct {
		name string
		dst  *int
	}{
		{"national", &counts.National},
		{"by_firm_age", &counts.FirmAge},
		{"by_state", &counts.State},
	} {
		n, err := store.Count(ctx, r.DB, t.name)
		if err != nil {
			return RowCounts{}, fmt.Errorf("load verify: %w", err)
		}
		*t.dst = n
		log.Printf("[load] verified %s rows=%d", t.name, n)
	}
	r.publish(events.TypeRunStage, map[string]any{"stage": "load"})

	return counts, nil
}

func records[T interface{ Record() []string }](rows []T) [][]string {
	out := make([][]string, len(rows))
	for i, r := range rows {
		out[i] = r.Record()
	}
	return out
}
