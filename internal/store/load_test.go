package store

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bds-pipeline/internal/bds"
)

func i64(v int64) *int64     { return &v }
func f64(v float64) *float64 { return &v }

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, Migrate(db.Pool))
	return db.Pool
}

func nationalFixture() []bds.NationalRow {
	return []bds.NationalRow{
		{
			Year: 2022,
			Measures: bds.Measures{
				Firms: i64(2400000), Estabs: i64(3000000), Emp: i64(99000000),
				FirmDeaths: i64(190000), EstabsEntry: i64(270000), EstabsExit: i64(240000),
				JobCreation: i64(7500000), JobDestruction: i64(7200000), NetJobCreation: i64(300000),
			},
			Rates: bds.Rates{
				StartupRate: f64(9.0), ExitRate: f64(8.0),
				JobCreationRate: f64(7.58), JobDestructionRate: f64(7.27), FirmDeathRate: f64(7.92),
			},
			FirmBirths:    i64(480000),
			FirmBirthRate: f64(20.0),
		},
		{
			// suppressed year: everything missing stays missing
			Year: 2023,
			Measures: bds.Measures{
				Firms: i64(2500000), Estabs: i64(3100000),
			},
		},
	}
}

func TestReplaceNationalRoundTrip(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	want := nationalFixture()
	require.NoError(t, ReplaceNational(ctx, db, want))

	got, err := NationalSeries(ctx, db)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, want, got)

	// NULL discipline: missing came back nil, not zero
	assert.Nil(t, got[1].Emp)
	assert.Nil(t, got[1].StartupRate)
	assert.Nil(t, got[1].FirmBirths)
}

func TestReplaceNationalIdempotent(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	rows := nationalFixture()
	require.NoError(t, ReplaceNational(ctx, db, rows))
	first, err := NationalSeries(ctx, db)
	require.NoError(t, err)

	require.NoError(t, ReplaceNational(ctx, db, rows))
	second, err := NationalSeries(ctx, db)
	require.NoError(t, err)

	assert.Equal(t, first, second)

	n, err := Count(ctx, db, "national")
	require.NoError(t, err)
	assert.Equal(t, len(rows), n, "replace does not accumulate rows")

	assertIndexes(t, db, "national", "idx_national_year")
}

func TestReplaceDiscardsOldContent(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	require.NoError(t, ReplaceNational(ctx, db, nationalFixture()))

	shrunk := nationalFixture()[:1]
	require.NoError(t, ReplaceNational(ctx, db, shrunk))

	got, err := NationalSeries(ctx, db)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 2022, got[0].Year)
}

func TestReplaceFirmAgeAndFilters(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	rows := []bds.FirmAgeRow{
		{Year: 2021, FirmAge: 10, FirmAgeLabel: "0 (Startups)", Measures: bds.Measures{Firms: i64(500000)}},
		{Year: 2021, FirmAge: 110, FirmAgeLabel: "26+ years", Measures: bds.Measures{Firms: i64(800000)}},
		{Year: 2022, FirmAge: 10, FirmAgeLabel: "0 (Startups)", Measures: bds.Measures{Firms: i64(510000)}},
	}
	require.NoError(t, ReplaceFirmAge(ctx, db, rows))

	all, err := FirmAgeSlice(ctx, db, FirmAgeFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	fage := 10
	startups, err := FirmAgeSlice(ctx, db, FirmAgeFilter{FAGE: &fage})
	require.NoError(t, err)
	require.Len(t, startups, 2)
	for _, r := range startups {
		assert.Equal(t, 10, r.FirmAge)
		assert.Equal(t, "0 (Startups)", r.FirmAgeLabel)
	}

	year := 2021
	both, err := FirmAgeSlice(ctx, db, FirmAgeFilter{FAGE: &fage, Year: &year})
	require.NoError(t, err)
	require.Len(t, both, 1)
	require.NotNil(t, both[0].Firms)
	assert.Equal(t, int64(500000), *both[0].Firms)

	assertIndexes(t, db, "by_firm_age", "idx_firm_age_year", "idx_firm_age_fage")
}

func TestReplaceStateAndFilters(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	rows := []bds.StateRow{
		{Year: 2021, StateFIPS: 6, StateName: "California", Measures: bds.Measures{Estabs: i64(900000)}},
		{Year: 2021, StateFIPS: 48, StateName: "Texas", Measures: bds.Measures{Estabs: i64(600000)}},
		{Year: 2022, StateFIPS: 6, StateName: "California", Measures: bds.Measures{Estabs: i64(910000)}},
	}
	require.NoError(t, ReplaceState(ctx, db, rows))

	ca := 6
	got, err := StateSlice(ctx, db, StateFilter{State: &ca})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 2021, got[0].Year, "ordered by year")
	assert.Equal(t, "California", got[0].StateName)

	year := 2021
	all, err := StateSlice(ctx, db, StateFilter{Year: &year})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	assertIndexes(t, db, "by_state", "idx_state_year", "idx_state_state")
}

func TestCountUnknownTable(t *testing.T) {
	db := openTestDB(t)
	_, err := Count(context.Background(), db, "jobs; DROP TABLE national")
	require.Error(t, err)
}

func assertIndexes(t *testing.T, db *sql.DB, table string, names ...string) {
	t.Helper()
	rows, err := db.Query(
		`SELECT name FROM sqlite_master WHERE type = 'index' AND tbl_name = ?;`, table)
	require.NoError(t, err)
	defer rows.Close()

	have := map[string]bool{}
	for rows.Next() {
		var n string
		require.NoError(t, rows.Scan(&n))
		have[n] = true
	}
	require.NoError(t, rows.Err())
	for _, n := range names {
		assert.True(t, have[n], "index %s missing on %s", n, table)
	}
}
