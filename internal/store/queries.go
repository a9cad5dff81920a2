package store

import (
	"context"
	"database/sql"
	"fmt"

	"bds-pipeline/internal/bds"
)

// Filters for the dashboard slices. Nil field = no filter.

type FirmAgeFilter struct {
	FAGE *int
	Year *int
}

type StateFilter struct {
	State *int
	Year  *int
}

func NationalSeries(ctx context.Context, db *sql.DB) ([]bds.NationalRow, error) {
	rows, err := db.QueryContext(ctx, `
SELECT YEAR, FIRM, ESTAB, EMP, FIRMDEATH_FIRMS,
       ESTABS_ENTRY, ESTABS_EXIT, JOB_CREATION, JOB_DESTRUCTION, NET_JOB_CREATION,
       STARTUP_RATE, EXIT_RATE, JOB_CREATION_RATE, JOB_DESTRUCTION_RATE, FIRM_DEATH_RATE,
       FIRM_BIRTHS, FIRM_BIRTH_RATE
FROM national
ORDER BY YEAR;`)
	if err != nil {
		return nil, fmt.Errorf("national series: %w", err)
	}
	defer rows.Close()

	var out []bds.NationalRow
	for rows.Next() {
		var r bds.NationalRow
		var m [9]sql.NullInt64
		var rt [5]sql.NullFloat64
		var births sql.NullInt64
		var birthRate sql.NullFloat64
		if err := rows.Scan(
			&r.Year, &m[0], &m[1], &m[2], &m[3], &m[4], &m[5], &m[6], &m[7], &m[8],
			&rt[0], &rt[1], &rt[2], &rt[3], &rt[4],
			&births, &birthRate,
		); err != nil {
			return nil, fmt.Errorf("national series: %w", err)
		}
		r.Measures = measuresFromNull(m)
		r.Rates = ratesFromNull(rt)
		r.FirmBirths = nullInt(births)
		r.FirmBirthRate = nullFloat(birthRate)
		out = append(out, r)
	}
	return out, rows.Err()
}

func FirmAgeSlice(ctx context.Context, db *sql.DB, f FirmAgeFilter) ([]bds.FirmAgeRow, error) {
	query := `
SELECT YEAR, FAGE, FIRM_AGE_LABEL,
       FIRM, ESTAB, EMP, FIRMDEATH_FIRMS,
       ESTABS_ENTRY, ESTABS_EXIT, JOB_CREATION, JOB_DESTRUCTION, NET_JOB_CREATION,
       STARTUP_RATE, EXIT_RATE, JOB_CREATION_RATE, JOB_DESTRUCTION_RATE, FIRM_DEATH_RATE
FROM by_firm_age
WHERE 1=1`
	var args []any
	if f.FAGE != nil {
		query += ` AND FAGE = ?`
		args = append(args, *f.FAGE)
	}
	if f.Year != nil {
		query += ` AND YEAR = ?`
		args = append(args, *f.Year)
	}
	query += `
ORDER BY YEAR, FAGE;`

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("firm age slice: %w", err)
	}
	defer rows.Close()

	var out []bds.FirmAgeRow
	for rows.Next() {
		var r bds.FirmAgeRow
		var m [9]sql.NullInt64
		var rt [5]sql.NullFloat64
		if err := rows.Scan(
			&r.Year, &r.FirmAge, &r.FirmAgeLabel,
			&m[0], &m[1], &m[2], &m[3], &m[4], &m[5], &m[6], &m[7], &m[8],
			&rt[0], &rt[1], &rt[2], &rt[3], &rt[4],
		); err != nil {
			return nil, fmt.Errorf("firm age slice: %w", err)
		}
		r.Measures = measuresFromNull(m)
		r.Rates = ratesFromNull(rt)
		out = append(out, r)
	}
	return out, rows.Err()
}

func StateSlice(ctx context.Context, db *sql.DB, f StateFilter) ([]bds.StateRow, error) {
	query := `
SELECT YEAR, state, STATE_NAME,
       FIRM, ESTAB, EMP, FIRMDEATH_FIRMS,
       ESTABS_ENTRY, ESTABS_EXIT, JOB_CREATION, JOB_DESTRUCTION, NET_JOB_CREATION,
       STARTUP_RATE, EXIT_RATE, JOB_CREATION_RATE, JOB_DESTRUCTION_RATE, FIRM_DEATH_RATE
FROM by_state
WHERE 1=1`
	var args []any
	if f.State != nil {
		query += ` AND state = ?`
		args = append(args, *f.State)
	}
	if f.Year != nil {
		query += ` AND YEAR = ?`
		args = append(args, *f.Year)
	}
	query += `
ORDER BY YEAR, state;`

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("state slice: %w", err)
	}
	defer rows.Close()

	var out []bds.StateRow
	for rows.Next() {
		var r bds.StateRow
		var m [9]sql.NullInt64
		var rt [5]sql.NullFloat64
		if err := rows.Scan(
			&r.Year, &r.StateFIPS, &r.StateName,
			&m[0], &m[1], &m[2], &m[3], &m[4], &m[5], &m[6], &m[7], &m[8],
			&rt[0], &rt[1], &rt[2], &rt[3], &rt[4],
		); err != nil {
			return nil, fmt.Errorf("state slice: %w", err)
		}
		r.Measures = measuresFromNull(m)
		r.Rates = ratesFromNull(rt)
		out = append(out, r)
	}
	return out, rows.Err()
}

func measuresFromNull(m [9]sql.NullInt64) bds.Measures {
	return bds.Measures{
		Firms:          nullInt(m[0]),
		Estabs:         nullInt(m[1]),
		Emp:            nullInt(m[2]),
		FirmDeaths:     nullInt(m[3]),
		EstabsEntry:    nullInt(m[4]),
		EstabsExit:     nullInt(m[5]),
		JobCreation:    nullInt(m[6]),
		JobDestruction: nullInt(m[7]),
		NetJobCreation: nullInt(m[8]),
	}
}

func ratesFromNull(rt [5]sql.NullFloat64) bds.Rates {
	return bds.Rates{
		StartupRate:        nullFloat(rt[0]),
		ExitRate:           nullFloat(rt[1]),
		JobCreationRate:    nullFloat(rt[2]),
		JobDestructionRate: nullFloat(rt[3]),
		FirmDeathRate:      nullFloat(rt[4]),
	}
}

func nullInt(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	n := v.Int64
	return &n
}

func nullFloat(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}
