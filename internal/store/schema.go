package store

import "database/sql"

// Column names mirror the API's so the stored tables read like the source.
// Measures and rates are nullable: NULL is a suppressed cell, 0 is a real
// zero, and the two must never be conflated.

const measureColumns = `
  FIRM INTEGER,
  ESTAB INTEGER,
  EMP INTEGER,
  FIRMDEATH_FIRMS INTEGER,
  ESTABS_ENTRY INTEGER,
  ESTABS_EXIT INTEGER,
  JOB_CREATION INTEGER,
  JOB_DESTRUCTION INTEGER,
  NET_JOB_CREATION INTEGER,
  STARTUP_RATE REAL,
  EXIT_RATE REAL,
  JOB_CREATION_RATE REAL,
  JOB_DESTRUCTION_RATE REAL,
  FIRM_DEATH_RATE REAL`

const (
	nationalDDL = `(
  YEAR INTEGER NOT NULL,` + measureColumns + `,
  FIRM_BIRTHS INTEGER,
  FIRM_BIRTH_RATE REAL
)`

	firmAgeDDL = `(
  YEAR INTEGER NOT NULL,
  FAGE INTEGER NOT NULL,
  FIRM_AGE_LABEL TEXT NOT NULL,` + measureColumns + `
)`

	stateDDL = `(
  YEAR INTEGER NOT NULL,
  state INTEGER NOT NULL,
  STATE_NAME TEXT NOT NULL,` + measureColumns + `
)`
)

// indexDDL holds the per-table index statements; they run both at migration
// and after every atomic replace (dropping a table drops its indexes).
var indexDDL = map[string][]string{
	"national": {
		`CREATE INDEX IF NOT EXISTS idx_national_year ON national(YEAR);`,
	},
	"by_firm_age": {
		`CREATE INDEX IF NOT EXISTS idx_firm_age_year ON by_firm_age(YEAR);`,
		`CREATE INDEX IF NOT EXISTS idx_firm_age_fage ON by_firm_age(FAGE);`,
	},
	"by_state": {
		`CREATE INDEX IF NOT EXISTS idx_state_year ON by_state(YEAR);`,
		`CREATE INDEX IF NOT EXISTS idx_state_state ON by_state(state);`,
	},
}

// Migrate creates empty tables so the read API works before the first
// pipeline run has replaced them with real content.
func Migrate(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var v int
	if err := tx.QueryRow(`PRAGMA user_version;`).Scan(&v); err != nil {
		return err
	}
	if v >= 1 {
		return tx.Commit()
	}

	for _, stmt := range []string{
		`CREATE TABLE IF NOT EXISTS national ` + nationalDDL + `;`,
		`CREATE TABLE IF NOT EXISTS by_firm_age ` + firmAgeDDL + `;`,
		`CREATE TABLE IF NOT EXISTS by_state ` + stateDDL + `;`,
	} {
		if _, err := tx.Exec(stmt); err != nil {
			return err
		}
	}
	for _, stmts := range indexDDL {
		for _, stmt := range stmts {
			if _, err := tx.Exec(stmt); err != nil {
				return err
			}
		}
	}

	if _, err := tx.Exec(`PRAGMA user_version = 1;`); err != nil {
		return err
	}
	return tx.Commit()
}
