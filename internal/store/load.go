package store

import (
	"context"
	"database/sql"
	"fmt"

	"bds-pipeline/internal/bds"
)

// Each Replace* writes a fresh <table>_new, then swaps it in and rebuilds the
// indexes inside the same transaction. A failed run rolls back and leaves the
// previous table exactly as the dashboard last saw it; running the same input
// twice yields identical content.

func ReplaceNational(ctx context.Context, db *sql.DB, rows []bds.NationalRow) error {
	return replaceTable(ctx, db, "national", nationalDDL, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, `
INSERT INTO national_new (
  YEAR, FIRM, ESTAB, EMP, FIRMDEATH_FIRMS,
  ESTABS_ENTRY, ESTABS_EXIT, JOB_CREATION, JOB_DESTRUCTION, NET_JOB_CREATION,
  STARTUP_RATE, EXIT_RATE, JOB_CREATION_RATE, JOB_DESTRUCTION_RATE, FIRM_DEATH_RATE,
  FIRM_BIRTHS, FIRM_BIRTH_RATE
) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?);`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for _, r := range rows {
			if _, err := stmt.ExecContext(ctx,
				r.Year, r.Firms, r.Estabs, r.Emp, r.FirmDeaths,
				r.EstabsEntry, r.EstabsExit, r.JobCreation, r.JobDestruction, r.NetJobCreation,
				r.StartupRate, r.ExitRate, r.JobCreationRate, r.JobDestructionRate, r.FirmDeathRate,
				r.FirmBirths, r.FirmBirthRate,
			); err != nil {
				return fmt.Errorf("insert year %d: %w", r.Year, err)
			}
		}
		return nil
	})
}

func ReplaceFirmAge(ctx context.Context, db *sql.DB, rows []bds.FirmAgeRow) error {
	return replaceTable(ctx, db, "by_firm_age", firmAgeDDL, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, `
INSERT INTO by_firm_age_new (
  YEAR, FAGE, FIRM_AGE_LABEL,
  FIRM, ESTAB, EMP, FIRMDEATH_FIRMS,
  ESTABS_ENTRY, ESTABS_EXIT, JOB_CREATION, JOB_DESTRUCTION, NET_JOB_CREATION,
  STARTUP_RATE, EXIT_RATE, JOB_CREATION_RATE, JOB_DESTRUCTION_RATE, FIRM_DEATH_RATE
) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?);`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for _, r := range rows {
			if _, err := stmt.ExecContext(ctx,
				r.Year, r.FirmAge, r.FirmAgeLabel,
				r.Firms, r.Estabs, r.Emp, r.FirmDeaths,
				r.EstabsEntry, r.EstabsExit, r.JobCreation, r.JobDestruction, r.NetJobCreation,
				r.StartupRate, r.ExitRate, r.JobCreationRate, r.JobDestructionRate, r.FirmDeathRate,
			); err != nil {
				return fmt.Errorf("insert year %d fage %d: %w", r.Year, r.FirmAge, err)
			}
		}
		return nil
	})
}

func ReplaceState(ctx context.Context, db *sql.DB, rows []bds.StateRow) error {
	return replaceTable(ctx, db, "by_state", stateDDL, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, `
INSERT INTO by_state_new (
  YEAR, state, STATE_NAME,
  FIRM, ESTAB, EMP, FIRMDEATH_FIRMS,
  ESTABS_ENTRY, ESTABS_EXIT, JOB_CREATION, JOB_DESTRUCTION, NET_JOB_CREATION,
  STARTUP_RATE, EXIT_RATE, JOB_CREATION_RATE, JOB_DESTRUCTION_RATE, FIRM_DEATH_RATE
) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?);`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for _, r := range rows {
			if _, err := stmt.ExecContext(ctx,
				r.Year, r.StateFIPS, r.StateName,
				r.Firms, r.Estabs, r.Emp, r.FirmDeaths,
				r.EstabsEntry, r.EstabsExit, r.JobCreation, r.JobDestruction, r.NetJobCreation,
				r.StartupRate, r.ExitRate, r.JobCreationRate, r.JobDestructionRate, r.FirmDeathRate,
			); err != nil {
				return fmt.Errorf("insert year %d state %d: %w", r.Year, r.StateFIPS, err)
			}
		}
		return nil
	})
}

func replaceTable(ctx context.Context, db *sql.DB, table, ddl string, insert func(tx *sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("replace %s: %w", table, err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DROP TABLE IF EXISTS `+table+`_new;`); err != nil {
		return fmt.Errorf("replace %s: %w", table, err)
	}
	if _, err := tx.ExecContext(ctx, `CREATE TABLE `+table+`_new `+ddl+`;`); err != nil {
		return fmt.Errorf("replace %s: %w", table, err)
	}

	if err := insert(tx); err != nil {
		return fmt.Errorf("replace %s: %w", table, err)
	}

	if _, err := tx.ExecContext(ctx, `DROP TABLE IF EXISTS `+table+`;`); err != nil {
		return fmt.Errorf("replace %s: %w", table, err)
	}
	if _, err := tx.ExecContext(ctx, `ALTER TABLE `+table+`_new RENAME TO `+table+`;`); err != nil {
		return fmt.Errorf("replace %s: %w", table, err)
	}
	for _, stmt := range indexDDL[table] {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("replace %s: %w", table, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("replace %s: %w", table, err)
	}
	return nil
}

// Count reports stored rows, used for the post-load verification log line.
func Count(ctx context.Context, db *sql.DB, table string) (int, error) {
	if _, ok := indexDDL[table]; !ok {
		return 0, fmt.Errorf("unknown table %q", table)
	}
	var n int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM `+table+`;`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count %s: %w", table, err)
	}
	return n, nil
}
