package bds

import (
	"fmt"
	"sort"

	"bds-pipeline/internal/census"
)

// measureCols resolves the column index of every measure plus YEAR.
// Columns we don't know about (the constant "us" geography column, say) are
// simply never read, which is how they get dropped.
func measureCols(t census.Table) (map[string]int, error) {
	idx := make(map[string]int, len(census.Measures)+1)
	for _, name := range append([]string{"YEAR"}, census.Measures...) {
		i := t.Col(name)
		if i < 0 {
			return nil, fmt.Errorf("response missing column %s", name)
		}
		idx[name] = i
	}
	return idx, nil
}

func measuresAt(row []string, idx map[string]int, pol MalformedPolicy) (Measures, error) {
	var m Measures
	for _, f := range []struct {
		col string
		dst **int64
	}{
		{"FIRM", &m.Firms},
		{"ESTAB", &m.Estabs},
		{"EMP", &m.Emp},
		{"FIRMDEATH_FIRMS", &m.FirmDeaths},
		{"ESTABS_ENTRY", &m.EstabsEntry},
		{"ESTABS_EXIT", &m.EstabsExit},
		{"JOB_CREATION", &m.JobCreation},
		{"JOB_DESTRUCTION", &m.JobDestruction},
		{"NET_JOB_CREATION", &m.NetJobCreation},
	} {
		v, err := parseCount(row[idx[f.col]], pol)
		if err != nil {
			return Measures{}, fmt.Errorf("column %s: %w", f.col, err)
		}
		*f.dst = v
	}
	return m, nil
}

// TransformNational cleans the national pull. Every input row survives;
// only rates can end up missing.
func TransformNational(t census.Table, pol MalformedPolicy) ([]NationalRow, error) {
	idx, err := measureCols(t)
	if err != nil {
		return nil, fmt.Errorf("national: %w", err)
	}

	out := make([]NationalRow, 0, len(t.Rows))
	for n, row := range t.Rows {
		year, err := parseKey("YEAR", row[idx["YEAR"]])
		if err != nil {
			return nil, fmt.Errorf("national row %d: %w", n, err)
		}
		m, err := measuresAt(row, idx, pol)
		if err != nil {
			return nil, fmt.Errorf("national row %d (year %d): %w", n, year, err)
		}
		out = append(out, NationalRow{
			Year:     year,
			Measures: m,
			Rates:    computeRates(m),
		})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Year < out[j].Year })
	return out, nil
}

// TransformFirmAge cleans the firm-age pull and attaches age-band labels.
func TransformFirmAge(t census.Table, pol MalformedPolicy) ([]FirmAgeRow, error) {
	idx, err := measureCols(t)
	if err != nil {
		return nil, fmt.Errorf("firm age: %w", err)
	}
	fageCol := t.Col("FAGE")
	if fageCol < 0 {
		return nil, fmt.Errorf("firm age: response missing column FAGE")
	}

	out := make([]FirmAgeRow, 0, len(t.Rows))
	for n, row := range t.Rows {
		year, err := parseKey("YEAR", row[idx["YEAR"]])
		if err != nil {
			return nil, fmt.Errorf("firm age row %d: %w", n, err)
		}
		fage, err := parseKey("FAGE", row[fageCol])
		if err != nil {
			return nil, fmt.Errorf("firm age row %d (year %d): %w", n, year, err)
		}
		m, err := measuresAt(row, idx, pol)
		if err != nil {
			return nil, fmt.Errorf("firm age row %d (year %d fage %d): %w", n, year, fage, err)
		}
		out = append(out, FirmAgeRow{
			Year:         year,
			FirmAge:      fage,
			FirmAgeLabel: FirmAgeLabel(fage),
			Measures:     m,
			Rates:        computeRates(m),
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year < out[j].Year
		}
		return out[i].FirmAge < out[j].FirmAge
	})
	return out, nil
}

// TransformState cleans the state pull and attaches state names.
func TransformState(t census.Table, pol MalformedPolicy) ([]StateRow, error) {
	idx, err := measureCols(t)
	if err != nil {
		return nil, fmt.Errorf("state: %w", err)
	}
	stateCol := t.Col("state")
	if stateCol < 0 {
		return nil, fmt.Errorf("state: response missing column state")
	}

	out := make([]StateRow, 0, len(t.Rows))
	for n, row := range t.Rows {
		year, err := parseKey("YEAR", row[idx["YEAR"]])
		if err != nil {
			return nil, fmt.Errorf("state row %d: %w", n, err)
		}
		fips, err := parseKey("state", row[stateCol])
		if err != nil {
			return nil, fmt.Errorf("state row %d (year %d): %w", n, year, err)
		}
		m, err := measuresAt(row, idx, pol)
		if err != nil {
			return nil, fmt.Errorf("state row %d (year %d state %d): %w", n, year, fips, err)
		}
		out = append(out, StateRow{
			Year:      year,
			StateFIPS: fips,
			StateName: StateName(fips),
			Measures:  m,
			Rates:     computeRates(m),
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year < out[j].Year
		}
		return out[i].StateFIPS < out[j].StateFIPS
	})
	return out, nil
}

// AddFirmBirthRates joins startup firm counts (FAGE=10) from the firm-age
// table onto the national series by year and derives the firm birth rate.
func AddFirmBirthRates(national []NationalRow, byAge []FirmAgeRow) []NationalRow {
	births := make(map[int]*int64)
	for _, r := range byAge {
		if r.FirmAge == FirmAgeStartups {
			births[r.Year] = r.Firms
		}
	}

	out := make([]NationalRow, len(national))
	for i, r := range national {
		r.FirmBirths = births[r.Year]
		r.FirmBirthRate = ratio(r.FirmBirths, r.Firms)
		out[i] = r
	}
	return out
}
