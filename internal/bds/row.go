// Package bds cleans and enriches raw Business Dynamics Statistics tables:
// string measures become typed counts, suppressed cells become NULLs, and
// each row gains derived rate metrics and human-readable dimension labels.
package bds

// Measures are the raw yearly counts shared by every aggregation level.
// Nil means missing: the source suppressed the cell for disclosure
// avoidance, which is not the same thing as zero activity.
type Measures struct {
	Firms          *int64 `json:"firms"`
	Estabs         *int64 `json:"estabs"`
	Emp            *int64 `json:"emp"`
	FirmDeaths     *int64 `json:"firmDeaths"`
	EstabsEntry    *int64 `json:"estabsEntry"`
	EstabsExit     *int64 `json:"estabsExit"`
	JobCreation    *int64 `json:"jobCreation"`
	JobDestruction *int64 `json:"jobDestruction"`
	NetJobCreation *int64 `json:"netJobCreation"`
}

// Rates are percentages derived from Measures. Nil whenever an operand is
// missing or a denominator is zero.
type Rates struct {
	StartupRate        *float64 `json:"startupRate"`
	ExitRate           *float64 `json:"exitRate"`
	JobCreationRate    *float64 `json:"jobCreationRate"`
	JobDestructionRate *float64 `json:"jobDestructionRate"`
	FirmDeathRate      *float64 `json:"firmDeathRate"`
}

type NationalRow struct {
	Year int `json:"year"`
	Measures
	Rates
	FirmBirths    *int64   `json:"firmBirths"`
	FirmBirthRate *float64 `json:"firmBirthRate"`
}

type FirmAgeRow struct {
	Year         int    `json:"year"`
	FirmAge      int    `json:"fage"`
	FirmAgeLabel string `json:"firmAgeLabel"`
	Measures
	Rates
}

type StateRow struct {
	Year      int    `json:"year"`
	StateFIPS int    `json:"state"`
	StateName string `json:"stateName"`
	Measures
	Rates
}
