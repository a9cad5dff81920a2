package bds

import "math"

// ratio computes num/den as a percentage rounded to two decimals. Missing
// operands and zero denominators both yield missing, never an error or Inf.
func ratio(num, den *int64) *float64 {
	if num == nil || den == nil || *den == 0 {
		return nil
	}
	r := math.Round(float64(*num)/float64(*den)*100*100) / 100
	return &r
}

func computeRates(m Measures) Rates {
	return Rates{
		StartupRate:        ratio(m.EstabsEntry, m.Estabs),
		ExitRate:           ratio(m.EstabsExit, m.Estabs),
		JobCreationRate:    ratio(m.JobCreation, m.Emp),
		JobDestructionRate: ratio(m.JobDestruction, m.Emp),
		FirmDeathRate:      ratio(m.FirmDeaths, m.Firms),
	}
}
