package bds

import "strconv"

// CSV headers keep the source's column names so snapshots line up with what
// the API (and the old pandas exports) produce. Missing cells serialize as
// empty strings.

var NationalCSVHeader = []string{
	"YEAR", "FIRM", "ESTAB", "EMP", "FIRMDEATH_FIRMS",
	"ESTABS_ENTRY", "ESTABS_EXIT", "JOB_CREATION", "JOB_DESTRUCTION", "NET_JOB_CREATION",
	"STARTUP_RATE", "EXIT_RATE", "JOB_CREATION_RATE", "JOB_DESTRUCTION_RATE", "FIRM_DEATH_RATE",
	"FIRM_BIRTHS", "FIRM_BIRTH_RATE",
}

var FirmAgeCSVHeader = []string{
	"YEAR", "FAGE", "FIRM_AGE_LABEL",
	"FIRM", "ESTAB", "EMP", "FIRMDEATH_FIRMS",
	"ESTABS_ENTRY", "ESTABS_EXIT", "JOB_CREATION", "JOB_DESTRUCTION", "NET_JOB_CREATION",
	"STARTUP_RATE", "EXIT_RATE", "JOB_CREATION_RATE", "JOB_DESTRUCTION_RATE", "FIRM_DEATH_RATE",
}

var StateCSVHeader = []string{
	"YEAR", "state", "STATE_NAME",
	"FIRM", "ESTAB", "EMP", "FIRMDEATH_FIRMS",
	"ESTABS_ENTRY", "ESTABS_EXIT", "JOB_CREATION", "JOB_DESTRUCTION", "NET_JOB_CREATION",
	"STARTUP_RATE", "EXIT_RATE", "JOB_CREATION_RATE", "JOB_DESTRUCTION_RATE", "FIRM_DEATH_RATE",
}

func (m Measures) record() []string {
	return []string{
		fmtCount(m.Firms), fmtCount(m.Estabs), fmtCount(m.Emp), fmtCount(m.FirmDeaths),
		fmtCount(m.EstabsEntry), fmtCount(m.EstabsExit),
		fmtCount(m.JobCreation), fmtCount(m.JobDestruction), fmtCount(m.NetJobCreation),
	}
}

func (r Rates) record() []string {
	return []string{
		fmtRate(r.StartupRate), fmtRate(r.ExitRate),
		fmtRate(r.JobCreationRate), fmtRate(r.JobDestructionRate), fmtRate(r.FirmDeathRate),
	}
}

func (r NationalRow) Record() []string {
	rec := append([]string{strconv.Itoa(r.Year)}, r.Measures.record()...)
	rec = append(rec, r.Rates.record()...)
	return append(rec, fmtCount(r.FirmBirths), fmtRate(r.FirmBirthRate))
}

func (r FirmAgeRow) Record() []string {
	rec := []string{strconv.Itoa(r.Year), strconv.Itoa(r.FirmAge), r.FirmAgeLabel}
	rec = append(rec, r.Measures.record()...)
	return append(rec, r.Rates.record()...)
}

func (r StateRow) Record() []string {
	rec := []string{strconv.Itoa(r.Year), strconv.Itoa(r.StateFIPS), r.StateName}
	rec = append(rec, r.Measures.record()...)
	return append(rec, r.Rates.record()...)
}

func fmtCount(v *int64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatInt(*v, 10)
}

func fmtRate(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
