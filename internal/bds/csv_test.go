package bds

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordMissingCellsAreEmpty(t *testing.T) {
	firms := int64(2500000)
	rate := 9.03

	r := NationalRow{
		Year:     2023,
		Measures: Measures{Firms: &firms},
		Rates:    Rates{StartupRate: &rate},
	}
	rec := r.Record()
	require.Len(t, rec, len(NationalCSVHeader))

	assert.Equal(t, "2023", rec[0])
	assert.Equal(t, "2500000", rec[1])  // FIRM
	assert.Equal(t, "", rec[2])         // ESTAB suppressed
	assert.Equal(t, "9.03", rec[10])    // STARTUP_RATE
	assert.Equal(t, "", rec[len(rec)-1]) // FIRM_BIRTH_RATE
}

func TestRecordLengthsMatchHeaders(t *testing.T) {
	assert.Len(t, FirmAgeRow{}.Record(), len(FirmAgeCSVHeader))
	assert.Len(t, StateRow{}.Record(), len(StateCSVHeader))
}
