package bds

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCountSentinels(t *testing.T) {
	for _, s := range []string{"", "(D)", "(S)", "(X)", "D", "S", "N", "NA", "null", "NULL", " (D) "} {
		v, err := parseCount(s, MalformedFail)
		require.NoError(t, err, "sentinel %q must never error, even under fail policy", s)
		assert.Nil(t, v, "sentinel %q must map to missing", s)
	}
}

func TestParseCountNumbers(t *testing.T) {
	v, err := parseCount("3100000", MalformedFail)
	require.NoError(t, err)
	require.NotNil(t, v)
	assert.Equal(t, int64(3100000), *v)

	v, err = parseCount(" 0 ", MalformedFail)
	require.NoError(t, err)
	require.NotNil(t, v)
	assert.Equal(t, int64(0), *v, "zero is a real value, not missing")

	v, err = parseCount("-42", MalformedFail)
	require.NoError(t, err)
	require.NotNil(t, v)
	assert.Equal(t, int64(-42), *v, "net job creation can go negative")
}

func TestParseCountMalformed(t *testing.T) {
	v, err := parseCount("12,345", MalformedMissing)
	require.NoError(t, err)
	assert.Nil(t, v)

	_, err = parseCount("12,345", MalformedFail)
	require.Error(t, err)
}

func TestPolicyFromString(t *testing.T) {
	p, err := PolicyFromString("missing")
	require.NoError(t, err)
	assert.Equal(t, MalformedMissing, p)

	p, err = PolicyFromString("FAIL")
	require.NoError(t, err)
	assert.Equal(t, MalformedFail, p)

	p, err = PolicyFromString("")
	require.NoError(t, err)
	assert.Equal(t, MalformedMissing, p, "empty config defaults to missing")

	_, err = PolicyFromString("zero")
	require.Error(t, err, "silently coercing to zero is exactly what we refuse to do")
}

func TestParseKey(t *testing.T) {
	n, err := parseKey("YEAR", "2023")
	require.NoError(t, err)
	assert.Equal(t, 2023, n)

	n, err = parseKey("FAGE", "010")
	require.NoError(t, err)
	assert.Equal(t, 10, n)

	_, err = parseKey("YEAR", "(D)")
	require.Error(t, err)
}
