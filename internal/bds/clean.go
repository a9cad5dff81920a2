package bds

import (
	"fmt"
	"strconv"
	"strings"
)

// MalformedPolicy decides what happens to a numeric cell that fails to parse
// and is not a known suppression sentinel.
type MalformedPolicy int

const (
	// MalformedMissing treats the cell as missing, like a sentinel.
	MalformedMissing MalformedPolicy = iota
	// MalformedFail aborts the run on the first such cell.
	MalformedFail
)

func PolicyFromString(s string) (MalformedPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "missing":
		return MalformedMissing, nil
	case "fail":
		return MalformedFail, nil
	}
	return MalformedMissing, fmt.Errorf("unknown malformed-value policy %q", s)
}

// suppressionSentinels are the placeholders Census products emit instead of a
// number when a cell is withheld for disclosure avoidance. They always map to
// missing, never to zero: zero means "no activity", missing means "withheld".
var suppressionSentinels = map[string]struct{}{
	"":     {},
	"null": {},
	"NULL": {},
	"N":    {},
	"NA":   {},
	"D":    {},
	"S":    {},
	"(D)":  {},
	"(S)":  {},
	"(X)":  {},
}

// parseCount coerces one measure cell. nil with no error means missing.
func parseCount(raw string, pol MalformedPolicy) (*int64, error) {
	s := strings.TrimSpace(raw)
	if _, ok := suppressionSentinels[s]; ok {
		return nil, nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		if pol == MalformedFail {
			return nil, fmt.Errorf("unparseable count %q", raw)
		}
		return nil, nil
	}
	return &n, nil
}

// parseKey coerces a dimension-key cell (YEAR, FAGE, state). Keys identify
// the row, so a bad key is an error regardless of policy.
func parseKey(name, raw string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("unparseable %s %q", name, raw)
	}
	return n, nil
}
