package bds

import "fmt"

// FirmAgeStartups is the FAGE bucket for firms born in the reference year.
const FirmAgeStartups = 10

// firmAgeLabels maps FAGE codes to display labels.
// Source: https://api.census.gov/data/timeseries/bds?get=FAGE,FAGE_LABEL
var firmAgeLabels = map[int]string{
	1:   "Total",
	10:  "0 (Startups)",
	20:  "1 year",
	30:  "2 years",
	40:  "3 years",
	50:  "4 years",
	60:  "5 years",
	65:  "1-5 years", // aggregate bucket
	70:  "6-10 years",
	75:  "11+ years", // aggregate bucket
	80:  "11-15 years",
	90:  "16-20 years",
	100: "21-25 years",
	110: "26+ years",
	150: "Left Censored",
}

// stateNames maps two-digit state FIPS codes to state names.
var stateNames = map[int]string{
	1: "Alabama", 2: "Alaska", 4: "Arizona", 5: "Arkansas",
	6: "California", 8: "Colorado", 9: "Connecticut", 10: "Delaware",
	11: "District of Columbia", 12: "Florida", 13: "Georgia", 15: "Hawaii",
	16: "Idaho", 17: "Illinois", 18: "Indiana", 19: "Iowa",
	20: "Kansas", 21: "Kentucky", 22: "Louisiana", 23: "Maine",
	24: "Maryland", 25: "Massachusetts", 26: "Michigan", 27: "Minnesota",
	28: "Mississippi", 29: "Missouri", 30: "Montana", 31: "Nebraska",
	32: "Nevada", 33: "New Hampshire", 34: "New Jersey", 35: "New Mexico",
	36: "New York", 37: "North Carolina", 38: "North Dakota", 39: "Ohio",
	40: "Oklahoma", 41: "Oregon", 42: "Pennsylvania", 44: "Rhode Island",
	45: "South Carolina", 46: "South Dakota", 47: "Tennessee", 48: "Texas",
	49: "Utah", 50: "Vermont", 51: "Virginia", 53: "Washington",
	54: "West Virginia", 55: "Wisconsin", 56: "Wyoming",
}

// FirmAgeLabel returns the display label for a FAGE code. Unrecognized codes
// get a deterministic marker so bad codes are visible in the dashboard.
func FirmAgeLabel(code int) string {
	if l, ok := firmAgeLabels[code]; ok {
		return l
	}
	return fmt.Sprintf("unknown (%d)", code)
}

// StateName returns the state name for a FIPS code, with the same
// deterministic fallback for codes outside the table (territories etc).
func StateName(code int) string {
	if n, ok := stateNames[code]; ok {
		return n
	}
	return fmt.Sprintf("unknown (%d)", code)
}
