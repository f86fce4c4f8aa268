package domain

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// The spreadsheet-grown orders table is not strict about numeric columns:
// PostgREST may hand back a number, a number-in-a-string, null, or garbage.
// Flex64/FlexInt absorb all of those as zero instead of failing the decode,
// mirroring the dashboard's "Number(x) || 0" policy.

// Flex64 is a float64 that decodes leniently: invalid input becomes 0.
type Flex64 float64

// UnmarshalJSON never returns an error for scalar input; NaN and ±Inf are
// also flattened to 0 so the read-model stays finite.
func (f *Flex64) UnmarshalJSON(b []byte) error {
	*f = Flex64(lenientFloat(b))
	return nil
}

// Float returns the plain float64 value.
func (f Flex64) Float() float64 { return float64(f) }

// FlexInt is an int that decodes leniently: invalid input becomes 0,
// fractional input is truncated.
type FlexInt int

func (f *FlexInt) UnmarshalJSON(b []byte) error {
	*f = FlexInt(lenientFloat(b))
	return nil
}

// Int returns the plain int value.
func (f FlexInt) Int() int { return int(f) }

func lenientFloat(b []byte) float64 {
	s := strings.TrimSpace(string(b))
	if s == "" || s == "null" {
		return 0
	}
	if strings.HasPrefix(s, `"`) {
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return 0
		}
		s = strings.TrimSpace(str)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
