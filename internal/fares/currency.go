package fares

import (
	"math"
	"strconv"
	"strings"
)

// Amount is a price that may be missing.
type Amount struct {
	Value float64
	Valid bool
}

func Missing() Amount {
	return Amount{}
}

func NewAmount(v float64) Amount {
	return Amount{Value: v, Valid: true}
}

// Less orders amounts ascending with missing amounts after every present one.
func (a Amount) Less(b Amount) bool {
	if !a.Valid {
		return false
	}
	if !b.Valid {
		return true
	}
	return a.Value < b.Value
}

func (a Amount) String() string {
	if !a.Valid {
		return ""
	}
	return strconv.FormatFloat(a.Value, 'f', -1, 64)
}

// MarshalCSV writes a missing amount as an empty field.
func (a Amount) MarshalCSV() ([]byte, error) {
	return []byte(a.String()), nil
}

func (a *Amount) UnmarshalCSV(data []byte) error {
	if len(data) == 0 {
		*a = Missing()
		return nil
	}
	v, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return err
	}
	*a = NewAmount(v)
	return nil
}

// ParseAmount reads a pt-BR formatted price: "." groups thousands and ","
// separates decimals. Anything that does not come out as a finite number is
// missing.
func ParseAmount(raw string) Amount {
	normalized := strings.ReplaceAll(raw, ".", "")
	normalized = strings.ReplaceAll(normalized, ",", ".")
	normalized = strings.TrimSpace(normalized)
	if normalized == "" {
		return Missing()
	}
	v, err := strconv.ParseFloat(normalized, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return Missing()
	}
	return NewAmount(v)
}

// Normalize fills in the Amount of every fare from its raw price.
func Normalize(table Table) {
	for i := range table {
		table[i].Amount = ParseAmount(table[i].RawPrice)
	}
}
