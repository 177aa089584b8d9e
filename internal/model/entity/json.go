package entity

import (
	"database/sql/driver"
	"encoding/json"
)

// SizeBreakdown holds the per-size garment quantities of an order.
// The key set is fixed: every order carries all nine sizes, zero included.
type SizeBreakdown struct {
	XS  int `json:"XS"`
	S   int `json:"S"`
	M   int `json:"M"`
	L   int `json:"L"`
	XL  int `json:"XL"`
	X2L int `json:"2XL"`
	X3L int `json:"3XL"`
	X4L int `json:"4XL"`
	X5L int `json:"5XL"`
}

// Total returns the summed quantity across all sizes.
func (b SizeBreakdown) Total() int {
	return b.XS + b.S + b.M + b.L + b.XL + b.X2L + b.X3L + b.X4L + b.X5L
}

// HasNegative reports whether any size quantity is below zero.
func (b SizeBreakdown) HasNegative() bool {
	for _, q := range []int{b.XS, b.S, b.M, b.L, b.XL, b.X2L, b.X3L, b.X4L, b.X5L} {
		if q < 0 {
			return true
		}
	}
	return false
}

func (b SizeBreakdown) Value() (driver.Value, error) {
	return json.Marshal(b)
}

func (b *SizeBreakdown) Scan(value interface{}) error {
	if value == nil {
		*b = SizeBreakdown{}
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}
	return json.Unmarshal(bytes, b)
}

// StringList is a JSONB-backed list of strings (file URLs, color ids).
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return json.Marshal([]string{})
	}
	return json.Marshal(l)
}

func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}
	return json.Unmarshal(bytes, l)
}
