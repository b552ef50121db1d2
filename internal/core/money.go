// Package core holds the ledger domain: students, transactions,
// credentials, and the balance arithmetic that keeps a student's balance
// equal to the net sum of their transaction history.
package core

import (
	"strconv"
	"strings"
)

// Money is an amount of rupiah. The currency has no minor unit, so the
// value is a whole number and marshals as a bare JSON number.
type Money struct {
	Rupiah int64
}

func (m Money) Validate() error {
	if m.Rupiah <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatInt(m.Rupiah, 10)), nil
}

// UnmarshalJSON accepts whole JSON numbers only. Fractional or
// non-numeric values fail, which is how malformed request amounts are
// rejected before any validation runs.
func (m *Money) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return ErrInvalidAmount
	}
	m.Rupiah = v
	return nil
}

func (m Money) String() string {
	return "Rp" + strconv.FormatInt(m.Rupiah, 10)
}
