package domain

import "github.com/shopspring/decimal"

// FieldError addresses one invalid input field. Allowance carries the limit or
// the remaining allowance for limit violations.
type FieldError struct {
	Field     string           `json:"field"`
	Kind      ErrorKind        `json:"kind"`
	Message   string           `json:"message"`
	Allowance *decimal.Decimal `json:"allowance,omitempty"`
}

type FieldErrors []FieldError

func (fe FieldErrors) Has(field string) bool {
	for _, e := range fe {
		if e.Field == field {
			return true
		}
	}
	return false
}

// Get returns the first error recorded for field.
func (fe FieldErrors) Get(field string) (FieldError, bool) {
	for _, e := range fe {
		if e.Field == field {
			return e, true
		}
	}
	return FieldError{}, false
}

func (fe FieldErrors) Map() map[string]string {
	m := make(map[string]string, len(fe))
	for _, e := range fe {
		if _, ok := m[e.Field]; !ok {
			m[e.Field] = e.Message
		}
	}
	return m
}

type ValidationOutcome struct {
	OK      bool        `json:"ok"`
	Reasons FieldErrors `json:"reasons,omitempty"`
}
