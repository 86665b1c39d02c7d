package domain

import (
	"bytes"
	"fmt"

	"github.com/shopspring/decimal"
)

// Cents is a monetary amount in minor units. It is stored as an integer and
// travels over JSON in major units, so 5000 is written as 50 and 1999 as 19.99.
type Cents int64

var centsPerUnit = decimal.NewFromInt(100)

// NewCents converts a major-unit amount to cents. Amounts with more than two
// decimal places are rejected.
func NewCents(amount decimal.Decimal) (Cents, error) {
	minor := amount.Mul(centsPerUnit)
	if !minor.IsInteger() {
		return 0, fmt.Errorf("%w: amount %s has more than two decimal places", ErrInvalidOperation, amount)
	}
	return Cents(minor.IntPart()), nil
}

func (c Cents) Decimal() decimal.Decimal {
	return decimal.New(int64(c), -2)
}

func (c Cents) String() string {
	return c.Decimal().String()
}

func (c Cents) MarshalJSON() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Cents) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		return fmt.Errorf("amount must be a JSON number, got %s", data)
	}
	amount, err := decimal.NewFromString(string(data))
	if err != nil {
		return fmt.Errorf("parse amount %s: %w", data, err)
	}
	parsed, err := NewCents(amount)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
