package core

import (
	"bytes"
	"strconv"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// Decimal is a fixed-point number with two fraction digits (money, percentages).
// It crosses the API boundary as a string, e.g. "1500.00", to avoid floating-point drift,
// and is stored as NUMERIC.
type Decimal struct {
	decimal.Decimal
}

var hundred = decimal.NewFromInt(100)

// MaxAmount is the largest value a NUMERIC(10,2) column holds.
var MaxAmount = Decimal{decimal.New(9999999999, -2)}

// NewDecimal rounds d to two fraction digits (half away from zero).
func NewDecimal(d decimal.Decimal) Decimal {
	return Decimal{d.Round(2)}
}

func DecimalFromInt(i int64) Decimal {
	return Decimal{decimal.NewFromInt(i)}
}

// ParseDecimal parses a decimal string like "1000" or "1000.50".
func ParseDecimal(s string) (Decimal, error) {
	d, err := decimal.NewFromString(CleanString(s))
	if err != nil {
		return Decimal{}, errors.Wrapf(err, "parsing decimal %q", s)
	}
	return NewDecimal(d), nil
}

// Percent returns round2(part / whole × 100). A non-positive whole yields 0.
func Percent(part, whole int64) Decimal {
	if whole <= 0 {
		return Decimal{}
	}
	return NewDecimal(decimal.NewFromInt(part).Mul(hundred).Div(decimal.NewFromInt(whole)))
}

func (d Decimal) Add(o Decimal) Decimal { return Decimal{d.Decimal.Add(o.Decimal)} }
func (d Decimal) Sub(o Decimal) Decimal { return Decimal{d.Decimal.Sub(o.Decimal)} }

// String always renders two fraction digits.
func (d Decimal) String() string {
	return d.StringFixed(2)
}

func (d Decimal) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(d.String())), nil
}

// UnmarshalJSON accepts both JSON strings and numbers.
func (d *Decimal) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	s := string(data)
	if unquoted, err := strconv.Unquote(s); err == nil {
		s = unquoted
	}
	parsed, err := ParseDecimal(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
