package valueobject

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	two     = decimal.NewFromInt(2)
	hundred = decimal.NewFromInt(100)
)

// Money is an immutable rupee amount. The shop bills in INR only, so no
// currency code is carried and persistence stores the bare decimal.
// All operations return new values.
type Money struct {
	amount decimal.Decimal
}

// NewMoney wraps a decimal amount as Money
func NewMoney(amount decimal.Decimal) Money {
	return Money{amount: amount}
}

// MoneyFromString parses a decimal string into Money
func MoneyFromString(amount string) (Money, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return Money{}, fmt.Errorf("invalid amount: %w", err)
	}
	return Money{amount: d}, nil
}

// ZeroMoney returns a zero rupee amount
func ZeroMoney() Money {
	return Money{amount: decimal.Zero}
}

// Amount returns the underlying decimal
func (m Money) Amount() decimal.Decimal {
	return m.amount
}

// Add returns the sum of both amounts
func (m Money) Add(other Money) Money {
	return Money{amount: m.amount.Add(other.amount)}
}

// Sub returns the difference of both amounts
func (m Money) Sub(other Money) Money {
	return Money{amount: m.amount.Sub(other.amount)}
}

// Neg returns the amount with the sign reversed
func (m Money) Neg() Money {
	return Money{amount: m.amount.Neg()}
}

// IsZero returns true if the amount is zero
func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

// IsPositive returns true if the amount is positive
func (m Money) IsPositive() bool {
	return m.amount.IsPositive()
}

// IsNegative returns true if the amount is negative
func (m Money) IsNegative() bool {
	return m.amount.IsNegative()
}

// Equal returns true if both amounts are equal
func (m Money) Equal(other Money) bool {
	return m.amount.Equal(other.amount)
}

// ApplyDiscount returns the amount after a percentage discount
func (m Money) ApplyDiscount(discountPercent decimal.Decimal) Money {
	factor := decimal.NewFromInt(1).Sub(discountPercent.Div(hundred))
	return Money{amount: m.amount.Mul(factor)}
}

// SplitGST treats the amount as a taxable base and splits the GST on it
// evenly into CGST and SGST, the intra-state treatment. ratePercent is the
// combined GST rate, e.g. 18 for 9% + 9%.
func (m Money) SplitGST(ratePercent decimal.Decimal) (cgst, sgst Money) {
	half := m.amount.Mul(ratePercent.Div(two)).Div(hundred)
	return Money{amount: half}, Money{amount: half}
}

// Fixed returns the amount with two decimal places, e.g. "1234.50".
// Used for CSV cells and invoice line columns.
func (m Money) Fixed() string {
	return m.amount.StringFixed(2)
}

// Display returns the amount as printed on customer-facing documents:
// rupee sign and Indian digit grouping, e.g. "₹1,23,456.78".
func (m Money) Display() string {
	fixed := m.amount.Abs().StringFixed(2)
	dot := strings.IndexByte(fixed, '.')
	sign := ""
	if m.amount.IsNegative() {
		sign = "-"
	}
	return sign + "₹" + groupIndian(fixed[:dot]) + fixed[dot:]
}

// groupIndian inserts commas in the Indian numbering style: the last three
// digits form one group and the rest pair off, so 12345678 becomes
// 1,23,45,678.
func groupIndian(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	head, tail := digits[:len(digits)-3], digits[len(digits)-3:]
	groups := []string{tail}
	for len(head) > 2 {
		groups = append([]string{head[len(head)-2:]}, groups...)
		head = head[:len(head)-2]
	}
	groups = append([]string{head}, groups...)
	return strings.Join(groups, ",")
}

// String returns the plain decimal representation
func (m Money) String() string {
	return m.amount.String()
}

// MarshalJSON implements json.Marshaler; the amount is encoded as a
// decimal string to avoid float rounding in clients.
func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.amount.String())
}

// UnmarshalJSON implements json.Unmarshaler
func (m *Money) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return fmt.Errorf("invalid amount: %w", err)
	}
	m.amount = amount
	return nil
}
