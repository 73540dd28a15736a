// Package model defines domain types for expenses and budgets.
package model

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Conventional expense types. Type is free-form; these are the defaults
// offered by forms and used when none is given.
const (
	TypePersonal = "Personal"
	TypeBusiness = "Business"
)

var (
	ErrEmptyName      = errors.New("expense name is empty")
	ErrNegativeAmount = errors.New("expense amount is negative")
)

// Expense is a single expense record. Records are replaced, never edited.
type Expense struct {
	ID     uuid.UUID       `json:"id"`
	Name   string          `json:"name"`
	Type   string          `json:"type"`
	Amount decimal.Decimal `json:"amount"`
}

// NewExpense validates the input and assigns a fresh ID.
func NewExpense(name, typ string, amount decimal.Decimal) (Expense, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Expense{}, ErrEmptyName
	}
	if amount.IsNegative() {
		return Expense{}, ErrNegativeAmount
	}
	typ = strings.TrimSpace(typ)
	if typ == "" {
		typ = TypePersonal
	}
	return Expense{
		ID:     uuid.New(),
		Name:   name,
		Type:   typ,
		Amount: amount,
	}, nil
}

// ParseAmount parses a user-entered amount. Commas are read as thousands
// separators ("1,234.56") unless a single comma is followed by one or two
// digits and there is no dot, in which case it is a decimal comma ("4,50").
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "$")
	if strings.Contains(s, ",") {
		norm, err := normalizeCommas(s)
		if err != nil {
			return decimal.Zero, err
		}
		s = norm
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, err
	}
	if d.IsNegative() {
		return decimal.Zero, ErrNegativeAmount
	}
	return d, nil
}

func normalizeCommas(s string) (string, error) {
	if !strings.Contains(s, ".") && strings.Count(s, ",") == 1 {
		frac := s[strings.Index(s, ",")+1:]
		if len(frac) == 1 || len(frac) == 2 {
			return strings.Replace(s, ",", ".", 1), nil
		}
	}

	whole, frac, hasFrac := strings.Cut(s, ".")
	digits := strings.TrimPrefix(whole, "-")
	groups := strings.Split(digits, ",")
	for i, g := range groups {
		if (i == 0 && (len(g) < 1 || len(g) > 3)) || (i > 0 && len(g) != 3) {
			return "", fmt.Errorf("amount %q: misplaced thousands separator", s)
		}
	}
	out := whole[:len(whole)-len(digits)] + strings.Join(groups, "")
	if hasFrac {
		out += "." + frac
	}
	return out, nil
}
