// Package datev maps portfolio bookings onto DATEV account numbers.
package datev

import (
	"github.com/google/uuid"
)

type Direction string

const (
	DirectionIncome  Direction = "income"
	DirectionExpense Direction = "expense"
)

type TaxTier string

const (
	TaxTierStandard TaxTier = "standard"
	TaxTierReduced  TaxTier = "reduced"
	TaxTierExempt   TaxTier = "exempt"
)

// WildcardCategory matches any booking category in a mapping rule.
const WildcardCategory = "*"

type Rule struct {
	PropertyID uuid.UUID
	Direction  Direction
	TaxTier    TaxTier
	Category   string
	Account    string
}

type Result struct {
	Account  string
	Matched  bool
	Wildcard bool
}

// Unmapped is the sentinel result for bookings no rule covers.
var Unmapped = Result{}

// Resolve picks the most specific rule for a booking: an exact match on
// (property, direction, tax tier, category) wins; failing that, the same
// tuple with the wildcard category; otherwise Unmapped.
func Resolve(rules []Rule, propertyID uuid.UUID, dir Direction, tier TaxTier, category string) Result {
	var wildcard *Rule
	for i := range rules {
		r := &rules[i]
		if r.PropertyID != propertyID || r.Direction != dir || r.TaxTier != tier {
			continue
		}
		if r.Category == category {
			return Result{Account: r.Account, Matched: true}
		}
		if r.Category == WildcardCategory && wildcard == nil {
			wildcard = r
		}
	}
	if wildcard != nil {
		return Result{Account: wildcard.Account, Matched: true, Wildcard: true}
	}
	return Unmapped
}
