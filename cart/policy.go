package cart

import (
	"fmt"

	"qube-server/models"
)

// Store-wide purchase policy defaults. Every place that needs the 20/10 rule
// (cart mutations, checkout validation, the RFQ form) sources it from here.
const (
	DefaultMinimumOrderQuantity = 20
	DefaultOrderIncrement       = 10
)

// QuantityPolicy is a product's purchase policy: the minimum order quantity
// and the step size quantities must align to.
type QuantityPolicy struct {
	Minimum   int `json:"minimum"`
	Increment int `json:"increment"`
}

var defaults = QuantityPolicy{
	Minimum:   DefaultMinimumOrderQuantity,
	Increment: DefaultOrderIncrement,
}

// DefaultPolicy returns the store-wide policy applied when a product carries
// no policy of its own. It is also the rule the RFQ form validates against.
func DefaultPolicy() QuantityPolicy {
	return defaults
}

// SetDefaults overrides the store-wide policy, typically from configuration.
func SetDefaults(p QuantityPolicy) error {
	if p.Minimum < 0 {
		return fmt.Errorf("cart: minimum order quantity must not be negative, got %d", p.Minimum)
	}
	if p.Increment < 1 {
		return fmt.Errorf("cart: order increment must be positive, got %d", p.Increment)
	}
	defaults = p
	return nil
}

// PolicyFor resolves a product's effective policy, falling back to the store
// defaults for absent (non-positive) fields.
func PolicyFor(p models.Product) QuantityPolicy {
	policy := defaults
	if p.MinOrderQuantity > 0 {
		policy.Minimum = p.MinOrderQuantity
	}
	if p.OrderIncrement > 0 {
		policy.Increment = p.OrderIncrement
	}
	return policy
}

// Normalize maps a requested quantity to a valid one: quantities at or below
// the minimum become the minimum, anything above it is rounded up to the next
// multiple of the increment. Normalize is idempotent.
//
// Panics when the policy carries a non-positive increment; policies resolved
// through PolicyFor or DefaultPolicy can never trigger this.
func (p QuantityPolicy) Normalize(requested int) int {
	if p.Increment < 1 {
		panic(fmt.Sprintf("cart: order increment must be positive, got %d", p.Increment))
	}
	if requested <= p.Minimum {
		return p.Minimum
	}
	if rem := requested % p.Increment; rem != 0 {
		return requested + (p.Increment - rem)
	}
	return requested
}

// Check reports whether a quantity satisfies the policy. Unlike Normalize it
// never coerces; it is the validation used at form boundaries where a bad
// value is surfaced to the user instead of silently corrected.
func (p QuantityPolicy) Check(quantity int) error {
	if quantity < p.Minimum {
		return fmt.Errorf("minimum quantity is %d units", p.Minimum)
	}
	if p.Increment > 1 && quantity%p.Increment != 0 {
		return fmt.Errorf("quantity must be in multiples of %d units", p.Increment)
	}
	return nil
}
