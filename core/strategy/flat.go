// Package strategy - flat-rate pricing
package strategy

import (
	"freight-rate/core/types"
	"freight-rate/internal/errors"
)

// flatStrategy charges a single configured rate regardless of weight
// or zone. It is the fallback when a carrier has no other strategy
// configured.
type flatStrategy struct{}

func (flatStrategy) Type() types.RateType { return types.RateTypeFlat }

func (flatStrategy) Price(ctx Context) (Priced, error) {
	if !ctx.Card.FlatRate.IsPositive() {
		return Priced{}, errors.NoApplicableRate("rate card has no flat rate configured")
	}

	line := freightLine(ctx, "Freight - flat rate", ctx.Card.FlatRate, nil)
	return priced([]types.RateLineItem{line}, nil), nil
}
