// Package strategy - weight-break pricing
package strategy

import (
	"fmt"

	"github.com/shopspring/decimal"

	"freight-rate/core/types"
	"freight-rate/internal/errors"
)

// weightBreakStrategy prices by the weight break whose [min,max]
// range contains the chargeable weight.
type weightBreakStrategy struct{}

func (weightBreakStrategy) Type() types.RateType { return types.RateTypeWeight }

func (weightBreakStrategy) Price(ctx Context) (Priced, error) {
	w := ctx.Weight.ChargeableWeight

	var match *types.WeightBreak
	for i, b := range ctx.Card.WeightBreaks {
		if w >= b.MinWeight && w <= b.MaxWeight {
			match = &ctx.Card.WeightBreaks[i]
			break
		}
	}
	if match == nil {
		return Priced{}, errors.NoApplicableRate(
			fmt.Sprintf("no weight break contains %.2f", w))
	}

	charge := decimal.NewFromFloat(w).Mul(match.PerUnitRate)
	if charge.LessThan(match.MinimumCharge) {
		charge = match.MinimumCharge
	}

	label := fmt.Sprintf("Freight - %.2f @ %s/unit", w, match.PerUnitRate.String())
	line := freightLine(ctx, label, charge, nil)

	return priced([]types.RateLineItem{line}, nil), nil
}
