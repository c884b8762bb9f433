// Package strategy - zone-pair pricing
package strategy

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"freight-rate/core/types"
	"freight-rate/internal/errors"
)

// zonePairStrategy prices by an exact postal-prefix pair lookup:
// base rate plus a per-weight rate, floored at a minimum charge.
type zonePairStrategy struct{}

func (zonePairStrategy) Type() types.RateType { return types.RateTypeZone }

func (zonePairStrategy) Price(ctx Context) (Priced, error) {
	prefixLen := ctx.Defaults.ZonePrefixLen
	if prefixLen <= 0 {
		prefixLen = 3
	}

	from := postalPrefix(ctx.Shipment.Origin.PostalCode, prefixLen)
	to := postalPrefix(ctx.Shipment.Destination.PostalCode, prefixLen)
	if from == "" || to == "" {
		return Priced{}, errors.NoApplicableRate("zone-based rating requires postal codes on both ends")
	}

	var match *types.ZoneRate
	for i, z := range ctx.Card.Zones {
		if strings.EqualFold(z.FromZone, from) && strings.EqualFold(z.ToZone, to) {
			match = &ctx.Card.Zones[i]
			break
		}
	}
	if match == nil {
		return Priced{}, errors.NoApplicableRate(
			fmt.Sprintf("no zone rate configured for %s -> %s", from, to))
	}

	charge := match.BaseRate.Add(
		decimal.NewFromFloat(ctx.Weight.ChargeableWeight).Mul(match.PerWeightRate))
	if charge.LessThan(match.MinimumCharge) {
		charge = match.MinimumCharge
	}

	label := fmt.Sprintf("Freight - zone %s to %s", from, to)
	line := freightLine(ctx, label, charge, nil)

	return priced([]types.RateLineItem{line}, nil), nil
}

// postalPrefix normalizes a postal/zip code and truncates it to the
// carrier's prefix length.
func postalPrefix(code string, length int) string {
	cleaned := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(code), " ", ""))
	if len(cleaned) < length {
		return cleaned
	}
	return cleaned[:length]
}
