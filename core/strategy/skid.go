// Package strategy - skid-count pricing
package strategy

import (
	"fmt"
	"sort"

	"freight-rate/core/types"
	"freight-rate/internal/errors"
)

// skidStrategy prices palletized freight by skid count. It cannot
// price non-palletized shipments.
type skidStrategy struct{}

func (skidStrategy) Type() types.RateType { return types.RateTypeSkid }

func (skidStrategy) Price(ctx Context) (Priced, error) {
	count := ctx.Shipment.SkidCount()
	if count == 0 {
		return Priced{}, errors.NoApplicableRate("no skids found: skid-based rating requires palletized packages")
	}
	if len(ctx.Card.SkidRates) == 0 {
		return Priced{}, errors.NoApplicableRate("rate card has no skid rates configured")
	}

	row, err := matchSkidRow(ctx.Card.SkidRates, count, ctx.Defaults.RoundUpSkidBreaks)
	if err != nil {
		return Priced{}, err
	}

	label := fmt.Sprintf("Freight - %d skid(s)", count)
	line := freightLine(ctx, label, row.Charge, row.Cost)

	var alternates []types.AlternateSuggestion
	if row.Alternate != nil {
		alternates = append(alternates, types.AlternateSuggestion{
			Name:    row.Alternate.Carrier,
			Cost:    row.Alternate.Cost,
			Savings: line.Cost.Sub(row.Alternate.Cost),
		})
	}

	return priced([]types.RateLineItem{line}, alternates), nil
}

// matchSkidRow finds the table row for a skid count. An exact match
// wins; otherwise the count rounds up to the smallest published break
// that covers it. The round-up is deliberate and explicit so an
// unlisted count never silently falls back to skid-1 pricing.
func matchSkidRow(rates []types.SkidRate, count int, roundUp bool) (types.SkidRate, error) {
	for _, r := range rates {
		if r.SkidCount == count {
			return r, nil
		}
	}

	if roundUp {
		sorted := make([]types.SkidRate, len(rates))
		copy(sorted, rates)
		sort.Slice(sorted, func(i, j int) bool { return sorted[i].SkidCount < sorted[j].SkidCount })
		for _, r := range sorted {
			if r.SkidCount >= count {
				return r, nil
			}
		}
	}

	return types.SkidRate{}, errors.NoApplicableRate(
		fmt.Sprintf("no skid rate covers %d skid(s)", count))
}
