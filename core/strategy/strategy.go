// Package strategy implements the per-rate-card pricing strategies.
//
// Every rate card carries one strategy type (skid, weight break, zone
// pair, or flat). A strategy turns a chargeable weight or skid count
// into an ordered set of freight line items, or fails with an
// explicit no-applicable-rate condition. Strategies never guess: a
// lookup miss is a failure, not a default.
package strategy

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"freight-rate/core/types"
	"freight-rate/core/zone"
	"freight-rate/internal/config"
	"freight-rate/internal/errors"
)

// ChargeCodeFreight is the billing code for base freight lines.
const ChargeCodeFreight = "FRT"

// Context is the input to a pricing attempt. All configuration has
// been pre-fetched by the caller; pricing is pure computation.
type Context struct {
	// Shipment is the raw rating input
	Shipment types.Shipment

	// Weight is the chargeable weight computation
	Weight types.WeightResult

	// Zones is the resolved zone pair. Strategies that key off
	// postal prefixes read the shipment's locations directly.
	Zones zone.Pair

	// CarrierName labels the produced line items
	CarrierName string

	// Card is the rate card being priced from
	Card types.RateCard

	// Defaults supplies system-wide business defaults (margin ratio,
	// prefix length, skid break rounding)
	Defaults config.Defaults
}

// Priced is a successful pricing outcome.
type Priced struct {
	// Lines is the ordered freight breakdown
	Lines []types.RateLineItem

	// BaseTotal is the decimal sum of line charges
	BaseTotal decimal.Decimal

	// Alternates carries alternate-carrier comparisons embedded in
	// the rate table
	Alternates []types.AlternateSuggestion
}

// Strategy prices a shipment from one rate card.
type Strategy interface {
	// Type returns the rate type this strategy serves
	Type() types.RateType

	// Price computes the freight lines, or fails with a
	// NO_APPLICABLE_RATE error
	Price(ctx Context) (Priced, error)
}

// ForCard selects the strategy for a rate card. An empty rate type
// falls back to flat pricing; an unrecognized one is a configuration
// shape error.
func ForCard(card types.RateCard) (Strategy, error) {
	switch card.RateType {
	case types.RateTypeSkid:
		return skidStrategy{}, nil
	case types.RateTypeWeight:
		return weightBreakStrategy{}, nil
	case types.RateTypeZone:
		return zonePairStrategy{}, nil
	case types.RateTypeFlat, "":
		return flatStrategy{}, nil
	default:
		return nil, errors.Newf(errors.KindInternal, "unsupported rate type %q on rate card %s", card.RateType, card.ID)
	}
}

// marginRatio returns the cost/charge ratio for lines with no
// explicit cost: the card's override when present, else the system
// default.
func marginRatio(ctx Context) decimal.Decimal {
	if ctx.Card.CostMarginRatio != nil {
		return *ctx.Card.CostMarginRatio
	}
	return ctx.Defaults.CostMarginRatio
}

// freightLine builds a base freight line item. A nil cost falls back
// to the margin-derived default.
func freightLine(ctx Context, label string, charge decimal.Decimal, cost *decimal.Decimal) types.RateLineItem {
	currency := ctx.Card.Currency
	if currency == "" {
		currency = ctx.Defaults.DefaultCurrency
	}

	lineCost := charge.Mul(marginRatio(ctx)).Round(2)
	if cost != nil {
		lineCost = *cost
	}

	return types.RateLineItem{
		ID:             uuid.NewString(),
		Carrier:        ctx.CarrierName,
		ChargeCode:     ChargeCodeFreight,
		Label:          label,
		Cost:           lineCost,
		CostCurrency:   currency,
		Charge:         charge.Round(2),
		ChargeCurrency: currency,
		Source:         types.ChargeSourceAuto,
	}
}

// priced wraps freight lines into a Priced, summing the base total
// with decimal arithmetic.
func priced(lines []types.RateLineItem, alternates []types.AlternateSuggestion) Priced {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Charge)
	}
	return Priced{Lines: lines, BaseTotal: total, Alternates: alternates}
}
