// Package types - Rate card and rate result types
package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// Currency represents a currency code
type Currency string

const (
	CurrencyCAD Currency = "CAD"
	CurrencyUSD Currency = "USD"
)

// String returns the string representation
func (c Currency) String() string {
	return string(c)
}

// RateType selects the pricing strategy of a rate card.
type RateType string

const (
	// RateTypeSkid prices by skid/pallet count
	RateTypeSkid RateType = "skid_based"

	// RateTypeWeight prices by weight break
	RateTypeWeight RateType = "weight_based"

	// RateTypeZone prices by postal-prefix zone pair
	RateTypeZone RateType = "zone_based"

	// RateTypeFlat is a single flat charge, the fallback when no
	// other type is configured
	RateTypeFlat RateType = "flat"
)

// AlternateRate is a carrier-authored comparison embedded in a skid
// rate row: what a named alternate carrier would cost for the same move.
type AlternateRate struct {
	Carrier string          `json:"carrier"`
	Cost    decimal.Decimal `json:"cost"`
}

// SkidRate is one row of a skid-count pricing table.
type SkidRate struct {
	// SkidCount is the published break
	SkidCount int `json:"skid_count"`

	// Charge is the customer-facing price at this break
	Charge decimal.Decimal `json:"charge"`

	// Cost is the carrier's internal cost, when separately configured
	Cost *decimal.Decimal `json:"cost,omitempty"`

	// Alternate carries an optional alternate-carrier comparison
	Alternate *AlternateRate `json:"alternate,omitempty"`
}

// WeightBreak is one row of a weight-break pricing table. A break
// applies when MinWeight <= chargeable weight <= MaxWeight.
type WeightBreak struct {
	MinWeight     float64         `json:"min_weight"`
	MaxWeight     float64         `json:"max_weight"`
	PerUnitRate   decimal.Decimal `json:"per_unit_rate"`
	MinimumCharge decimal.Decimal `json:"minimum_charge"`
}

// ZoneRate is one row of a zone-pair pricing table, keyed by postal
// prefix on both ends.
type ZoneRate struct {
	FromZone      string          `json:"from_zone"`
	ToZone        string          `json:"to_zone"`
	BaseRate      decimal.Decimal `json:"base_rate"`
	PerWeightRate decimal.Decimal `json:"per_weight_rate"`
	MinimumCharge decimal.Decimal `json:"minimum_charge"`
}

// RateCard is a carrier's configured pricing table plus its strategy
// type. Only the table matching RateType is consulted.
type RateCard struct {
	ID        string    `json:"id"`
	CarrierID string    `json:"carrier_id"`
	Name      string    `json:"name"`
	RateType  RateType  `json:"rate_type"`
	Currency  Currency  `json:"currency"`
	Enabled   bool      `json:"enabled"`
	CreatedAt time.Time `json:"created_at"`

	// CostMarginRatio overrides the system default cost/charge ratio
	// for lines with no explicit cost. Nil means use the default.
	CostMarginRatio *decimal.Decimal `json:"cost_margin_ratio,omitempty"`

	SkidRates    []SkidRate      `json:"skid_rates,omitempty"`
	WeightBreaks []WeightBreak   `json:"weight_breaks,omitempty"`
	Zones        []ZoneRate      `json:"zones,omitempty"`
	FlatRate     decimal.Decimal `json:"flat_rate,omitempty"`
}

// AccessorialKind says how an accessorial is priced.
type AccessorialKind string

const (
	// AccessorialFlat is a fixed fee
	AccessorialFlat AccessorialKind = "flat"

	// AccessorialPercent is a percentage of the base freight total
	AccessorialPercent AccessorialKind = "percent"
)

// AccessorialDef defines one additional service and how to price it.
type AccessorialDef struct {
	// Code is the service code requested on a shipment
	Code string `json:"code"`

	// Label is the human-readable line item label
	Label string `json:"label"`

	// Kind selects flat fee vs percentage
	Kind AccessorialKind `json:"kind"`

	// Amount is the fee for flat, or the percentage (e.g. 15 = 15%)
	// for percent
	Amount decimal.Decimal `json:"amount"`

	// CarrierID scopes a carrier override; empty means system default
	CarrierID string `json:"carrier_id,omitempty"`
}

// SeedAccessorials returns the stock additional-service table. These
// are system defaults meant to be overridden by carrier configuration.
func SeedAccessorials() []AccessorialDef {
	return []AccessorialDef{
		{Code: "SIGNATURE_REQUIRED", Label: "Signature Required", Kind: AccessorialFlat, Amount: decimal.NewFromFloat(5.00)},
		{Code: "SATURDAY_DELIVERY", Label: "Saturday Delivery", Kind: AccessorialFlat, Amount: decimal.NewFromFloat(25.00)},
		{Code: "RESIDENTIAL_DELIVERY", Label: "Residential Delivery", Kind: AccessorialFlat, Amount: decimal.NewFromFloat(15.00)},
		{Code: "FUEL_SURCHARGE", Label: "Fuel Surcharge", Kind: AccessorialPercent, Amount: decimal.NewFromFloat(15.0)},
		{Code: "INSURANCE", Label: "Insurance", Kind: AccessorialPercent, Amount: decimal.NewFromFloat(2.5)},
	}
}

// ChargeSourceAuto tags line items produced by the engine, as opposed
// to manually entered charges.
const ChargeSourceAuto = "auto_calculated"

// RateLineItem is a single billable line on a quote.
type RateLineItem struct {
	// ID uniquely identifies this line
	ID string `json:"id"`

	// Carrier is the carrier display label
	Carrier string `json:"carrier"`

	// ChargeCode is the short billing code (e.g. "FRT")
	ChargeCode string `json:"charge_code"`

	// Label is the human-readable description
	Label string `json:"label"`

	// Cost is the carrier's internal cost, when known
	Cost decimal.Decimal `json:"cost"`

	// CostCurrency is the currency of Cost
	CostCurrency Currency `json:"cost_currency"`

	// Charge is the customer-facing amount
	Charge decimal.Decimal `json:"charge"`

	// ChargeCurrency is the currency of Charge
	ChargeCurrency Currency `json:"charge_currency"`

	// Source records provenance (see ChargeSourceAuto)
	Source string `json:"source"`
}

// AlternateSuggestion is an alternate-carrier comparison surfaced on
// a successful rate.
type AlternateSuggestion struct {
	// Name is the alternate carrier's name
	Name string `json:"name"`

	// Cost is the alternate's cost for the same move
	Cost decimal.Decimal `json:"cost"`

	// Savings is our cost minus the alternate's cost
	Savings decimal.Decimal `json:"savings"`
}

// CarrierRef identifies the carrier on a rate result.
type CarrierRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// RateCardRef identifies the rate card a result was priced from.
type RateCardRef struct {
	ID   string   `json:"id"`
	Name string   `json:"name"`
	Type RateType `json:"type"`
}

// RateResult is the full outcome of one carrier evaluation. Business
// failures are carried in-band (Success=false plus ErrorKind/Error)
// so multi-carrier shops can keep evaluating other carriers.
type RateResult struct {
	Success bool `json:"success"`

	Carrier  CarrierRef   `json:"carrier"`
	RateCard *RateCardRef `json:"rate_card,omitempty"`

	// Weight is the chargeable weight computation, present whenever
	// input validation passed
	Weight *WeightResult `json:"weight_calculation,omitempty"`

	// Breakdown is the ordered, itemized rate: freight lines first,
	// then accessorial lines
	Breakdown []RateLineItem `json:"rate_breakdown,omitempty"`

	BaseTotal               decimal.Decimal `json:"base_total"`
	AdditionalServicesTotal decimal.Decimal `json:"additional_services_total"`
	FinalTotal              decimal.Decimal `json:"final_total"`
	Currency                Currency        `json:"currency,omitempty"`

	// AlternateCarriers lists cheaper-carrier suggestions, when the
	// rate card embeds comparisons
	AlternateCarriers []AlternateSuggestion `json:"alternate_carriers,omitempty"`

	// SkippedServices lists requested accessorial codes that no
	// definition was found for
	SkippedServices []string `json:"skipped_services,omitempty"`

	// ErrorKind and Error describe the failure when Success is false
	ErrorKind string `json:"error_kind,omitempty"`
	Error     string `json:"error,omitempty"`
}
