// Package accessorial prices additional named services on top of the
// base freight charge.
package accessorial

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"freight-rate/core/types"
	"freight-rate/internal/logging"
)

// ChargeCode is the billing code for accessorial lines.
const ChargeCode = "ACC"

// Result is the accessorial portion of a quote. Unrecognized codes do
// not fail the quote, but they are reported rather than dropped
// invisibly.
type Result struct {
	// Lines is the ordered accessorial breakdown
	Lines []types.RateLineItem

	// Total is the decimal sum of accessorial charges
	Total decimal.Decimal

	// Skipped lists requested codes no definition was found for
	Skipped []string
}

// Input configures one accessorial calculation.
type Input struct {
	// Requested is the service codes asked for on the shipment
	Requested []string

	// BaseTotal is the freight total percentage fees apply to
	BaseTotal decimal.Decimal

	// Currency labels the produced lines
	Currency types.Currency

	// CarrierID selects carrier-specific overrides in Definitions
	CarrierID string

	// CarrierName labels the produced lines
	CarrierName string

	// Definitions is the available service table: system defaults
	// plus any carrier overrides
	Definitions []types.AccessorialDef
}

// Calculate prices each recognized requested service as either a flat
// fee or a percentage of the base total.
func Calculate(in Input) Result {
	result := Result{Total: decimal.Zero}

	for _, code := range in.Requested {
		def, ok := lookup(in.Definitions, code, in.CarrierID)
		if !ok {
			result.Skipped = append(result.Skipped, code)
			logging.Warn("unknown accessorial code skipped",
				zap.String("code", code),
				zap.String("carrier_id", in.CarrierID))
			continue
		}

		charge := def.Amount
		if def.Kind == types.AccessorialPercent {
			charge = in.BaseTotal.Mul(def.Amount).Div(decimal.NewFromInt(100))
		}
		charge = charge.Round(2)

		result.Lines = append(result.Lines, types.RateLineItem{
			ID:             uuid.NewString(),
			Carrier:        in.CarrierName,
			ChargeCode:     ChargeCode,
			Label:          def.Label,
			Cost:           charge, // accessorials pass through at cost
			CostCurrency:   in.Currency,
			Charge:         charge,
			ChargeCurrency: in.Currency,
			Source:         types.ChargeSourceAuto,
		})
		result.Total = result.Total.Add(charge)
	}

	return result
}

// lookup finds the definition for a code. A carrier-scoped definition
// shadows the system default for the same code.
func lookup(defs []types.AccessorialDef, code, carrierID string) (types.AccessorialDef, bool) {
	var fallback types.AccessorialDef
	found := false

	for _, d := range defs {
		if !strings.EqualFold(d.Code, code) {
			continue
		}
		if d.CarrierID != "" {
			if strings.EqualFold(d.CarrierID, carrierID) {
				return d, true
			}
			continue
		}
		fallback = d
		found = true
	}

	return fallback, found
}
