// Package engine assembles priced, itemized freight rates.
//
// The engine is the public entry point of the rating core. One call
// evaluates one carrier against one shipment, strictly top to bottom:
// weight, eligibility, zones, strategy pricing, accessorials. Every
// expected business failure comes back as a structured result, never
// a panic, so multi-carrier shops keep evaluating other carriers.
package engine

import (
	"context"

	"go.uber.org/zap"

	"freight-rate/core/accessorial"
	"freight-rate/core/eligibility"
	"freight-rate/core/strategy"
	"freight-rate/core/types"
	"freight-rate/core/weight"
	"freight-rate/core/zone"
	"freight-rate/internal/config"
	"freight-rate/internal/errors"
	"freight-rate/internal/logging"
)

// Options configure an Engine.
type Options struct {
	// Defaults supplies system-wide business defaults
	Defaults config.Defaults

	// AllowMissingZoneConfig lets a carrier with no zone
	// configuration quote without zone gating. The zero value is
	// strict: absence is a configuration error. A caller that wants
	// permissiveness has to say so.
	AllowMissingZoneConfig bool
}

// Engine is the rate assembler.
type Engine struct {
	store ConfigStore
	opts  Options
	log   *zap.Logger
}

// New creates an Engine over a configuration store.
func New(store ConfigStore, opts Options) *Engine {
	if opts.Defaults.DimFactor == 0 {
		opts.Defaults = config.DefaultDefaults()
	}
	return &Engine{
		store: store,
		opts:  opts,
		log:   logging.Named("rate-engine"),
	}
}

// Request is one carrier evaluation.
type Request struct {
	CarrierID string
	Shipment  types.Shipment
}

// Rate evaluates one carrier against one shipment. The returned
// result is always non-nil; business failures set Success=false with
// an error kind and reason.
func (e *Engine) Rate(ctx context.Context, req Request) *types.RateResult {
	result := &types.RateResult{
		Carrier: types.CarrierRef{ID: req.CarrierID},
	}

	// Carrier registry lookup.
	carrier, err := e.store.GetCarrier(ctx, req.CarrierID)
	if err != nil {
		return e.fail(result, err)
	}
	result.Carrier.Name = carrier.Name
	if !carrier.Enabled {
		return e.fail(result, errors.Newf(errors.KindConfigMissing, "carrier %s is disabled", carrier.Name))
	}

	// Chargeable weight.
	w, err := weight.Calculate(req.Shipment.Packages, weight.Options{
		DimFactor: e.opts.Defaults.DimFactor,
		Units:     req.Shipment.Units,
	})
	if err != nil {
		return e.fail(result, err)
	}
	result.Weight = &w

	// Eligibility gate. Rejection short-circuits before any zone or
	// pricing work.
	if err := e.checkEligibility(ctx, req, w); err != nil {
		return e.fail(result, err)
	}

	// Rate card selection: first enabled card, most recent first.
	// Selection among multiple cards is deliberately this simple.
	cards, err := e.store.GetRateCards(ctx, req.CarrierID, true)
	if err != nil {
		return e.fail(result, errors.Internal("rate card lookup failed", err))
	}
	if len(cards) == 0 {
		return e.fail(result, errors.ConfigMissing("rate card", req.CarrierID))
	}
	card := cards[0]
	result.RateCard = &types.RateCardRef{ID: card.ID, Name: card.Name, Type: card.RateType}

	// Zone resolution. Both ends must resolve; there is no default
	// zone fallback.
	zones, err := e.resolveZones(ctx, req)
	if err != nil {
		return e.fail(result, err)
	}

	// Strategy pricing.
	strat, err := strategy.ForCard(card)
	if err != nil {
		return e.fail(result, err)
	}
	pricedResult, err := strat.Price(strategy.Context{
		Shipment:    req.Shipment,
		Weight:      w,
		Zones:       zones,
		CarrierName: carrier.Name,
		Card:        card,
		Defaults:    e.opts.Defaults,
	})
	if err != nil {
		return e.fail(result, err)
	}

	currency := card.Currency
	if currency == "" {
		currency = e.opts.Defaults.DefaultCurrency
	}

	// Accessorials on top of the base charge.
	defs := e.opts.Defaults.Accessorials
	if overrides, err := e.store.GetAccessorials(ctx, req.CarrierID); err == nil {
		defs = append(append([]types.AccessorialDef{}, defs...), overrides...)
	} else {
		e.log.Warn("accessorial override lookup failed, using defaults",
			zap.String("carrier_id", req.CarrierID), zap.Error(err))
	}
	acc := accessorial.Calculate(accessorial.Input{
		Requested:   req.Shipment.Accessorials,
		BaseTotal:   pricedResult.BaseTotal,
		Currency:    currency,
		CarrierID:   req.CarrierID,
		CarrierName: carrier.Name,
		Definitions: defs,
	})

	result.Success = true
	result.Breakdown = append(pricedResult.Lines, acc.Lines...)
	result.BaseTotal = pricedResult.BaseTotal
	result.AdditionalServicesTotal = acc.Total
	result.FinalTotal = pricedResult.BaseTotal.Add(acc.Total)
	result.Currency = currency
	result.AlternateCarriers = pricedResult.Alternates
	result.SkippedServices = acc.Skipped

	e.log.Debug("carrier rated",
		zap.String("carrier_id", req.CarrierID),
		zap.String("rate_card", card.ID),
		zap.String("final_total", result.FinalTotal.String()))

	return result
}

// checkEligibility fetches and evaluates both rule kinds. The first
// violated rule supplies the headline reason; all violations are
// logged for diagnostics.
func (e *Engine) checkEligibility(ctx context.Context, req Request, w types.WeightResult) error {
	var rules []types.EligibilityRule
	for _, kind := range []types.RuleKind{types.RuleKindWeight, types.RuleKindDimension} {
		found, err := e.store.GetEligibilityRules(ctx, req.CarrierID, kind)
		if err != nil {
			return errors.Internal("eligibility rule lookup failed", err)
		}
		rules = append(rules, found...)
	}

	decision := eligibility.Evaluate(req.Shipment, eligibility.Measure(req.Shipment, w), rules)
	if decision.Admitted {
		return nil
	}

	for _, v := range decision.Violations {
		e.log.Debug("eligibility rule violated",
			zap.String("carrier_id", req.CarrierID),
			zap.String("rule_id", v.Rule.ID),
			zap.String("reason", v.Reason))
	}
	return errors.Ineligible(decision.Reason())
}

// resolveZones applies the carrier's zone taxonomy to both shipment
// ends. A missing zone config is a configuration error unless the
// caller explicitly opted into permissiveness.
func (e *Engine) resolveZones(ctx context.Context, req Request) (zone.Pair, error) {
	cfg, err := e.store.GetZoneConfig(ctx, req.CarrierID)
	if err != nil {
		return zone.Pair{}, errors.Internal("zone config lookup failed", err)
	}
	if cfg == nil {
		if e.opts.AllowMissingZoneConfig {
			return zone.Pair{}, nil
		}
		return zone.Pair{}, errors.ConfigMissing("zone config", req.CarrierID)
	}

	pair, originOK, destOK := zone.ResolvePair(req.Shipment.Origin, req.Shipment.Destination, cfg)
	if !originOK {
		return zone.Pair{}, errors.UnservedLocation("origin", req.Shipment.Origin.String())
	}
	if !destOK {
		return zone.Pair{}, errors.UnservedLocation("destination", req.Shipment.Destination.String())
	}
	return pair, nil
}

// fail converts an error into a structured failure result.
func (e *Engine) fail(result *types.RateResult, err error) *types.RateResult {
	result.Success = false
	result.ErrorKind = string(errors.KindOf(err))
	if domain, ok := err.(*errors.Error); ok {
		result.Error = domain.Message
	} else {
		result.Error = err.Error()
	}

	e.log.Debug("carrier evaluation failed",
		zap.String("carrier_id", result.Carrier.ID),
		zap.String("kind", result.ErrorKind),
		zap.String("reason", result.Error))

	return result
}
