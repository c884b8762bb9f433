// Package engine - concurrent multi-carrier shopping
//
// Shopping a shipment across N carriers is embarrassingly parallel:
// each carrier's evaluation is independent pure computation over its
// own configuration. Evaluations fan out over a bounded worker pool
// so a large carrier list cannot overwhelm the configuration store.
package engine

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"freight-rate/core/types"
	"freight-rate/internal/errors"
)

// defaultShopWorkers bounds concurrency when none is configured.
const defaultShopWorkers = 4

// Shop evaluates every carrier against the shipment and returns one
// result per carrier, preserving input order. A failed carrier never
// aborts the batch; its slot carries a structured failure result. A
// panic inside a single evaluation (corrupt configuration shape) is
// caught and confined to that carrier.
func (e *Engine) Shop(ctx context.Context, shipment types.Shipment, carrierIDs []string) []*types.RateResult {
	results := make([]*types.RateResult, len(carrierIDs))
	if len(carrierIDs) == 0 {
		return results
	}

	workers := e.opts.Defaults.ShopWorkers
	if workers <= 0 {
		workers = defaultShopWorkers
	}
	if workers > len(carrierIDs) {
		workers = len(carrierIDs)
	}

	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup

	for i, carrierID := range carrierIDs {
		if ctx.Err() != nil {
			results[i] = e.cancelled(carrierID, ctx.Err())
			continue
		}

		wg.Add(1)
		sem <- struct{}{}
		go func(slot int, id string) {
			defer wg.Done()
			defer func() { <-sem }()
			results[slot] = e.rateGuarded(ctx, Request{CarrierID: id, Shipment: shipment})
		}(i, carrierID)
	}

	wg.Wait()

	succeeded := 0
	for _, r := range results {
		if r != nil && r.Success {
			succeeded++
		}
	}
	e.log.Info("shop complete",
		zap.Int("carriers", len(carrierIDs)),
		zap.Int("priced", succeeded))

	return results
}

// rateGuarded runs one evaluation with panic confinement.
func (e *Engine) rateGuarded(ctx context.Context, req Request) (result *types.RateResult) {
	defer func() {
		if r := recover(); r != nil {
			e.log.Error("carrier evaluation panicked",
				zap.String("carrier_id", req.CarrierID),
				zap.Any("panic", r))
			result = e.fail(
				&types.RateResult{Carrier: types.CarrierRef{ID: req.CarrierID}},
				errors.Newf(errors.KindInternal, "carrier evaluation failed: %v", r))
		}
	}()
	return e.Rate(ctx, req)
}

func (e *Engine) cancelled(carrierID string, cause error) *types.RateResult {
	return e.fail(
		&types.RateResult{Carrier: types.CarrierRef{ID: carrierID}},
		errors.Wrap(errors.KindInternal, fmt.Sprintf("shop cancelled before evaluating %s", carrierID), cause))
}
