// Package weight computes the chargeable weight of a shipment.
package weight

import (
	"math"

	"freight-rate/core/types"
	"freight-rate/internal/errors"
)

// DefaultDimFactor is the stock dimensional weight divisor.
const DefaultDimFactor = 166

// Options configure a weight calculation.
type Options struct {
	// DimFactor is the volumetric divisor; zero means DefaultDimFactor
	DimFactor float64

	// Units tags the result with the input measurement system
	Units types.UnitSystem
}

// Calculate converts raw package dimensions and weights into a single
// chargeable weight.
//
// An empty package list yields an all-zero result rather than an
// error: a zero-weight pricing attempt is expected to fail later at
// the rate strategy with an explicit no-matching-rate condition.
// Malformed packages (negative values, quantity below one) are
// rejected here.
func Calculate(packages []types.Package, opts Options) (types.WeightResult, error) {
	dimFactor := opts.DimFactor
	if dimFactor <= 0 {
		dimFactor = DefaultDimFactor
	}

	result := types.WeightResult{
		DimFactor: dimFactor,
		Units:     opts.Units,
	}

	for i, p := range packages {
		if p.Quantity < 1 {
			return types.WeightResult{}, errors.InvalidInput("package quantity must be at least 1").
				WithContext("package_index", i)
		}
		if p.Weight < 0 || p.Length < 0 || p.Width < 0 || p.Height < 0 {
			return types.WeightResult{}, errors.InvalidInput("package weight and dimensions must not be negative").
				WithContext("package_index", i)
		}

		qty := float64(p.Quantity)
		result.ActualWeight += p.Weight * qty
		result.TotalVolume += p.Length * p.Width * p.Height * qty
	}

	result.VolumetricWeight = result.TotalVolume / dimFactor
	result.ChargeableWeight = round2(math.Max(result.ActualWeight, result.VolumetricWeight))

	return result, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
