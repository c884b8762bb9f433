// Package types - Shipment input types
package types

import "strings"

// UnitSystem identifies the measurement system of a shipment
type UnitSystem string

const (
	// UnitsImperial means pounds and inches
	UnitsImperial UnitSystem = "imperial"

	// UnitsMetric means kilograms and centimeters
	UnitsMetric UnitSystem = "metric"
)

// Package is a single line of freight on a shipment. Inputs are
// immutable; the engine never persists or mutates them.
type Package struct {
	// Quantity is the piece count for this line
	Quantity int `json:"quantity"`

	// Weight is the per-piece weight
	Weight float64 `json:"weight"`

	// Length, Width, Height are the per-piece dimensions
	Length float64 `json:"length"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`

	// PackagingType tags the handling unit (e.g. "skid", "pallet",
	// "box", or a carrier type code)
	PackagingType string `json:"packaging_type"`
}

// skidTypeCodes are the explicit packaging type codes that count as
// palletized freight.
var skidTypeCodes = map[string]bool{
	"SKD": true,
	"PLT": true,
}

// IsSkid reports whether the package is a palletized unit, either by
// explicit type code or by free-text match on "pallet"/"skid".
func (p Package) IsSkid() bool {
	tag := strings.TrimSpace(p.PackagingType)
	if skidTypeCodes[strings.ToUpper(tag)] {
		return true
	}
	lower := strings.ToLower(tag)
	return strings.Contains(lower, "pallet") || strings.Contains(lower, "skid")
}

// Location is one end of a shipment.
type Location struct {
	// City name
	City string `json:"city"`

	// Province holds the province or state code (e.g. "ON", "NY")
	Province string `json:"province"`

	// Country is the ISO alpha-2 country code ("CA", "US")
	Country string `json:"country"`

	// PostalCode is the postal or zip code
	PostalCode string `json:"postal_code"`
}

// String returns a short human-readable form for error messages.
func (l Location) String() string {
	parts := []string{}
	if l.City != "" {
		parts = append(parts, l.City)
	}
	if l.Province != "" {
		parts = append(parts, l.Province)
	}
	if l.Country != "" {
		parts = append(parts, l.Country)
	}
	if len(parts) == 0 {
		return "(unspecified)"
	}
	return strings.Join(parts, ", ")
}

// Shipment is the full rating input for one quote attempt.
type Shipment struct {
	// Packages is the freight being quoted
	Packages []Package `json:"packages"`

	// Origin and Destination are the shipment endpoints
	Origin      Location `json:"origin"`
	Destination Location `json:"destination"`

	// CompanyID, CustomerID, ServiceCode scope eligibility rules.
	// Empty values match wildcard-scoped rules only.
	CompanyID   string `json:"company_id,omitempty"`
	CustomerID  string `json:"customer_id,omitempty"`
	ServiceCode string `json:"service_code,omitempty"`

	// Accessorials lists requested additional service codes
	Accessorials []string `json:"accessorials,omitempty"`

	// Units is the measurement system of the packages
	Units UnitSystem `json:"units,omitempty"`
}

// SkidCount sums the quantities of palletized packages.
func (s Shipment) SkidCount() int {
	count := 0
	for _, p := range s.Packages {
		if p.IsSkid() {
			count += p.Quantity
		}
	}
	return count
}

// WeightResult is the chargeable-weight computation for a shipment.
// Derived, recomputed every call; never cached because packages may
// change between quote attempts.
type WeightResult struct {
	// ActualWeight is the summed scale weight
	ActualWeight float64 `json:"actual_weight"`

	// VolumetricWeight is total volume divided by the dim factor
	VolumetricWeight float64 `json:"volumetric_weight"`

	// ChargeableWeight is max(actual, volumetric), the billing basis
	ChargeableWeight float64 `json:"chargeable_weight"`

	// TotalVolume is the summed cubic volume
	TotalVolume float64 `json:"total_volume"`

	// DimFactor is the divisor that was applied
	DimFactor float64 `json:"dim_factor"`

	// Units is the measurement system the inputs were in
	Units UnitSystem `json:"units"`
}
