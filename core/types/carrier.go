// Package types - Carrier configuration types
//
// Everything in this file is authored by carrier administrators and
// read-only inside the engine: configuration entities are owned and
// mutated only by administrative collaborators.
package types

import "strings"

// Carrier is a registered freight carrier.
type Carrier struct {
	// ID is the registry identifier
	ID string `json:"id" bson:"_id"`

	// Name is the display name
	Name string `json:"name" bson:"name"`

	// Enabled gates the carrier out of quoting when false
	Enabled bool `json:"enabled" bson:"enabled"`

	// SCAC is the standard carrier alpha code, when known
	SCAC string `json:"scac,omitempty" bson:"scac,omitempty"`
}

// RestrictionType enumerates what an eligibility rule bounds.
type RestrictionType string

const (
	RestrictMinWeight RestrictionType = "min_weight"
	RestrictMaxWeight RestrictionType = "max_weight"
	RestrictMinLength RestrictionType = "min_length"
	RestrictMaxLength RestrictionType = "max_length"
	RestrictMinWidth  RestrictionType = "min_width"
	RestrictMaxWidth  RestrictionType = "max_width"
	RestrictMinHeight RestrictionType = "min_height"
	RestrictMaxHeight RestrictionType = "max_height"
)

// IsMin reports whether the restriction is a lower bound.
func (r RestrictionType) IsMin() bool {
	return strings.HasPrefix(string(r), "min_")
}

// RuleKind groups eligibility rules for lookup.
type RuleKind string

const (
	RuleKindWeight    RuleKind = "weight"
	RuleKindDimension RuleKind = "dimension"
)

// Kind returns the lookup group of a restriction.
func (r RestrictionType) Kind() RuleKind {
	switch r {
	case RestrictMinWeight, RestrictMaxWeight:
		return RuleKindWeight
	default:
		return RuleKindDimension
	}
}

// ScopeAll and ScopeAny are wildcard scope values that match
// unconditionally. Both spellings occur in authored data.
const (
	ScopeAll = "ALL"
	ScopeAny = "ANY"
)

// ScopeMatches reports whether a rule scope value admits the given
// shipment value. Wildcards and empty scopes always match.
func ScopeMatches(scope, value string) bool {
	if scope == "" {
		return true
	}
	if strings.EqualFold(scope, ScopeAll) || strings.EqualFold(scope, ScopeAny) {
		return true
	}
	return strings.EqualFold(scope, value)
}

// EligibilityRule is one carrier-authored admission rule. Rules for a
// carrier are AND-ed; polarity (Exclude) must be preserved exactly as
// authored.
type EligibilityRule struct {
	// ID identifies the rule document
	ID string `json:"id" bson:"_id"`

	// CarrierID is the owning carrier
	CarrierID string `json:"carrier_id" bson:"carrier_id"`

	// Restriction says which measurement the bound applies to
	Restriction RestrictionType `json:"restriction" bson:"restriction"`

	// Bound is the numeric limit
	Bound float64 `json:"bound" bson:"bound"`

	// Unit is the unit the bound was authored in (informational)
	Unit string `json:"unit,omitempty" bson:"unit,omitempty"`

	// Enabled rules participate in evaluation; disabled rules are ignored
	Enabled bool `json:"enabled" bson:"enabled"`

	// Exclude inverts the rule: the bounded range becomes forbidden
	// rather than allowed
	Exclude bool `json:"exclude" bson:"exclude"`

	// CompanyID, CustomerID, ServiceCode scope the rule; "ALL"/"ANY"
	// match unconditionally
	CompanyID   string `json:"company_id,omitempty" bson:"company_id,omitempty"`
	CustomerID  string `json:"customer_id,omitempty" bson:"customer_id,omitempty"`
	ServiceCode string `json:"service_code,omitempty" bson:"service_code,omitempty"`
}

// AppliesTo reports whether the rule's scoping matches a shipment.
func (r EligibilityRule) AppliesTo(s Shipment) bool {
	return ScopeMatches(r.CompanyID, s.CompanyID) &&
		ScopeMatches(r.CustomerID, s.CustomerID) &&
		ScopeMatches(r.ServiceCode, s.ServiceCode)
}

// Route is a {from,to} pair in a zone routing list. Values are
// province, state, or country codes depending on the list.
type Route struct {
	From string `json:"from" bson:"from"`
	To   string `json:"to" bson:"to"`
}

// CityRoute is a city-pair routing entry. Region holds the province
// or state of each city.
type CityRoute struct {
	FromCity   string `json:"from_city" bson:"from_city"`
	FromRegion string `json:"from_region" bson:"from_region"`
	ToCity     string `json:"to_city" bson:"to_city"`
	ToRegion   string `json:"to_region" bson:"to_region"`
}

// ZoneSide is one side (pickup or delivery) of a carrier's zone
// taxonomy: boolean feature flags paired with explicit routing lists.
// A routing list is only consulted when its flag is true.
type ZoneSide struct {
	DomesticCanada     bool `json:"domestic_canada" bson:"domestic_canada"`
	DomesticUS         bool `json:"domestic_us" bson:"domestic_us"`
	ProvinceToProvince bool `json:"province_to_province" bson:"province_to_province"`
	StateToState       bool `json:"state_to_state" bson:"state_to_state"`
	ProvinceToState    bool `json:"province_to_state" bson:"province_to_state"`
	CountryToCountry   bool `json:"country_to_country" bson:"country_to_country"`
	CityToCity         bool `json:"city_to_city" bson:"city_to_city"`

	ProvinceRoutes    []Route     `json:"province_routes,omitempty" bson:"province_routes,omitempty"`
	StateRoutes       []Route     `json:"state_routes,omitempty" bson:"state_routes,omitempty"`
	CrossBorderRoutes []Route     `json:"cross_border_routes,omitempty" bson:"cross_border_routes,omitempty"`
	CountryRoutes     []Route     `json:"country_routes,omitempty" bson:"country_routes,omitempty"`
	CityRoutes        []CityRoute `json:"city_routes,omitempty" bson:"city_routes,omitempty"`
}

// ZoneConfig is a carrier's full zone taxonomy: two independent
// trees, evaluated separately for origin and destination.
type ZoneConfig struct {
	CarrierID string   `json:"carrier_id" bson:"_id"`
	Pickup    ZoneSide `json:"pickup_zones" bson:"pickup_zones"`
	Delivery  ZoneSide `json:"delivery_zones" bson:"delivery_zones"`
}
