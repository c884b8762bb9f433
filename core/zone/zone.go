// Package zone maps shipment endpoints onto a carrier's zone taxonomy.
//
// A carrier configures two independent zone trees (pickup and
// delivery); each end of a shipment is resolved against its own tree.
// Resolution follows a fixed precedence: broadest domestic coverage
// first, because it is the cheapest and most common configuration,
// then explicit routing lists in decreasing geographic granularity.
package zone

import (
	"strings"

	"freight-rate/core/types"
)

// ID is a resolved zone identifier.
type ID string

// Zone identifier prefixes. A full identifier looks like
// "DOMESTIC_CA", "PROVINCE_ON", "CITY_TORONTO_ON" or "CROSS_BORDER_NY".
const (
	DomesticCA        ID = "DOMESTIC_CA"
	DomesticUS        ID = "DOMESTIC_US"
	prefixProvince       = "PROVINCE_"
	prefixState          = "STATE_"
	prefixCity           = "CITY_"
	prefixCrossBorder    = "CROSS_BORDER_"
	prefixCountry        = "COUNTRY_"
)

// Resolve maps a location onto one side of a carrier's zone taxonomy.
// It is a pure function of its inputs. The second return is false
// when the location is unserved on this side.
func Resolve(loc types.Location, side types.ZoneSide) (ID, bool) {
	country := strings.ToUpper(strings.TrimSpace(loc.Country))
	region := strings.ToUpper(strings.TrimSpace(loc.Province))

	// 1-2. Blanket domestic coverage.
	if country == "CA" && side.DomesticCanada {
		return DomesticCA, true
	}
	if country == "US" && side.DomesticUS {
		return DomesticUS, true
	}

	// 3. Province pair routes.
	if side.ProvinceToProvince && routeListed(side.ProvinceRoutes, region) {
		return ID(prefixProvince + region), true
	}

	// 4. State pair routes.
	if side.StateToState && routeListed(side.StateRoutes, region) {
		return ID(prefixState + region), true
	}

	// 5. City pair routes.
	if side.CityToCity {
		if city, ok := cityListed(side.CityRoutes, loc.City, region); ok {
			return ID(prefixCity + ident(city) + "_" + region), true
		}
	}

	// 6. Cross-border routes (province or state on either end).
	if side.ProvinceToState && routeListed(side.CrossBorderRoutes, region) {
		return ID(prefixCrossBorder + region), true
	}

	// 7. Country pair routes, the least granular explicit list.
	if side.CountryToCountry && routeListed(side.CountryRoutes, country) {
		return ID(prefixCountry + country), true
	}

	return "", false
}

// routeListed reports whether value appears at either end of any route.
func routeListed(routes []types.Route, value string) bool {
	if value == "" {
		return false
	}
	for _, r := range routes {
		if strings.EqualFold(r.From, value) || strings.EqualFold(r.To, value) {
			return true
		}
	}
	return false
}

// cityListed reports whether (city, region) appears at either end of
// any city-pair route, returning the authored city name on match.
func cityListed(routes []types.CityRoute, city, region string) (string, bool) {
	if city == "" {
		return "", false
	}
	for _, r := range routes {
		if strings.EqualFold(r.FromCity, city) && strings.EqualFold(r.FromRegion, region) {
			return r.FromCity, true
		}
		if strings.EqualFold(r.ToCity, city) && strings.EqualFold(r.ToRegion, region) {
			return r.ToCity, true
		}
	}
	return "", false
}

// ident uppercases a name and collapses spaces for use in a zone id.
func ident(name string) string {
	return strings.ToUpper(strings.Join(strings.Fields(name), "_"))
}

// Pair is a fully resolved origin/destination zone pairing. Pricing
// requires both ends resolved; there is no default zone fallback,
// because silently defaulting would produce an unauditable price.
type Pair struct {
	Origin      ID
	Destination ID
}

// ResolvePair resolves both ends of a shipment against a carrier's
// zone config. The booleans report which ends resolved.
func ResolvePair(origin, destination types.Location, cfg *types.ZoneConfig) (Pair, bool, bool) {
	if cfg == nil {
		return Pair{}, false, false
	}
	o, oOK := Resolve(origin, cfg.Pickup)
	d, dOK := Resolve(destination, cfg.Delivery)
	return Pair{Origin: o, Destination: d}, oOK, dOK
}
