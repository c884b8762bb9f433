// Package engine - configuration collaborator contracts
package engine

import (
	"context"

	"freight-rate/core/types"
)

// The engine performs no blocking I/O of its own; carrier
// configuration is read through these collaborator interfaces, backed
// by a document store queried by key and filter. All of them are
// read-only: the engine never mutates configuration.

// CarrierRegistry looks up registered carriers.
type CarrierRegistry interface {
	// GetCarrier returns the carrier, or a NOT_FOUND error
	GetCarrier(ctx context.Context, carrierID string) (*types.Carrier, error)
}

// RateCardSource looks up a carrier's pricing tables.
type RateCardSource interface {
	// GetRateCards returns rate cards ordered most-recently-created
	// first. The engine uses the first enabled card.
	GetRateCards(ctx context.Context, carrierID string, enabledOnly bool) ([]types.RateCard, error)
}

// RuleSource looks up a carrier's eligibility rules.
type RuleSource interface {
	GetEligibilityRules(ctx context.Context, carrierID string, kind types.RuleKind) ([]types.EligibilityRule, error)
}

// ZoneConfigSource looks up a carrier's zone taxonomy.
type ZoneConfigSource interface {
	// GetZoneConfig returns (nil, nil) when the carrier has no zone
	// configuration at all. The engine decides what absence means;
	// the source never guesses.
	GetZoneConfig(ctx context.Context, carrierID string) (*types.ZoneConfig, error)
}

// AccessorialSource looks up carrier-specific accessorial overrides.
type AccessorialSource interface {
	// GetAccessorials returns carrier overrides for the seed
	// accessorial table. An empty list is normal.
	GetAccessorials(ctx context.Context, carrierID string) ([]types.AccessorialDef, error)
}

// ConfigStore bundles every collaborator the engine reads from.
type ConfigStore interface {
	CarrierRegistry
	RateCardSource
	RuleSource
	ZoneConfigSource
	AccessorialSource
}
