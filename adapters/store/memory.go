// Package store provides document-store backends for carrier
// configuration. The engine reads carriers, rate cards, eligibility
// rules, zone configs, and accessorial overrides through the
// collaborator interfaces in core/engine; this package supplies a
// MongoDB implementation and an in-memory one for tests and the CLI.
package store

import (
	"context"
	"encoding/json"
	"os"
	"sort"
	"sync"

	"freight-rate/core/types"
	"freight-rate/internal/errors"
)

// Memory is an in-memory configuration store. It is safe for
// concurrent readers, which a multi-carrier shop produces.
type Memory struct {
	mu           sync.RWMutex
	carriers     map[string]types.Carrier
	rateCards    map[string][]types.RateCard
	rules        map[string][]types.EligibilityRule
	zoneConfigs  map[string]*types.ZoneConfig
	accessorials map[string][]types.AccessorialDef
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		carriers:     make(map[string]types.Carrier),
		rateCards:    make(map[string][]types.RateCard),
		rules:        make(map[string][]types.EligibilityRule),
		zoneConfigs:  make(map[string]*types.ZoneConfig),
		accessorials: make(map[string][]types.AccessorialDef),
	}
}

// Snapshot is the JSON document set a memory store loads from disk.
type Snapshot struct {
	Carriers         []types.Carrier         `json:"carriers"`
	RateCards        []types.RateCard        `json:"rate_cards"`
	EligibilityRules []types.EligibilityRule `json:"eligibility_rules"`
	ZoneConfigs      []types.ZoneConfig      `json:"zone_configs"`
	Accessorials     []types.AccessorialDef  `json:"accessorials"`
}

// LoadSnapshot reads a JSON snapshot file into a new memory store.
func LoadSnapshot(path string) (*Memory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.KindConfigMissing, "snapshot file unreadable", err)
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, errors.Wrap(errors.KindInternal, "snapshot file malformed", err)
	}

	m := NewMemory()
	for _, c := range snap.Carriers {
		m.PutCarrier(c)
	}
	for _, rc := range snap.RateCards {
		m.PutRateCard(rc)
	}
	for _, r := range snap.EligibilityRules {
		m.PutRule(r)
	}
	for i := range snap.ZoneConfigs {
		m.PutZoneConfig(snap.ZoneConfigs[i])
	}
	for _, a := range snap.Accessorials {
		m.PutAccessorial(a)
	}
	return m, nil
}

// PutCarrier adds or replaces a carrier.
func (m *Memory) PutCarrier(c types.Carrier) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.carriers[c.ID] = c
}

// PutRateCard appends a rate card for its carrier.
func (m *Memory) PutRateCard(rc types.RateCard) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rateCards[rc.CarrierID] = append(m.rateCards[rc.CarrierID], rc)
}

// PutRule appends an eligibility rule for its carrier.
func (m *Memory) PutRule(r types.EligibilityRule) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rules[r.CarrierID] = append(m.rules[r.CarrierID], r)
}

// PutZoneConfig sets a carrier's zone taxonomy.
func (m *Memory) PutZoneConfig(z types.ZoneConfig) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cfg := z
	m.zoneConfigs[z.CarrierID] = &cfg
}

// PutAccessorial appends a carrier accessorial override.
func (m *Memory) PutAccessorial(a types.AccessorialDef) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accessorials[a.CarrierID] = append(m.accessorials[a.CarrierID], a)
}

// CarrierIDs returns every stored carrier id, sorted for stable
// shopping order.
func (m *Memory) CarrierIDs() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := make([]string, 0, len(m.carriers))
	for id := range m.carriers {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// GetCarrier implements engine.CarrierRegistry.
func (m *Memory) GetCarrier(_ context.Context, carrierID string) (*types.Carrier, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.carriers[carrierID]
	if !ok {
		return nil, errors.NotFound("carrier", carrierID)
	}
	return &c, nil
}

// GetRateCards implements engine.RateCardSource. Cards come back
// most-recently-created first.
func (m *Memory) GetRateCards(_ context.Context, carrierID string, enabledOnly bool) ([]types.RateCard, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var cards []types.RateCard
	for _, rc := range m.rateCards[carrierID] {
		if enabledOnly && !rc.Enabled {
			continue
		}
		cards = append(cards, rc)
	}
	sort.Slice(cards, func(i, j int) bool {
		return cards[i].CreatedAt.After(cards[j].CreatedAt)
	})
	return cards, nil
}

// GetEligibilityRules implements engine.RuleSource.
func (m *Memory) GetEligibilityRules(_ context.Context, carrierID string, kind types.RuleKind) ([]types.EligibilityRule, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var rules []types.EligibilityRule
	for _, r := range m.rules[carrierID] {
		if r.Restriction.Kind() == kind {
			rules = append(rules, r)
		}
	}
	return rules, nil
}

// GetZoneConfig implements engine.ZoneConfigSource. Absence returns
// (nil, nil); the engine decides what that means.
func (m *Memory) GetZoneConfig(_ context.Context, carrierID string) (*types.ZoneConfig, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	cfg, ok := m.zoneConfigs[carrierID]
	if !ok {
		return nil, nil
	}
	copied := *cfg
	return &copied, nil
}

// GetAccessorials implements engine.AccessorialSource.
func (m *Memory) GetAccessorials(_ context.Context, carrierID string) ([]types.AccessorialDef, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]types.AccessorialDef(nil), m.accessorials[carrierID]...), nil
}
