package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"freight-rate/core/types"
	"freight-rate/internal/errors"
)

func TestGetCarrierNotFound(t *testing.T) {
	m := NewMemory()
	_, err := m.GetCarrier(context.Background(), "nope")
	if !errors.IsKind(err, errors.KindNotFound) {
		t.Errorf("expected NOT_FOUND, got %v", err)
	}
}

func TestRateCardsOrderedAndFiltered(t *testing.T) {
	m := NewMemory()
	old := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	newer := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	m.PutRateCard(types.RateCard{ID: "old", CarrierID: "acme", Enabled: true, CreatedAt: old})
	m.PutRateCard(types.RateCard{ID: "disabled", CarrierID: "acme", Enabled: false, CreatedAt: newer})
	m.PutRateCard(types.RateCard{ID: "new", CarrierID: "acme", Enabled: true, CreatedAt: newer})

	cards, err := m.GetRateCards(context.Background(), "acme", true)
	if err != nil {
		t.Fatalf("GetRateCards: %v", err)
	}
	if len(cards) != 2 {
		t.Fatalf("cards = %d, want 2 enabled", len(cards))
	}
	if cards[0].ID != "new" {
		t.Errorf("first card = %s, want most recent", cards[0].ID)
	}

	all, _ := m.GetRateCards(context.Background(), "acme", false)
	if len(all) != 3 {
		t.Errorf("all cards = %d, want 3", len(all))
	}
}

func TestRulesFilteredByKind(t *testing.T) {
	m := NewMemory()
	m.PutRule(types.EligibilityRule{ID: "w", CarrierID: "acme", Restriction: types.RestrictMaxWeight, Enabled: true})
	m.PutRule(types.EligibilityRule{ID: "d", CarrierID: "acme", Restriction: types.RestrictMaxLength, Enabled: true})

	weightRules, _ := m.GetEligibilityRules(context.Background(), "acme", types.RuleKindWeight)
	if len(weightRules) != 1 || weightRules[0].ID != "w" {
		t.Errorf("weight rules = %+v, want [w]", weightRules)
	}
	dimRules, _ := m.GetEligibilityRules(context.Background(), "acme", types.RuleKindDimension)
	if len(dimRules) != 1 || dimRules[0].ID != "d" {
		t.Errorf("dimension rules = %+v, want [d]", dimRules)
	}
}

func TestZoneConfigAbsenceIsNilNil(t *testing.T) {
	m := NewMemory()
	cfg, err := m.GetZoneConfig(context.Background(), "acme")
	if err != nil || cfg != nil {
		t.Errorf("absent zone config = (%v, %v), want (nil, nil)", cfg, err)
	}
}

func TestLoadSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "carriers.json")
	payload := `{
		"carriers": [{"id": "acme", "name": "Acme", "enabled": true}],
		"rate_cards": [{
			"id": "card-1", "carrier_id": "acme", "name": "Flat",
			"rate_type": "flat", "currency": "CAD", "enabled": true,
			"created_at": "2025-01-01T00:00:00Z", "flat_rate": "100"
		}],
		"zone_configs": [{
			"carrier_id": "acme",
			"pickup_zones": {"domestic_canada": true},
			"delivery_zones": {"domestic_canada": true}
		}]
	}`
	if err := os.WriteFile(path, []byte(payload), 0644); err != nil {
		t.Fatal(err)
	}

	m, err := LoadSnapshot(path)
	if err != nil {
		t.Fatalf("LoadSnapshot: %v", err)
	}

	carrier, err := m.GetCarrier(context.Background(), "acme")
	if err != nil || carrier.Name != "Acme" {
		t.Errorf("carrier = (%+v, %v)", carrier, err)
	}

	cards, _ := m.GetRateCards(context.Background(), "acme", true)
	if len(cards) != 1 || !cards[0].FlatRate.Equal(decimal.NewFromInt(100)) {
		t.Errorf("cards = %+v, want one flat-100 card", cards)
	}

	cfg, _ := m.GetZoneConfig(context.Background(), "acme")
	if cfg == nil || !cfg.Pickup.DomesticCanada {
		t.Errorf("zone config = %+v", cfg)
	}

	if ids := m.CarrierIDs(); len(ids) != 1 || ids[0] != "acme" {
		t.Errorf("CarrierIDs = %v", ids)
	}
}

func TestLoadSnapshotMissingFile(t *testing.T) {
	_, err := LoadSnapshot(filepath.Join(t.TempDir(), "absent.json"))
	if !errors.IsKind(err, errors.KindConfigMissing) {
		t.Errorf("expected CONFIG_MISSING, got %v", err)
	}
}
