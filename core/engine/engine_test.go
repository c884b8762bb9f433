package engine

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"freight-rate/adapters/store"
	"freight-rate/core/types"
	"freight-rate/internal/errors"
)

func dec(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }

// acmeStore builds a memory store with one fully configured carrier:
// domestic-Canada zones on both sides and a $100 flat rate card.
func acmeStore() *store.Memory {
	m := store.NewMemory()
	m.PutCarrier(types.Carrier{ID: "acme", Name: "Acme", Enabled: true})
	m.PutZoneConfig(types.ZoneConfig{
		CarrierID: "acme",
		Pickup:    types.ZoneSide{DomesticCanada: true},
		Delivery:  types.ZoneSide{DomesticCanada: true},
	})
	m.PutRateCard(types.RateCard{
		ID: "card-1", CarrierID: "acme", Name: "Acme Flat",
		RateType: types.RateTypeFlat, Currency: types.CurrencyCAD,
		Enabled: true, CreatedAt: time.Now(),
		FlatRate: dec(100),
	})
	return m
}

func caShipment() types.Shipment {
	return types.Shipment{
		Packages: []types.Package{
			{Quantity: 1, Weight: 250, Length: 48, Width: 40, Height: 48, PackagingType: "skid"},
		},
		Origin:      types.Location{City: "Toronto", Province: "ON", Country: "CA", PostalCode: "M5V 2T6"},
		Destination: types.Location{City: "Montreal", Province: "QC", Country: "CA", PostalCode: "H2Y 1C6"},
	}
}

func TestFlatRateEndToEnd(t *testing.T) {
	e := New(acmeStore(), Options{})

	got := e.Rate(context.Background(), Request{CarrierID: "acme", Shipment: caShipment()})
	if !got.Success {
		t.Fatalf("expected success, got %s: %s", got.ErrorKind, got.Error)
	}
	if !got.FinalTotal.Equal(dec(100)) {
		t.Errorf("FinalTotal = %s, want 100", got.FinalTotal)
	}
	if len(got.Breakdown) != 1 {
		t.Fatalf("Breakdown = %d lines, want 1 freight line", len(got.Breakdown))
	}
	if got.Breakdown[0].ChargeCode != "FRT" {
		t.Errorf("ChargeCode = %s, want FRT", got.Breakdown[0].ChargeCode)
	}
	if got.Currency != types.CurrencyCAD {
		t.Errorf("Currency = %s, want CAD", got.Currency)
	}
	if got.RateCard == nil || got.RateCard.Type != types.RateTypeFlat {
		t.Errorf("RateCard = %+v, want flat card ref", got.RateCard)
	}
	if got.Weight == nil || got.Weight.ChargeableWeight < got.Weight.ActualWeight {
		t.Errorf("weight calculation missing or inconsistent: %+v", got.Weight)
	}
}

func TestTotalsAddUpWithAccessorials(t *testing.T) {
	e := New(acmeStore(), Options{})
	shipment := caShipment()
	shipment.Accessorials = []string{"RESIDENTIAL_DELIVERY", "FUEL_SURCHARGE", "BOGUS_CODE"}

	got := e.Rate(context.Background(), Request{CarrierID: "acme", Shipment: shipment})
	if !got.Success {
		t.Fatalf("expected success, got %s: %s", got.ErrorKind, got.Error)
	}

	// Residential 15 flat + fuel 15% of 100 = 30 in services.
	if !got.AdditionalServicesTotal.Equal(dec(30)) {
		t.Errorf("AdditionalServicesTotal = %s, want 30", got.AdditionalServicesTotal)
	}
	if !got.FinalTotal.Equal(got.BaseTotal.Add(got.AdditionalServicesTotal)) {
		t.Errorf("FinalTotal %s != BaseTotal %s + services %s",
			got.FinalTotal, got.BaseTotal, got.AdditionalServicesTotal)
	}

	// Final total equals the sum of all line charges.
	sum := decimal.Zero
	for _, l := range got.Breakdown {
		sum = sum.Add(l.Charge)
	}
	if !got.FinalTotal.Equal(sum) {
		t.Errorf("FinalTotal %s != sum of line charges %s", got.FinalTotal, sum)
	}

	if len(got.SkippedServices) != 1 || got.SkippedServices[0] != "BOGUS_CODE" {
		t.Errorf("SkippedServices = %v, want [BOGUS_CODE]", got.SkippedServices)
	}
}

func TestIneligibleShortCircuits(t *testing.T) {
	m := acmeStore()
	m.PutRule(types.EligibilityRule{
		ID: "r1", CarrierID: "acme", Restriction: types.RestrictMaxWeight,
		Bound: 200, Enabled: true,
		CompanyID: types.ScopeAll, CustomerID: types.ScopeAll, ServiceCode: types.ScopeAll,
	})
	e := New(m, Options{})

	got := e.Rate(context.Background(), Request{CarrierID: "acme", Shipment: caShipment()})
	if got.Success {
		t.Fatal("expected rejection")
	}
	if got.ErrorKind != string(errors.KindIneligible) {
		t.Errorf("ErrorKind = %s, want %s", got.ErrorKind, errors.KindIneligible)
	}
	if got.RateCard != nil {
		t.Error("rejected shipment must not reach rate card selection")
	}
}

func TestUnservedDestination(t *testing.T) {
	e := New(acmeStore(), Options{})
	shipment := caShipment()
	shipment.Destination = types.Location{City: "Buffalo", Province: "NY", Country: "US", PostalCode: "14201"}

	got := e.Rate(context.Background(), Request{CarrierID: "acme", Shipment: shipment})
	if got.Success {
		t.Fatal("expected unserved failure")
	}
	if got.ErrorKind != string(errors.KindUnservedLocation) {
		t.Errorf("ErrorKind = %s, want %s", got.ErrorKind, errors.KindUnservedLocation)
	}
}

func TestFailureTaxonomy(t *testing.T) {
	base := acmeStore()

	noCards := store.NewMemory()
	noCards.PutCarrier(types.Carrier{ID: "acme", Name: "Acme", Enabled: true})
	noCards.PutZoneConfig(types.ZoneConfig{CarrierID: "acme",
		Pickup: types.ZoneSide{DomesticCanada: true}, Delivery: types.ZoneSide{DomesticCanada: true}})

	noZones := store.NewMemory()
	noZones.PutCarrier(types.Carrier{ID: "acme", Name: "Acme", Enabled: true})
	noZones.PutRateCard(types.RateCard{ID: "c", CarrierID: "acme", RateType: types.RateTypeFlat,
		Enabled: true, FlatRate: dec(50)})

	disabled := store.NewMemory()
	disabled.PutCarrier(types.Carrier{ID: "acme", Name: "Acme", Enabled: false})

	tests := []struct {
		name     string
		store    *store.Memory
		carrier  string
		shipment types.Shipment
		wantKind errors.Kind
	}{
		{"unknown carrier", base, "ghost", caShipment(), errors.KindNotFound},
		{"disabled carrier", disabled, "acme", caShipment(), errors.KindConfigMissing},
		{"no rate card", noCards, "acme", caShipment(), errors.KindConfigMissing},
		{"no zone config", noZones, "acme", caShipment(), errors.KindConfigMissing},
		{"bad package", base, "acme", types.Shipment{
			Packages: []types.Package{{Quantity: 0, Weight: 10}},
			Origin:   caShipment().Origin, Destination: caShipment().Destination,
		}, errors.KindInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := New(tt.store, Options{})
			got := e.Rate(context.Background(), Request{CarrierID: tt.carrier, Shipment: tt.shipment})
			if got.Success {
				t.Fatal("expected failure")
			}
			if got.ErrorKind != string(tt.wantKind) {
				t.Errorf("ErrorKind = %s, want %s (%s)", got.ErrorKind, tt.wantKind, got.Error)
			}
		})
	}
}

func TestMissingZoneConfigPolicyIsExplicit(t *testing.T) {
	m := store.NewMemory()
	m.PutCarrier(types.Carrier{ID: "acme", Name: "Acme", Enabled: true})
	m.PutRateCard(types.RateCard{ID: "c", CarrierID: "acme", RateType: types.RateTypeFlat,
		Currency: types.CurrencyCAD, Enabled: true, FlatRate: dec(75)})

	strict := New(m, Options{})
	if got := strict.Rate(context.Background(), Request{CarrierID: "acme", Shipment: caShipment()}); got.Success {
		t.Error("strict engine must treat missing zone config as a configuration error")
	}

	permissive := New(m, Options{AllowMissingZoneConfig: true})
	got := permissive.Rate(context.Background(), Request{CarrierID: "acme", Shipment: caShipment()})
	if !got.Success {
		t.Errorf("permissive engine should quote: %s %s", got.ErrorKind, got.Error)
	}
	if !got.FinalTotal.Equal(dec(75)) {
		t.Errorf("FinalTotal = %s, want 75", got.FinalTotal)
	}
}

func TestShopPreservesOrderAndIsolatesFailures(t *testing.T) {
	m := acmeStore()
	m.PutCarrier(types.Carrier{ID: "beta", Name: "Beta", Enabled: true})
	// beta has no rate card or zones: it fails, acme still prices.

	e := New(m, Options{})
	ids := []string{"beta", "acme", "ghost"}
	results := e.Shop(context.Background(), caShipment(), ids)

	if len(results) != len(ids) {
		t.Fatalf("results = %d, want %d", len(results), len(ids))
	}
	for i, id := range ids {
		if results[i] == nil || results[i].Carrier.ID != id {
			t.Errorf("slot %d = %+v, want carrier %s", i, results[i], id)
		}
	}
	if results[0].Success {
		t.Error("beta should fail (no configuration)")
	}
	if !results[1].Success {
		t.Errorf("acme should price: %s %s", results[1].ErrorKind, results[1].Error)
	}
	if results[2].Success || results[2].ErrorKind != string(errors.KindNotFound) {
		t.Errorf("ghost = %s, want NOT_FOUND", results[2].ErrorKind)
	}
}

func TestShopEmptyCarrierList(t *testing.T) {
	e := New(acmeStore(), Options{})
	if got := e.Shop(context.Background(), caShipment(), nil); len(got) != 0 {
		t.Errorf("expected empty results, got %d", len(got))
	}
}
