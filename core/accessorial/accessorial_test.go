package accessorial

import (
	"testing"

	"github.com/shopspring/decimal"

	"freight-rate/core/types"
)

func dec(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }

func TestFlatAndPercentFees(t *testing.T) {
	in := Input{
		Requested:   []string{"SIGNATURE_REQUIRED", "FUEL_SURCHARGE"},
		BaseTotal:   dec(200),
		Currency:    types.CurrencyCAD,
		CarrierName: "Acme Freight",
		Definitions: types.SeedAccessorials(),
	}

	got := Calculate(in)
	if len(got.Lines) != 2 {
		t.Fatalf("Lines = %d, want 2", len(got.Lines))
	}
	// Signature Required: flat 5.00.
	if !got.Lines[0].Charge.Equal(dec(5)) {
		t.Errorf("signature charge = %s, want 5", got.Lines[0].Charge)
	}
	// Fuel surcharge: 15% of 200 = 30.
	if !got.Lines[1].Charge.Equal(dec(30)) {
		t.Errorf("fuel charge = %s, want 30", got.Lines[1].Charge)
	}
	if !got.Total.Equal(dec(35)) {
		t.Errorf("Total = %s, want 35", got.Total)
	}
	if len(got.Skipped) != 0 {
		t.Errorf("Skipped = %v, want none", got.Skipped)
	}
	for _, l := range got.Lines {
		if l.ChargeCode != ChargeCode {
			t.Errorf("ChargeCode = %s, want %s", l.ChargeCode, ChargeCode)
		}
		if l.Source != types.ChargeSourceAuto {
			t.Errorf("Source = %s, want %s", l.Source, types.ChargeSourceAuto)
		}
	}
}

func TestUnknownCodesReportedNotDropped(t *testing.T) {
	in := Input{
		Requested:   []string{"LIFTGATE", "INSURANCE"},
		BaseTotal:   dec(1000),
		Currency:    types.CurrencyCAD,
		Definitions: types.SeedAccessorials(),
	}

	got := Calculate(in)
	if len(got.Lines) != 1 {
		t.Fatalf("Lines = %d, want 1 (insurance only)", len(got.Lines))
	}
	if len(got.Skipped) != 1 || got.Skipped[0] != "LIFTGATE" {
		t.Errorf("Skipped = %v, want [LIFTGATE]", got.Skipped)
	}
	// Insurance: 2.5% of 1000 = 25.
	if !got.Total.Equal(dec(25)) {
		t.Errorf("Total = %s, want 25", got.Total)
	}
}

func TestCarrierOverrideShadowsDefault(t *testing.T) {
	defs := append(types.SeedAccessorials(), types.AccessorialDef{
		Code: "SIGNATURE_REQUIRED", Label: "Signature Required",
		Kind: types.AccessorialFlat, Amount: dec(9.50), CarrierID: "acme",
	})

	acme := Calculate(Input{
		Requested: []string{"SIGNATURE_REQUIRED"}, BaseTotal: dec(100),
		CarrierID: "acme", Definitions: defs,
	})
	if !acme.Total.Equal(dec(9.50)) {
		t.Errorf("acme total = %s, want carrier override 9.50", acme.Total)
	}

	other := Calculate(Input{
		Requested: []string{"SIGNATURE_REQUIRED"}, BaseTotal: dec(100),
		CarrierID: "other", Definitions: defs,
	})
	if !other.Total.Equal(dec(5)) {
		t.Errorf("other total = %s, want default 5", other.Total)
	}
}

func TestNoRequestedServices(t *testing.T) {
	got := Calculate(Input{BaseTotal: dec(500), Definitions: types.SeedAccessorials()})
	if len(got.Lines) != 0 || !got.Total.Equal(decimal.Zero) {
		t.Errorf("expected empty result, got %+v", got)
	}
}
