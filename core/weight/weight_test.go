package weight

import (
	"testing"

	"freight-rate/core/types"
	"freight-rate/internal/errors"
)

func TestChargeableWeightIsMax(t *testing.T) {
	tests := []struct {
		name           string
		packages       []types.Package
		wantActual     float64
		wantVolumetric float64
		wantChargeable float64
	}{
		{
			name: "actual weight dominates",
			packages: []types.Package{
				{Quantity: 2, Weight: 500, Length: 10, Width: 10, Height: 10},
			},
			wantActual:     1000,
			wantVolumetric: 2000.0 / 166,
			wantChargeable: 1000,
		},
		{
			name: "volumetric weight dominates",
			packages: []types.Package{
				{Quantity: 1, Weight: 10, Length: 48, Width: 48, Height: 48},
			},
			wantActual:     10,
			wantVolumetric: 110592.0 / 166,
			wantChargeable: 666.22, // rounded to 2 decimals
		},
		{
			name: "multiple lines sum",
			packages: []types.Package{
				{Quantity: 3, Weight: 100, Length: 12, Width: 12, Height: 12},
				{Quantity: 1, Weight: 50, Length: 24, Width: 24, Height: 24},
			},
			wantActual:     350,
			wantVolumetric: (3*1728.0 + 13824.0) / 166,
			wantChargeable: 350,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Calculate(tt.packages, Options{})
			if err != nil {
				t.Fatalf("Calculate returned error: %v", err)
			}
			if got.ActualWeight != tt.wantActual {
				t.Errorf("ActualWeight = %v, want %v", got.ActualWeight, tt.wantActual)
			}
			if diff := got.VolumetricWeight - tt.wantVolumetric; diff > 1e-9 || diff < -1e-9 {
				t.Errorf("VolumetricWeight = %v, want %v", got.VolumetricWeight, tt.wantVolumetric)
			}
			if got.ChargeableWeight != tt.wantChargeable {
				t.Errorf("ChargeableWeight = %v, want %v", got.ChargeableWeight, tt.wantChargeable)
			}
			if got.ChargeableWeight < got.ActualWeight {
				t.Errorf("chargeable %v below actual %v", got.ChargeableWeight, got.ActualWeight)
			}
			// Rounding never drops more than a hundredth below volumetric.
			if got.ChargeableWeight < got.VolumetricWeight-0.005 {
				t.Errorf("chargeable %v below volumetric %v", got.ChargeableWeight, got.VolumetricWeight)
			}
		})
	}
}

func TestEmptyPackageListYieldsZeroResult(t *testing.T) {
	got, err := Calculate(nil, Options{})
	if err != nil {
		t.Fatalf("Calculate(nil) returned error: %v", err)
	}
	if got.ActualWeight != 0 || got.VolumetricWeight != 0 || got.ChargeableWeight != 0 || got.TotalVolume != 0 {
		t.Errorf("expected all-zero result, got %+v", got)
	}
	if got.DimFactor != DefaultDimFactor {
		t.Errorf("DimFactor = %v, want %v", got.DimFactor, float64(DefaultDimFactor))
	}
}

func TestMalformedPackagesRejected(t *testing.T) {
	tests := []struct {
		name string
		pkg  types.Package
	}{
		{"zero quantity", types.Package{Quantity: 0, Weight: 10}},
		{"negative weight", types.Package{Quantity: 1, Weight: -5}},
		{"negative dimension", types.Package{Quantity: 1, Weight: 5, Length: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Calculate([]types.Package{tt.pkg}, Options{})
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !errors.IsKind(err, errors.KindInvalidInput) {
				t.Errorf("error kind = %v, want %v", errors.KindOf(err), errors.KindInvalidInput)
			}
		})
	}
}

func TestCustomDimFactor(t *testing.T) {
	packages := []types.Package{{Quantity: 1, Weight: 1, Length: 10, Width: 10, Height: 10}}

	got, err := Calculate(packages, Options{DimFactor: 200, Units: types.UnitsImperial})
	if err != nil {
		t.Fatalf("Calculate returned error: %v", err)
	}
	if got.VolumetricWeight != 5 {
		t.Errorf("VolumetricWeight = %v, want 5", got.VolumetricWeight)
	}
	if got.Units != types.UnitsImperial {
		t.Errorf("Units = %v, want imperial", got.Units)
	}
}
