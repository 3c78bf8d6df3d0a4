package fluxrs

import "testing"

func TestParseGasType(t *testing.T) {
	cases := []struct {
		in      string
		want    GasType
		wantErr bool
	}{
		{"co2", CO2, false},
		{"CO2", CO2, false},
		{"ch4", CH4, false},
		{"H2O", H2O, false},
		{"n2o", N2O, false},
		{"argon", 0, true},
		{"", 0, true},
	}
	for _, c := range cases {
		got, err := ParseGasType(c.in)
		if c.wantErr {
			if err == nil {
				t.Errorf("ParseGasType(%q): expected error, got %v", c.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseGasType(%q): unexpected error: %v", c.in, err)
			continue
		}
		if got != c.want {
			t.Errorf("ParseGasType(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestGasTypeIntRoundTrip(t *testing.T) {
	for _, g := range AllGasTypes() {
		i := g.AsInt()
		got, err := GasTypeFromInt(i)
		if err != nil {
			t.Fatalf("GasTypeFromInt(%d): %v", i, err)
		}
		if got != g {
			t.Errorf("round trip of %v through int %d gave %v", g, i, got)
		}
	}
	if _, err := GasTypeFromInt(99); err == nil {
		t.Error("GasTypeFromInt(99): expected error")
	}
}

func TestGasTypeMolarMassAndUnit(t *testing.T) {
	cases := []struct {
		g          GasType
		molarMass  float64
		convFactor float64
		unit       string
	}{
		{CO2, 44.0, 1.0, "ppm"},
		{CH4, 16.0, 1000.0, "ppb"},
		{H2O, 18.0, 1.0, "ppm"},
		{N2O, 44.0, 1000.0, "ppb"},
	}
	for _, c := range cases {
		if got := c.g.MolarMass(); got != c.molarMass {
			t.Errorf("%v.MolarMass() = %v, want %v", c.g, got, c.molarMass)
		}
		if got := c.g.ConvFactor(); got != c.convFactor {
			t.Errorf("%v.ConvFactor() = %v, want %v", c.g, got, c.convFactor)
		}
		if got := c.g.Unit(); got != c.unit {
			t.Errorf("%v.Unit() = %v, want %v", c.g, got, c.unit)
		}
	}
}
