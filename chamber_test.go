package fluxrs

import (
	"math"
	"testing"
)

func TestChamberBoxVolumeAndArea(t *testing.T) {
	c := NewBoxChamber("c1", 2, 3, 0.5)
	if got, want := c.AreaM2(), 6.0; got != want {
		t.Errorf("AreaM2() = %v, want %v", got, want)
	}
	if got, want := c.VolumeM3(), 3.0; got != want {
		t.Errorf("VolumeM3() = %v, want %v", got, want)
	}
}

func TestChamberCylinderVolumeAndArea(t *testing.T) {
	c := NewCylinderChamber("c2", 1.0, 1.0)
	wantArea := math.Pi * 0.5 * 0.5
	if got := c.AreaM2(); math.Abs(got-wantArea) > 1e-9 {
		t.Errorf("AreaM2() = %v, want %v", got, wantArea)
	}
	wantVol := wantArea * 1.0
	if got := c.VolumeM3(); math.Abs(got-wantVol) > 1e-9 {
		t.Errorf("VolumeM3() = %v, want %v", got, wantVol)
	}
}

func TestChamberAdjustedVolumeClampsAtZero(t *testing.T) {
	c := NewBoxChamber("c3", 1, 1, 0.3)
	if got, want := c.AdjustedVolumeM3(0.5), 0.0; got != want {
		t.Errorf("AdjustedVolumeM3(0.5) = %v, want %v (snow deeper than chamber)", got, want)
	}
	if got, want := c.AdjustedVolumeM3(0.1), 0.2; math.Abs(got-want) > 1e-9 {
		t.Errorf("AdjustedVolumeM3(0.1) = %v, want %v", got, want)
	}
}

func TestChamberVolumeWithSnowHeight(t *testing.T) {
	c := NewBoxChamber("c4", 2, 3, 0.5)
	c.SnowHeight = 0.2
	if got, want := c.VolumeM3(), 2*3*0.3; math.Abs(got-want) > 1e-9 {
		t.Errorf("VolumeM3() with snow height = %v, want %v", got, want)
	}
	c.SnowHeight = 0.9
	if got, want := c.VolumeM3(), 0.0; got != want {
		t.Errorf("VolumeM3() with snow deeper than chamber = %v, want %v", got, want)
	}
}

func TestParseChamberShapeType(t *testing.T) {
	if k, err := ParseChamberShapeType("Box"); err != nil || k != ChamberBox {
		t.Errorf("ParseChamberShapeType(Box) = %v, %v", k, err)
	}
	if k, err := ParseChamberShapeType("CYLINDER"); err != nil || k != ChamberCylinder {
		t.Errorf("ParseChamberShapeType(CYLINDER) = %v, %v", k, err)
	}
	if _, err := ParseChamberShapeType("sphere"); err == nil {
		t.Error("ParseChamberShapeType(sphere): expected error")
	}
}
