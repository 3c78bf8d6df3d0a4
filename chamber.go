/*
Copyright © 2026 the fluxrs authors.
This file is part of fluxrs.

fluxrs is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

fluxrs is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with fluxrs.  If not, see <http://www.gnu.org/licenses/>.
*/

package fluxrs

import (
	"fmt"
	"math"
	"strings"
)

// ChamberShapeType identifies which geometry a Chamber uses.
type ChamberShapeType uint8

const (
	ChamberBox ChamberShapeType = iota
	ChamberCylinder
)

func (k ChamberShapeType) String() string {
	if k == ChamberCylinder {
		return "cylinder"
	}
	return "box"
}

// ParseChamberShapeType parses a shape name case-insensitively.
func ParseChamberShapeType(s string) (ChamberShapeType, error) {
	switch strings.ToLower(s) {
	case "box":
		return ChamberBox, nil
	case "cylinder":
		return ChamberCylinder, nil
	default:
		return 0, fmt.Errorf("fluxrs: parsing chamber shape: invalid shape %q", s)
	}
}

// Chamber is the collar/chamber geometry in effect for a cycle. Box and
// Cylinder share the same struct; unused fields for a given Kind are zero.
type Chamber struct {
	ID         string
	Kind       ChamberShapeType
	Diameter   float64 // m, cylinder only
	Width      float64 // m, box only
	Length     float64 // m, box only
	Height     float64 // m, internal height, either shape
	SnowHeight float64 // m, headspace currently occupied by snow/accumulation
}

// NewBoxChamber constructs a box-shaped chamber.
func NewBoxChamber(id string, width, length, height float64) Chamber {
	return Chamber{ID: id, Kind: ChamberBox, Width: width, Length: length, Height: height}
}

// NewCylinderChamber constructs a cylinder-shaped chamber.
func NewCylinderChamber(id string, diameter, height float64) Chamber {
	return Chamber{ID: id, Kind: ChamberCylinder, Diameter: diameter, Height: height}
}

// AreaM2 returns the footprint area of the chamber, in m^2.
func (c Chamber) AreaM2() float64 {
	switch c.Kind {
	case ChamberCylinder:
		r := c.Diameter / 2.0
		return math.Pi * r * r
	default:
		return c.Width * c.Length
	}
}

// VolumeM3 returns the internal volume of the chamber net of its current
// SnowHeight: area * max(height - snow_height, 0).
func (c Chamber) VolumeM3() float64 {
	return c.volumeAtHeight(c.effectiveHeight(c.SnowHeight))
}

// AdjustedVolumeM3 returns the internal volume after subtracting the
// headspace occupied by snow or other accumulation of the given depth,
// overriding c.SnowHeight. The adjusted internal height never goes below
// zero.
func (c Chamber) AdjustedVolumeM3(snowHeightM float64) float64 {
	return c.volumeAtHeight(c.effectiveHeight(snowHeightM))
}

func (c Chamber) effectiveHeight(snowHeightM float64) float64 {
	adjusted := c.Height - snowHeightM
	if adjusted < 0 {
		adjusted = 0
	}
	return adjusted
}

func (c Chamber) volumeAtHeight(height float64) float64 {
	switch c.Kind {
	case ChamberCylinder:
		r := c.Diameter / 2.0
		return math.Pi * r * r * height
	default:
		return c.Width * c.Length * height
	}
}

// WithHeight returns a copy of c with its internal height replaced, used
// when a chamber's snow stake / extension height changes between cycles.
func (c Chamber) WithHeight(height float64) Chamber {
	c.Height = height
	return c
}

func (c Chamber) String() string {
	if c.Kind == ChamberCylinder {
		return fmt.Sprintf("cylinder: diameter=%.2fm height=%.2fm", c.Diameter, c.Height)
	}
	return fmt.Sprintf("box: width=%.2fm length=%.2fm height=%.2fm", c.Width, c.Length, c.Height)
}
