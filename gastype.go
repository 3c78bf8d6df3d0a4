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
	"strings"
)

// GasType is one of the gas species a closed-chamber instrument can report.
type GasType uint8

const (
	// CO2 is the default gas species.
	CO2 GasType = iota
	CH4
	H2O
	N2O
)

// String returns the canonical lower-case name used in column prefixes
// and config files.
func (g GasType) String() string {
	switch g {
	case CO2:
		return "co2"
	case CH4:
		return "ch4"
	case H2O:
		return "h2o"
	case N2O:
		return "n2o"
	default:
		return fmt.Sprintf("gastype(%d)", uint8(g))
	}
}

// ParseGasType parses a gas name case-insensitively.
func ParseGasType(s string) (GasType, error) {
	switch strings.ToLower(s) {
	case "co2":
		return CO2, nil
	case "ch4":
		return CH4, nil
	case "h2o":
		return H2O, nil
	case "n2o":
		return N2O, nil
	default:
		return 0, fmt.Errorf("fluxrs: parsing gas type: invalid gas type %q", s)
	}
}

// AsInt returns the stable on-disk encoding of g.
func (g GasType) AsInt() int {
	return int(g)
}

// GasTypeFromInt decodes the on-disk encoding written by AsInt.
func GasTypeFromInt(i int) (GasType, error) {
	switch i {
	case 0, 1, 2, 3:
		return GasType(i), nil
	default:
		return 0, fmt.Errorf("fluxrs: decoding gas type: invalid gas type code %d", i)
	}
}

// MolarMass returns the molar mass of g in g/mol, used to convert a molar
// flux to a mass flux.
func (g GasType) MolarMass() float64 {
	switch g {
	case CH4:
		return 16.0
	case CO2:
		return 44.0
	case H2O:
		return 18.0
	case N2O:
		return 44.0
	default:
		return 0
	}
}

// ConvFactor is the divisor that converts a value in the instrument's
// native measurement unit to ppm dry mole fraction (ppb / 1000 = ppm).
func (g GasType) ConvFactor() float64 {
	switch g {
	case CH4:
		return 1000.0
	case CO2:
		return 1.0
	case H2O:
		return 1.0
	case N2O:
		return 1000.0
	default:
		return 1.0
	}
}

// Unit returns the native measurement unit reported by instruments for g.
func (g GasType) Unit() string {
	switch g {
	case CH4:
		return "ppb"
	case CO2:
		return "ppm"
	case H2O:
		return "ppm"
	case N2O:
		return "ppb"
	default:
		return ""
	}
}

// FluxColumn returns the storage column prefix used for g's flux results,
// e.g. "co2_lin_flux".
func (g GasType) FluxColumn(model, field string) string {
	return fmt.Sprintf("%s_%s_%s", g, model, field)
}

// AllGasTypes lists every known gas species, in their on-disk order.
func AllGasTypes() []GasType {
	return []GasType{CO2, CH4, H2O, N2O}
}
