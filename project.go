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

import "fmt"

// Project is a tenant/workspace owning its own instruments, chambers,
// cycles, and gas/meteo/height datasets. It is created once by an
// operator and never mutated in place except for "current project"
// selection, which lives outside the core (see SPEC_FULL.md 9).
type Project struct {
	Name              string
	MainInstrument    InstrumentModel
	MainInstrumentID  string
	MainGas           GasType
	DeadbandSeconds   float64
	MinCalcLenSeconds float64
	Mode              WindowMode
	Timezone          string
}

// ValidateCycleTiming checks the project invariant that min_calc_len fits
// inside every associated cycle's open/close span.
func (p Project) ValidateCycleTiming(closeOffset, openOffset float64) error {
	if p.MinCalcLenSeconds > openOffset-closeOffset {
		return fmt.Errorf("fluxrs: project %s: min_calc_len %.0fs exceeds close-to-open span %.0fs", p.Name, p.MinCalcLenSeconds, openOffset-closeOffset)
	}
	return nil
}
