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

// InstrumentModel describes a fixed, known gas analyzer model: which gases
// it reports and whether its recorded timestamps are already UTC.
type InstrumentModel struct {
	Name      string
	Serial    string
	Gases     []GasType
	UTCClock  bool // true if the instrument's own clock is UTC, not local time
	DiagColOK bool // true if the instrument reports a per-sample diagnostic flag
}

// Reports returns whether m reports gas g.
func (m InstrumentModel) Reports(g GasType) bool {
	for _, x := range m.Gases {
		if x == g {
			return true
		}
	}
	return false
}

// known instrument models, matching the fixed set the original
// single-chamber toolchain supported.
var knownInstruments = map[string]InstrumentModel{
	"li-7810": {Name: "LI-7810", Gases: []GasType{CO2, CH4, H2O}, UTCClock: false, DiagColOK: true},
	"li-7820": {Name: "LI-7820", Gases: []GasType{N2O, H2O}, UTCClock: false, DiagColOK: true},
	"g2301":   {Name: "Picarro G2301", Gases: []GasType{CO2, CH4, H2O}, UTCClock: true, DiagColOK: false},
	"g2508":   {Name: "Picarro G2508", Gases: []GasType{CO2, CH4, N2O, H2O}, UTCClock: true, DiagColOK: false},
}

// LookupInstrumentModel returns the registered model for name, matched
// case-insensitively against its registry key.
func LookupInstrumentModel(name string) (InstrumentModel, error) {
	key := normalizeModelKey(name)
	m, ok := knownInstruments[key]
	if !ok {
		return InstrumentModel{}, fmt.Errorf("fluxrs: looking up instrument model: unknown model %q", name)
	}
	return m, nil
}

func normalizeModelKey(name string) string {
	b := make([]byte, 0, len(name))
	for i := 0; i < len(name); i++ {
		c := name[i]
		if c >= 'A' && c <= 'Z' {
			c += 'a' - 'A'
		}
		b = append(b, c)
	}
	return string(b)
}
