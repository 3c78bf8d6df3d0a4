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

// WindowMode selects how the calculation window is chosen within a cycle's
// closed interval.
type WindowMode uint8

const (
	// BestPearsonsR slides a min-calc-length window and keeps the one
	// maximizing |Pearson(t, concentration)|. The default.
	BestPearsonsR WindowMode = iota
	// AfterDeadband starts the window immediately after the deadband and
	// extends it to the chamber opening.
	AfterDeadband
)

func (m WindowMode) String() string {
	if m == AfterDeadband {
		return "after deadband"
	}
	return "best pearson's r"
}

// ParseWindowMode accepts "deadband" for AfterDeadband and "pearsons" or
// "bestr" for BestPearsonsR, case-insensitively.
func ParseWindowMode(s string) (WindowMode, error) {
	switch strings.ToLower(s) {
	case "deadband":
		return AfterDeadband, nil
	case "pearsons", "bestr":
		return BestPearsonsR, nil
	default:
		return 0, fmt.Errorf("fluxrs: parsing window mode: invalid mode %q", s)
	}
}

// AsInt returns the stable on-disk encoding.
func (m WindowMode) AsInt() int {
	if m == AfterDeadband {
		return 1
	}
	return 2
}

// WindowModeFromInt decodes the on-disk encoding written by AsInt.
func WindowModeFromInt(i int) (WindowMode, error) {
	switch i {
	case 1:
		return AfterDeadband, nil
	case 2:
		return BestPearsonsR, nil
	default:
		return 0, fmt.Errorf("fluxrs: decoding window mode: invalid mode code %d", i)
	}
}
