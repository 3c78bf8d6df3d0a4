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

// Environment is the resolved temperature/pressure snapshot a cycle is
// evaluated with, along with where it came from: a real meteo record
// (Raw, with its distance in seconds from start_time) or the sentinel
// fallback (Default, no distance).
type Environment struct {
	TemperatureC float64
	PressureHPa  float64
	Source       SourceTag
	DistanceSec  *int64
}

// ResolveEnvironment finds the nearest meteo record within
// MaxMeteoDistanceSeconds of targetUnix, falling back to the sentinel
// defaults when none qualifies.
func ResolveEnvironment(meteo *MeteoDataSet, targetUnix int64) Environment {
	if meteo != nil {
		if rec, dist, ok := meteo.Nearest(targetUnix); ok {
			d := dist
			return Environment{
				TemperatureC: rec.TemperatureC,
				PressureHPa:  rec.PressureHPa,
				Source:       SourceRaw,
				DistanceSec:  &d,
			}
		}
	}
	return Environment{
		TemperatureC: DefaultAirTemperatureC,
		PressureHPa:  DefaultAirPressureHPa,
		Source:       SourceDefault,
		DistanceSec:  nil,
	}
}
