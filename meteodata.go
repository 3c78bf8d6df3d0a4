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

import "sort"

// MaxMeteoDistanceSeconds is the farthest a meteo record may be from a
// query timestamp and still be considered its nearest neighbour.
const MaxMeteoDistanceSeconds = 1800

// DefaultAirTemperatureC and DefaultAirPressureHPa are the sentinel
// environmental values substituted when no meteo record is close enough.
const (
	DefaultAirTemperatureC = 10.0
	DefaultAirPressureHPa  = 980.0
)

// SourceTag records whether an environmental input came from a real
// record (Raw) or a fallback constant (Default).
type SourceTag uint8

const (
	SourceRaw SourceTag = iota
	SourceDefault
)

// MeteoRecord is one timestamped temperature/pressure observation.
type MeteoRecord struct {
	TimestampUTC int64
	TemperatureC float64
	PressureHPa  float64
}

// MeteoDataSet is a project's meteo records, kept sorted by timestamp to
// support binary-search nearest lookup.
type MeteoDataSet struct {
	records []MeteoRecord
}

// NewMeteoDataSet sorts records by timestamp.
func NewMeteoDataSet(records []MeteoRecord) *MeteoDataSet {
	sorted := make([]MeteoRecord, len(records))
	copy(sorted, records)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].TimestampUTC < sorted[j].TimestampUTC })
	return &MeteoDataSet{records: sorted}
}

// Nearest returns the record closest in time to targetUnix, by binary
// search then comparing the closer of the two neighbours. ok is false if
// the dataset is empty or the closest record is farther than
// MaxMeteoDistanceSeconds.
func (ds *MeteoDataSet) Nearest(targetUnix int64) (rec MeteoRecord, dist int64, ok bool) {
	if len(ds.records) == 0 {
		return MeteoRecord{}, 0, false
	}
	i := sort.Search(len(ds.records), func(i int) bool {
		return ds.records[i].TimestampUTC >= targetUnix
	})

	var best MeteoRecord
	bestDist := int64(-1)
	consider := func(idx int) {
		if idx < 0 || idx >= len(ds.records) {
			return
		}
		d := abs64(ds.records[idx].TimestampUTC - targetUnix)
		if bestDist < 0 || d < bestDist {
			bestDist = d
			best = ds.records[idx]
		}
	}
	consider(i)
	consider(i - 1)

	if bestDist < 0 || bestDist > MaxMeteoDistanceSeconds {
		return MeteoRecord{}, 0, false
	}
	return best, bestDist, true
}

func abs64(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
