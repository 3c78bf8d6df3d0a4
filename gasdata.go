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
	"time"
)

// GasKey disambiguates same-species readings from co-located instruments.
type GasKey struct {
	Gas          GasType
	InstrumentID string
}

// GasSample is one reading at one timestamp from one instrument.
type GasSample struct {
	TimestampUTC int64 // unix seconds
	Values       map[GasKey]float64
	Diag         int64
}

// DayBucket groups samples by their UTC calendar day, keyed "YYYY-MM-DD".
func DayBucket(unixSeconds int64) string {
	return time.Unix(unixSeconds, 0).UTC().Format("2006-01-02")
}

// GasDataSet is a per-day bucket of GasSamples, shared by reference among
// the workers of one processing run; it is never mutated once built.
type GasDataSet struct {
	buckets map[string][]GasSample
}

// NewGasDataSet buckets samples by day.
func NewGasDataSet(samples []GasSample) *GasDataSet {
	ds := &GasDataSet{buckets: make(map[string][]GasSample)}
	for _, s := range samples {
		day := DayBucket(s.TimestampUTC)
		ds.buckets[day] = append(ds.buckets[day], s)
	}
	return ds
}

// Day returns the samples recorded on the UTC calendar day containing
// unixSeconds. The returned slice must not be mutated by the caller; it is
// shared, not copied.
func (ds *GasDataSet) Day(unixSeconds int64) []GasSample {
	return ds.buckets[DayBucket(unixSeconds)]
}

// InRange returns the samples within [startUnix, endUnix], spanning
// whichever day buckets the range touches.
func (ds *GasDataSet) InRange(startUnix, endUnix int64) []GasSample {
	var out []GasSample
	seen := make(map[string]bool)
	firstDay := startUnix - ((startUnix%86400)+86400)%86400
	for day := firstDay; day <= endUnix; day += 86400 {
		key := DayBucket(day)
		if seen[key] {
			continue
		}
		seen[key] = true
		for _, s := range ds.buckets[key] {
			if s.TimestampUTC >= startUnix && s.TimestampUTC <= endUnix {
				out = append(out, s)
			}
		}
	}
	return out
}

// SeriesFor extracts parallel (seconds-from-start, value) vectors for one
// GasKey from a slice of samples, relative to startUnix. Samples missing a
// value for key are skipped.
func SeriesFor(samples []GasSample, key GasKey, startUnix int64) (t, y []float64) {
	for _, s := range samples {
		v, ok := s.Values[key]
		if !ok {
			continue
		}
		t = append(t, float64(s.TimestampUTC-startUnix))
		y = append(y, v)
	}
	return t, y
}

func (k GasKey) String() string {
	return fmt.Sprintf("%s/%s", k.Gas, k.InstrumentID)
}
