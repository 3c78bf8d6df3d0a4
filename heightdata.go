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

// HeightRecord is one timestamped chamber-height observation.
type HeightRecord struct {
	ChamberID    string
	TimestampUTC int64
	HeightM      float64
}

// HeightDataSet holds a project's height records, sorted per chamber so
// that the nearest-previous lookup can binary search.
type HeightDataSet struct {
	byChamber map[string][]HeightRecord
}

// NewHeightDataSet groups and sorts records by chamber.
func NewHeightDataSet(records []HeightRecord) *HeightDataSet {
	ds := &HeightDataSet{byChamber: make(map[string][]HeightRecord)}
	for _, r := range records {
		ds.byChamber[r.ChamberID] = append(ds.byChamber[r.ChamberID], r)
	}
	for _, recs := range ds.byChamber {
		sort.Slice(recs, func(i, j int) bool { return recs[i].TimestampUTC < recs[j].TimestampUTC })
	}
	return ds
}

// NearestPreviousHeight returns the record for chamberID with the largest
// timestamp <= targetUnix. ok is false if no such record exists.
func (ds *HeightDataSet) NearestPreviousHeight(chamberID string, targetUnix int64) (rec HeightRecord, ok bool) {
	recs := ds.byChamber[chamberID]
	if len(recs) == 0 {
		return HeightRecord{}, false
	}
	i := sort.Search(len(recs), func(i int) bool { return recs[i].TimestampUTC > targetUnix })
	if i == 0 {
		return HeightRecord{}, false
	}
	return recs[i-1], true
}
