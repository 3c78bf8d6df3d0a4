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

// EventKind tags which variant of Event is populated.
type EventKind uint8

const (
	EventInitStarted EventKind = iota
	EventInitEnded
	EventQueryComplete
	EventDBFail
	EventNoGasData

	EventFileStarted
	EventFileRows
	EventDataFail
	EventRowFail

	EventInsertOk
	EventInsertSkip
	EventInsertFail

	EventProgressRows
	EventProgressRecalced
	EventProgressDay
	EventDisableUI
	EventEnableUI
	EventCalculationStarted
	EventProgressGeneric

	EventDone
)

// Event is the single typed message fluxrs workers and the driver send to
// an observer over the Bus. Only the fields relevant to Kind are
// meaningful; the rest are zero.
type Event struct {
	Kind EventKind

	Message string
	Err     error

	Date  string
	File  string
	Count int

	Done, Total int

	DataKind string
	Inserts  int
	Skips    int
}

// Bus is a single-producer-many / single-consumer typed event channel
// from workers and the driver to one UI/CLI observer.
type Bus struct {
	events chan Event
}

// NewBus creates a Bus with the given buffer size. A small buffer lets
// progress sends stay non-blocking under normal load; Done always gets
// through because the caller is expected to keep reading until it
// arrives.
func NewBus(buffer int) *Bus {
	if buffer < 1 {
		buffer = 1
	}
	return &Bus{events: make(chan Event, buffer)}
}

// Events returns the read side of the bus for an observer to range over.
func (b *Bus) Events() <-chan Event {
	return b.events
}

// Send delivers e best-effort: if the channel is full, the event is
// dropped rather than blocking the caller. Used for Progress/Query/Read/
// Insert events, where loss under backpressure is acceptable.
func (b *Bus) Send(e Event) {
	select {
	case b.events <- e:
	default:
	}
}

// SendDone delivers a terminal Done event, blocking until the observer
// receives it. The pipeline is considered crashed if this is never
// called.
func (b *Bus) SendDone(err error) {
	b.events <- Event{Kind: EventDone, Err: err}
}

// Close closes the event channel. Callers must not Send after Close.
func (b *Bus) Close() {
	close(b.events)
}
