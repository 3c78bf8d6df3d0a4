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

// Package workpool bounds how many chunks of work run at once, in the
// same shape as the surrogate-generation worker pool in
// emissions/aep/surrogate.go: a fixed number of long-lived goroutines
// pull requests off a shared channel, and each submitter blocks on its
// own per-request return channel. It is a thin wrapper around
// ctessum/requestcache's processor pool, with no caching layers attached
// since cycle chunks are never the same chunk twice.
package workpool

import (
	"context"

	"github.com/ctessum/requestcache"
)

// Process computes the result for one submitted payload.
type Process func(ctx context.Context, payload interface{}) (interface{}, error)

// Pool runs Process across a fixed number of goroutines.
type Pool struct {
	cache *requestcache.Cache
}

// New starts a Pool with numWorkers goroutines running process.
func New(process Process, numWorkers int) *Pool {
	return &Pool{cache: requestcache.NewCache(requestcache.ProcessFunc(process), numWorkers)}
}

// Submit hands payload to the pool under key and blocks until a worker
// has produced a result or error. Concurrent calls to Submit are safe and
// are what drives numWorkers of them to run at once.
func (p *Pool) Submit(ctx context.Context, payload interface{}, key string) (interface{}, error) {
	return p.cache.NewRequest(ctx, payload, key).Result()
}
