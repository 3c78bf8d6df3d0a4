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
	"context"
	"fmt"
	"sync"

	"github.com/kootepe/fluxrs-go/internal/workpool"
	"github.com/sirupsen/logrus"
)

// MaxConcurrentTasks bounds how many chunk workers may run at once.
const MaxConcurrentTasks = 10

// TimeRange is an inclusive UTC-second span a Processor or Recalculator
// run is scoped to.
type TimeRange struct {
	StartUTC int64
	EndUTC   int64
}

// Processor is the cycle processor (spec 4.E): it chunks a cycle list,
// fans it out to a bounded worker pool that runs the Cycle Evaluator, and
// persists each finished chunk under its own transaction.
type Processor struct {
	Store *Store
	Bus   *Bus

	// Log receives structured progress/error entries. Defaults to
	// logrus.StandardLogger() when nil.
	Log logrus.FieldLogger
}

func (p *Processor) log() logrus.FieldLogger {
	if p.Log != nil {
		return p.Log
	}
	return logrus.StandardLogger()
}

// chunkJob is one unit of work dispatched to a processor worker.
type chunkJob struct {
	defs       []CycleDef
	instrument string
	project    Project
	in         EvaluatorInputs
}

// chunkResult is what a worker reports back to the driver.
type chunkResult struct {
	cycles []Cycle
	err    error
}

// evaluateChunk is the workpool.Process run by each of the pool's
// goroutines: it evaluates every cycle def in one chunk.
func evaluateChunk(ctx context.Context, payload interface{}) (interface{}, error) {
	job := payload.(chunkJob)
	cycles := make([]Cycle, 0, len(job.defs))
	for _, def := range job.defs {
		cycles = append(cycles, EvaluateCycle(def, job.project, job.in))
	}
	return chunkResult{cycles: cycles}, nil
}

// Run drives the processor over project for the given time range: it
// loads the shared gas/meteo/height/chamber datasets once, splits cycles
// into bounded chunks, and folds worker results into storage chunk by
// chunk, counting inserted/skipped fluxes and emitting progress on Bus.
func (p *Processor) Run(project Project, defs []CycleDef, rng TimeRange) error {
	log := p.log().WithFields(logrus.Fields{"project": project.Name, "start": rng.StartUTC, "end": rng.EndUTC})
	log.Info("processor run starting")
	p.Bus.Send(Event{Kind: EventInitStarted})

	meteo, err := p.Store.LoadMeteo(project.Name, rng.StartUTC, rng.EndUTC)
	if err != nil {
		log.WithError(err).Error("loading meteo")
		p.Bus.SendDone(err)
		return fmt.Errorf("fluxrs: processor loading meteo: %w", err)
	}
	height, err := p.Store.LoadHeight(project.Name)
	if err != nil {
		p.Bus.SendDone(err)
		return fmt.Errorf("fluxrs: processor loading height: %w", err)
	}
	chambers, err := p.Store.LoadChambers(project.Name)
	if err != nil {
		p.Bus.SendDone(err)
		return fmt.Errorf("fluxrs: processor loading chambers: %w", err)
	}
	samples, err := p.Store.LoadGasSamples(project.Name, project.MainInstrumentID, rng.StartUTC, rng.EndUTC)
	if err != nil {
		p.Bus.SendDone(err)
		return fmt.Errorf("fluxrs: processor loading gas samples: %w", err)
	}
	gas := NewGasDataSet(samples)

	p.Bus.Send(Event{Kind: EventQueryComplete})
	p.Bus.Send(Event{Kind: EventInitEnded})

	in := EvaluatorInputs{Gas: gas, Meteo: meteo, Height: height, Chamber: chambers}
	chunks := chunkCycles(defs)

	workers := MaxConcurrentTasks
	if len(chunks) > 0 && workers > len(chunks) {
		workers = len(chunks)
	}
	pool := workpool.New(evaluateChunk, workers)
	ctx := context.Background()

	resultChan := make(chan chunkResult, len(chunks))
	var wg sync.WaitGroup
	for i, chunk := range chunks {
		wg.Add(1)
		go func(i int, chunk []CycleDef) {
			defer wg.Done()
			job := chunkJob{defs: chunk, instrument: project.MainInstrumentID, project: project, in: in}
			res, err := pool.Submit(ctx, job, fmt.Sprintf("%s-chunk-%d", project.Name, i))
			if err != nil {
				resultChan <- chunkResult{err: err}
				return
			}
			resultChan <- res.(chunkResult)
		}(i, chunk)
	}
	go func() {
		wg.Wait()
		close(resultChan)
	}()

	totalInserted, totalSkipped := 0, 0
	done := 0
	for res := range resultChan {
		if res.err != nil {
			p.Bus.SendDone(res.err)
			return fmt.Errorf("fluxrs: processor worker failed: %w", res.err)
		}

		var records []FluxRecord
		for _, cyc := range res.cycles {
			for gasType := range cyc.Results {
				records = append(records, FluxRecordFromCycle(cyc, project.MainInstrumentID, gasType.Gas))
			}
		}
		inserted, skipped, err := p.Store.InsertFluxesIgnoreDuplicates(records)
		if err != nil {
			log.WithError(err).Error("persisting chunk")
			p.Bus.SendDone(err)
			return fmt.Errorf("fluxrs: processor persisting chunk: %w", err)
		}
		totalInserted += inserted
		totalSkipped += skipped
		done++
		p.Bus.Send(Event{Kind: EventProgressRows, Done: done, Total: len(chunks), Inserts: inserted, Skips: skipped})
	}

	log.WithFields(logrus.Fields{"inserted": totalInserted, "skipped": totalSkipped}).Info("processor run complete")
	p.Bus.SendDone(nil)
	return nil
}

// chunkCycles splits defs into bounded chunks targeting roughly 1/100th
// of the total cycle count, never fewer than one chunk.
func chunkCycles(defs []CycleDef) [][]CycleDef {
	if len(defs) == 0 {
		return nil
	}
	size := len(defs) / 100
	if size < 1 {
		size = 1
	}
	var chunks [][]CycleDef
	for i := 0; i < len(defs); i += size {
		end := i + size
		if end > len(defs) {
			end = len(defs)
		}
		chunks = append(chunks, defs[i:end])
	}
	return chunks
}
