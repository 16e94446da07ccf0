// Package tracker implements the Tracker Loop of spec.md §4.3: one
// supervisor per process coordinating one worker per configured term, with
// Session Recovery bracketing each polling cycle.
//
// Grounded on original_source/crates/webreg/src/scraper/tracker.rs's
// top-level scrape loop: one worker goroutine per term instead of one job
// per session, and a single "first exit wins" rendezvous instead of
// continuous re-dispatch.
package tracker

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/campusdata/webreg-collector/internal/corestate"
	"github.com/campusdata/webreg-collector/internal/logging"
	"github.com/campusdata/webreg-collector/internal/recovery"
)

// Run executes the Tracker Loop's outer state machine until the process is
// told to stop or a Session Recovery attempt fails.
func Run(ctx context.Context, state *corestate.State, log *logging.Logger) {
	if !recovery.Run(ctx, state, log) {
		log.Error("tracker: initial login failed, not starting")
		return
	}

	for {
		state.SetRunning(true)
		runTermWorkers(ctx, state, log)
		state.SetRunning(false)

		if state.ShouldStop() {
			log.Info("tracker: stop flag set, exiting")
			return
		}

		if !recovery.Run(ctx, state, log) {
			log.Error("tracker: session recovery failed, exiting")
			return
		}
	}
}

// runTermWorkers spawns one worker per configured term and waits until any
// one of them returns, then asks the rest to stop and waits for them to
// drain before returning itself.
func runTermWorkers(ctx context.Context, state *corestate.State, log *logging.Logger) {
	terms := state.Terms.All()
	if len(terms) == 0 {
		return
	}

	var loopStop atomic.Bool
	stopped := func() bool { return loopStop.Load() }

	var wg sync.WaitGroup
	firstExit := make(chan struct{}, len(terms))

	for _, term := range terms {
		term := term
		wg.Add(1)
		go func() {
			defer wg.Done()
			runTermWorker(ctx, state, term, stopped, log)
			select {
			case firstExit <- struct{}{}:
			default:
			}
		}()
	}

	<-firstExit
	loopStop.Store(true)
	wg.Wait()
}
