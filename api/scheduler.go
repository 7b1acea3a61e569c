/*
scheduler.go - Automated carry-over scheduler

PURPOSE:
  Periodically recomputes every employee's accumulated hours from the
  persisted shift history, so month-end surpluses flow into the next
  month without an operator pressing the button.

DESIGN:
  - Runs a background goroutine with configurable check interval
  - Each tick is a full recompute from history, so a missed tick costs
    nothing and a duplicate tick changes nothing
  - Shares the same planner path as the manual /api/admin/carryover
    endpoint

CONFIGURATION:
  - CheckInterval: How often to recompute (default: 6 hours)
  - Enabled: Whether scheduler is active (default: true)

USAGE:
  scheduler := NewCarryOverScheduler(handler)
  scheduler.Start()
  // ... later
  scheduler.Stop()

SEE ALSO:
  - handlers.go: TriggerCarryOver endpoint (manual recompute)
  - planner/planner.go: RecomputeCarryOver
*/
package api

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/warp/roster-engine/roster"
)

// CarryOverScheduler handles automated month-end hour carry-over.
type CarryOverScheduler struct {
	Handler       *Handler
	CheckInterval time.Duration
	Enabled       bool

	ticker *time.Ticker
	stop   chan bool
	wg     sync.WaitGroup
	mu     sync.Mutex
}

// NewCarryOverScheduler creates a new scheduler.
func NewCarryOverScheduler(handler *Handler) *CarryOverScheduler {
	return &CarryOverScheduler{
		Handler:       handler,
		CheckInterval: 6 * time.Hour,
		Enabled:       true,
		stop:          make(chan bool),
	}
}

// Start begins the scheduler.
func (cs *CarryOverScheduler) Start() {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	if !cs.Enabled {
		log.Println("[Scheduler] Disabled, not starting")
		return
	}

	cs.ticker = time.NewTicker(cs.CheckInterval)
	cs.wg.Add(1)

	go cs.run()

	log.Printf("[Scheduler] Started with check interval: %v", cs.CheckInterval)
}

// Stop stops the scheduler.
func (cs *CarryOverScheduler) Stop() {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	if cs.ticker != nil {
		cs.ticker.Stop()
		close(cs.stop)
		cs.wg.Wait()
		log.Println("[Scheduler] Stopped")
	}
}

func (cs *CarryOverScheduler) run() {
	defer cs.wg.Done()

	// Run immediately on start
	cs.recompute()

	for {
		select {
		case <-cs.ticker.C:
			cs.recompute()
		case <-cs.stop:
			return
		}
	}
}

func (cs *CarryOverScheduler) recompute() {
	ctx := context.Background()
	today := roster.Today()

	log.Printf("[Scheduler] Recomputing carry-over as of %s", today)

	updated, err := cs.Handler.Planner.RecomputeCarryOver(ctx, today)
	if err != nil {
		log.Printf("[Scheduler] Carry-over recompute failed: %v", err)
		return
	}
	if updated > 0 {
		log.Printf("[Scheduler] Updated accumulated hours for %d employee(s)", updated)
	}
}
