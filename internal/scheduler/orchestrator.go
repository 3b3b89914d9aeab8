// Package scheduler drives the periodic narrative runs.
package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/fortuna/courtside/internal/service"
)

// Orchestrator periodically sweeps recent dates for finished games and
// hands them to the narrative service
type Orchestrator struct {
	narratives *service.NarrativeService
	config     *Config
	cancel     context.CancelFunc
}

// Config holds scheduler configuration
type Config struct {
	PollInterval time.Duration // Default: 3h
	LookbackDays int           // Default: 3
	MaxRetries   int           // Default: 3
	RetryDelay   time.Duration // Default: 5s
}

// DefaultConfig returns default scheduler configuration
func DefaultConfig() *Config {
	return &Config{
		PollInterval: 3 * time.Hour,
		LookbackDays: 3,
		MaxRetries:   3,
		RetryDelay:   5 * time.Second,
	}
}

// NewOrchestrator creates a new scheduler orchestrator
func NewOrchestrator(narratives *service.NarrativeService, config *Config) *Orchestrator {
	if config == nil {
		config = DefaultConfig()
	}

	return &Orchestrator{
		narratives: narratives,
		config:     config,
	}
}

// Start begins the polling loop and blocks until the context is done
func (o *Orchestrator) Start(ctx context.Context) {
	log.Println("╔════════════════════════════════════════╗")
	log.Println("║   Courtside Narrative Scheduler        ║")
	log.Println("╚════════════════════════════════════════╝")
	log.Printf("Poll interval: %v", o.config.PollInterval)
	log.Printf("Lookback: %d days", o.config.LookbackDays)
	log.Println()

	ctx, cancel := context.WithCancel(ctx)
	o.cancel = cancel

	ticker := time.NewTicker(o.config.PollInterval)
	defer ticker.Stop()

	consecutiveErrors := 0

	// Run immediately on start
	o.runSweep(ctx, &consecutiveErrors)

	for {
		select {
		case <-ctx.Done():
			log.Println("Scheduler orchestrator stopping...")
			return
		case <-ticker.C:
			o.runSweep(ctx, &consecutiveErrors)
		}
	}
}

// runSweep processes every date in the lookback window
func (o *Orchestrator) runSweep(ctx context.Context, consecutiveErrors *int) {
	startTime := time.Now()
	log.Println("═══ Narrative Sweep Starting ═══")

	totalPosted := 0
	failed := false
	for daysBack := 1; daysBack <= o.config.LookbackDays; daysBack++ {
		date := time.Now().AddDate(0, 0, -daysBack)
		posted, err := o.processDateWithRetry(ctx, date)
		if err != nil {
			log.Printf("  ❌ Sweep of %s failed: %v", date.Format("2006-01-02"), err)
			failed = true
			continue
		}
		totalPosted += posted
	}

	if failed {
		*consecutiveErrors++
		if *consecutiveErrors >= 5 {
			log.Printf("  ⚠️  %d consecutive failing sweeps, check the data source", *consecutiveErrors)
		}
	} else {
		*consecutiveErrors = 0
	}

	duration := time.Since(startTime)
	log.Printf("═══ Sweep Complete: %d threads posted in %v ═══", totalPosted, duration.Round(time.Second))
	log.Println()
}

// processDateWithRetry retries listing failures with a fixed delay
func (o *Orchestrator) processDateWithRetry(ctx context.Context, date time.Time) (int, error) {
	var posted int
	var err error

	for attempt := 1; attempt <= o.config.MaxRetries; attempt++ {
		posted, err = o.narratives.ProcessDate(ctx, date)
		if err == nil {
			return posted, nil
		}

		log.Printf("  ⚠️  Attempt %d/%d for %s failed: %v", attempt, o.config.MaxRetries, date.Format("2006-01-02"), err)

		if attempt < o.config.MaxRetries {
			select {
			case <-ctx.Done():
				return 0, ctx.Err()
			case <-time.After(o.config.RetryDelay):
			}
		}
	}

	return 0, err
}

// TriggerManualRun processes a single date outside the schedule
func (o *Orchestrator) TriggerManualRun(ctx context.Context, date time.Time) (int, error) {
	log.Printf("Manual run triggered for %s", date.Format("2006-01-02"))
	return o.narratives.ProcessDate(ctx, date)
}

// Stop gracefully stops the scheduler
func (o *Orchestrator) Stop() {
	if o.cancel != nil {
		o.cancel()
	}
	log.Println("✓ Scheduler orchestrator stopped")
}

// GetStatus returns current scheduler status
func (o *Orchestrator) GetStatus() map[string]interface{} {
	return map[string]interface{}{
		"poll_interval": o.config.PollInterval.String(),
		"lookback_days": o.config.LookbackDays,
	}
}
