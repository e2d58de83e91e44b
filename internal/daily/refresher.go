// Package daily keeps the words-of-the-day cache filled from the catalog.
package daily

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/yiblet/vocab/internal/catalog"
	"github.com/yiblet/vocab/internal/library"
)

// DefaultWordsPerDay is used when no count is configured.
const DefaultWordsPerDay = 5

// Refresher fetches words from a catalog when today's cache is empty.
type Refresher struct {
	source      catalog.Source
	lib         *library.Library
	wordsPerDay int
	timeout     time.Duration
	logger      *log.Logger

	mu      sync.Mutex
	cron    *cron.Cron
	startup sync.WaitGroup
}

// NewRefresher creates a refresher caching wordsPerDay words per day.
func NewRefresher(source catalog.Source, lib *library.Library, wordsPerDay int, logger *log.Logger) *Refresher {
	if wordsPerDay <= 0 {
		wordsPerDay = DefaultWordsPerDay
	}
	return &Refresher{
		source:      source,
		lib:         lib,
		wordsPerDay: wordsPerDay,
		timeout:     30 * time.Second,
		logger:      logger,
	}
}

// Refresh fills today's cache. Unless force is set it does nothing when
// words are already cached for today. It reports whether a fetch happened.
func (r *Refresher) Refresh(ctx context.Context, force bool) (bool, error) {
	if !force {
		has, err := r.lib.HasCachedWordsForToday()
		if err != nil {
			return false, fmt.Errorf("failed to check cache: %w", err)
		}
		if has {
			return false, nil
		}
	}

	words, err := r.source.Fetch(ctx, r.wordsPerDay)
	if err != nil {
		return false, err
	}
	if err := r.lib.CacheDailyWords(words); err != nil {
		return false, fmt.Errorf("failed to cache words: %w", err)
	}
	r.logger.Printf("cached %d words for today", len(words))
	return true, nil
}

// Start schedules Refresh on the given cron schedule (standard five fields or
// descriptors such as "@daily") and runs one refresh immediately.
func (r *Refresher) Start(schedule string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.cron != nil {
		return fmt.Errorf("refresher already started")
	}

	c := cron.New(cron.WithLogger(cron.PrintfLogger(r.logger)))
	if _, err := c.AddFunc(schedule, r.scheduledRefresh); err != nil {
		return fmt.Errorf("invalid refresh schedule %q: %w", schedule, err)
	}
	c.Start()
	r.cron = c

	r.startup.Add(1)
	go func() {
		defer r.startup.Done()
		r.scheduledRefresh()
	}()
	return nil
}

// Stop halts the schedule and waits for running refreshes to finish,
// including the one started by Start.
func (r *Refresher) Stop() {
	r.mu.Lock()
	c := r.cron
	r.cron = nil
	r.mu.Unlock()

	if c != nil {
		<-c.Stop().Done()
	}
	r.startup.Wait()
}

func (r *Refresher) scheduledRefresh() {
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	if _, err := r.Refresh(ctx, false); err != nil {
		r.logger.Printf("daily refresh failed: %v", err)
	}
}
