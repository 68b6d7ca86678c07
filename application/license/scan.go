package license

import (
	"context"
	"encoding/json"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/gerv/slic/domain"
)

// countGuard accumulates the scan's file/hit counters across workers.
type countGuard struct {
	mu    sync.Mutex
	files int
	hits  int
}

func (c *countGuard) addFile() {
	c.mu.Lock()
	c.files++
	c.mu.Unlock()
}

func (c *countGuard) addHit() {
	c.mu.Lock()
	c.hits++
	c.mu.Unlock()
}

func (c *countGuard) snapshot() (files, hits int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.files, c.hits
}

// ScanRun is the top-level report envelope for a full-tree scan: a run
// id, timing, and the deduplicated entries it produced. Grounded on the
// teacher's uuid.New().String() run-tagging convention for its
// report/export services.
type ScanRun struct {
	ID         string                  `json:"id"`
	Root       string                  `json:"root"`
	StartedAt  time.Time               `json:"startedAt"`
	FinishedAt time.Time               `json:"finishedAt"`
	FileCount  int                     `json:"fileCount"`
	HitCount   int                     `json:"hitCount"`
	Entries    []domain.AggregatedEntry `json:"entries"`
}

// MarshalReport serializes the run as indented JSON.
func (r *ScanRun) MarshalReport() ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}

// Scan pulls paths off the channel, classifies each with orch, and feeds
// every hit into agg. Work fans out across runtime.GOMAXPROCS(0) workers
// via an errgroup, and honors ctx cancellation between files: a worker
// checks ctx.Err() before taking on its next path. details controls
// whether the orchestrator extracts copyright/license text per hit (§4.6)
// or returns bare tags only.
func Scan(ctx context.Context, root string, paths <-chan string, orch *Orchestrator, agg *Aggregator, details bool) (*ScanRun, error) {
	run := &ScanRun{
		ID:        uuid.New().String(),
		Root:      root,
		StartedAt: time.Now(),
	}

	workers := runtime.GOMAXPROCS(0)
	if workers < 1 {
		workers = 1
	}

	var countMu countGuard

	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < workers; i++ {
		g.Go(func() error {
			for {
				if err := gctx.Err(); err != nil {
					return err
				}
				select {
				case <-gctx.Done():
					return gctx.Err()
				case path, ok := <-paths:
					if !ok {
						return nil
					}

					hits, err := orch.LicensesIn(path, details)
					if err != nil {
						orch.Log.Warning(fmt.Sprintf("slic: skipping %s: %v", path, err))
						continue
					}

					countMu.addFile()
					for _, hit := range hits {
						agg.Add(path, hit)
						countMu.addHit()
					}
				}
			}
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	run.FileCount, run.HitCount = countMu.snapshot()
	run.FinishedAt = time.Now()
	run.Entries = agg.Entries()

	return run, nil
}
