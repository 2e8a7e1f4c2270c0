// Package indexer keeps the problem index and the slug registry in sync with the problems directory.
package indexer

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"os"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/robfig/cron/v3"

	"github.com/go-while/go-probview/internal/corpus"
	"github.com/go-while/go-probview/internal/database"
	"github.com/go-while/go-probview/internal/models"
	"github.com/go-while/go-probview/internal/registry"
)

// ErrBusy is returned when a pass is requested while another one runs.
var ErrBusy = errors.New("index pass already running")

// Indexer aggregates problem folders, updates the index database and
// reloads the registry
type Indexer struct {
	corpus   *corpus.Corpus
	db       *database.Database // optional
	registry *registry.Registry

	running sync.Mutex

	mux     sync.Mutex
	entropy *rand.Rand
	last    *models.IndexRun
	cron    *cron.Cron
	cancel  context.CancelFunc
}

// New creates an indexer. db may be nil, the registry is then the only index.
func New(c *corpus.Corpus, db *database.Database, reg *registry.Registry) *Indexer {
	return &Indexer{
		corpus:   c,
		db:       db,
		registry: reg,
		entropy:  rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (ix *Indexer) newID(t time.Time) string {
	ix.mux.Lock()
	defer ix.mux.Unlock()
	return ulid.MustNew(ulid.Timestamp(t), ix.entropy).String()
}

// LastRun returns the most recent pass of this process, nil before the first one.
func (ix *Indexer) LastRun() *models.IndexRun {
	ix.mux.Lock()
	defer ix.mux.Unlock()
	return ix.last
}

// LoadRegistry fills the registry from the index database, or from the
// records already on disk when there is no database.
func (ix *Indexer) LoadRegistry() error {
	var entries []registry.Entry
	if ix.db != nil {
		list, err := ix.db.ListProblems(0, 0)
		if err != nil {
			return fmt.Errorf("load registry: %w", err)
		}
		for _, e := range list {
			entries = append(entries, registry.Entry{Slug: e.Slug, Path: e.RecordPath})
		}
	} else {
		names, err := ix.corpus.Scan()
		if err != nil {
			return fmt.Errorf("load registry: %w", err)
		}
		for _, name := range names {
			if _, err := os.Stat(ix.corpus.RecordPath(name)); err == nil {
				entries = append(entries, registry.Entry{Slug: name, Path: ix.corpus.RecordPath(name)})
			}
		}
	}
	ix.registry.Reload(entries)
	return nil
}

// RunOnce aggregates every problem folder, writes the index and swaps the
// registry. A folder that fails to aggregate keeps being served from its
// existing ui/problem.json when that one is still valid.
func (ix *Indexer) RunOnce(ctx context.Context) (*models.IndexRun, error) {
	if !ix.running.TryLock() {
		return nil, ErrBusy
	}
	defer ix.running.Unlock()

	started := time.Now().UTC()
	run := &models.IndexRun{ID: ix.newID(started), StartedAt: started}

	names, err := ix.corpus.Scan()
	if err != nil {
		return nil, err
	}
	cfg, err := ix.corpus.LoadLanguages()
	if err != nil {
		log.Printf("[INDEX]: %v, serving existing records only", err)
		cfg = nil
	}

	var entries []*models.ProblemEntry
	var slugs []string
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rec, err := ix.buildRecord(name, cfg)
		if err != nil {
			run.Failed++
			log.Printf("[INDEX]: skip %s: %v", name, err)
			continue
		}
		entries = append(entries, models.NewProblemEntry(rec.Slug, rec.Path, rec.Checksum, rec.Problem))
		slugs = append(slugs, rec.Slug)
	}
	run.Indexed = len(entries)

	if ix.db != nil {
		if err := ix.db.UpsertProblems(entries); err != nil {
			return nil, fmt.Errorf("index upsert: %w", err)
		}
		pruned, err := ix.db.PruneProblems(slugs)
		if err != nil {
			return nil, fmt.Errorf("index prune: %w", err)
		}
		run.Pruned = pruned
	}

	regEntries := make([]registry.Entry, 0, len(entries))
	for _, e := range entries {
		regEntries = append(regEntries, registry.Entry{Slug: e.Slug, Path: e.RecordPath})
	}
	ix.registry.Reload(regEntries)

	run.FinishedAt = time.Now().UTC()
	if ix.db != nil {
		if err := ix.db.RecordIndexRun(run); err != nil {
			log.Printf("[INDEX]: failed to record run %s: %v", run.ID, err)
		}
	}
	ix.mux.Lock()
	ix.last = run
	ix.mux.Unlock()
	log.Printf("[INDEX]: run %s indexed=%d failed=%d pruned=%d took=%v",
		run.ID, run.Indexed, run.Failed, run.Pruned, run.FinishedAt.Sub(run.StartedAt))
	return run, nil
}

func (ix *Indexer) buildRecord(name string, cfg *corpus.LanguageConfig) (*corpus.Record, error) {
	if cfg != nil {
		rec, err := ix.corpus.AggregateWith(name, cfg)
		if err == nil {
			return rec, nil
		}
		existing, rerr := ix.corpus.ReadRecord(name)
		if rerr != nil {
			return nil, err
		}
		log.Printf("[INDEX]: %s: %v, serving existing record", name, err)
		return existing, nil
	}
	return ix.corpus.ReadRecord(name)
}

// Start schedules RunOnce with a cron spec like "@every 5m" or "*/10 * * * *".
func (ix *Indexer) Start(spec string) error {
	ix.mux.Lock()
	defer ix.mux.Unlock()
	if ix.cron != nil {
		return fmt.Errorf("indexer already started")
	}
	ctx, cancel := context.WithCancel(context.Background())
	c := cron.New()
	if _, err := c.AddFunc(spec, func() {
		if _, err := ix.RunOnce(ctx); err != nil && !errors.Is(err, ErrBusy) && !errors.Is(err, context.Canceled) {
			log.Printf("[INDEX]: scheduled run failed: %v", err)
		}
	}); err != nil {
		cancel()
		return fmt.Errorf("add cron: %w", err)
	}
	ix.cron, ix.cancel = c, cancel
	c.Start()
	log.Printf("[INDEX]: scheduled re-index '%s'", spec)
	return nil
}

// Stop cancels a running scheduled pass and waits for it.
func (ix *Indexer) Stop() {
	ix.mux.Lock()
	c, cancel := ix.cron, ix.cancel
	ix.cron, ix.cancel = nil, nil
	ix.mux.Unlock()
	if c == nil {
		return
	}
	cancel()
	<-c.Stop().Done()
}
