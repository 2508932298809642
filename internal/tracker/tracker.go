// Package tracker runs one day's job: scrape the brand listing, write the
// dated snapshot, diff it against the previous one and record the run.
package tracker

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/listing-tracker/internal/diff"
	"github.com/sells-group/listing-tracker/internal/model"
	"github.com/sells-group/listing-tracker/internal/scrape"
	"github.com/sells-group/listing-tracker/internal/store"
	"github.com/sells-group/listing-tracker/pkg/sheets"
)

// Scraper collects every listing record for a brand.
type Scraper interface {
	Scrape(ctx context.Context, brand string) (*scrape.Result, error)
}

// SnapshotWriter persists one day's records.
type SnapshotWriter interface {
	Write(ctx context.Context, date string, records []model.ProductRecord) (*sheets.Worksheet, error)
}

// Differ compares the latest snapshots and logs the changes.
type Differ interface {
	Run(ctx context.Context, date string) (*diff.Result, error)
}

// Tracker orchestrates a run.
type Tracker struct {
	brand   string
	scraper Scraper
	writer  SnapshotWriter
	differ  Differ
	store   store.Store
	loc     *time.Location
	now     func() time.Time
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithStore records runs in st. Without it runs are not persisted.
func WithStore(st store.Store) Option {
	return func(t *Tracker) { t.store = st }
}

// WithLocation sets the time zone the run date is computed in.
func WithLocation(loc *time.Location) Option {
	return func(t *Tracker) { t.loc = loc }
}

// WithClock overrides the current time source.
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) { t.now = now }
}

// New creates a Tracker for brand.
func New(brand string, sc Scraper, w SnapshotWriter, d Differ, opts ...Option) *Tracker {
	t := &Tracker{
		brand:   brand,
		scraper: sc,
		writer:  w,
		differ:  d,
		loc:     time.Local,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Date returns today's snapshot title in the tracker's time zone.
func (t *Tracker) Date() string {
	return t.now().In(t.loc).Format(model.DateLayout)
}

// Run executes the job once. An empty scrape writes nothing and ends the
// run with status empty. Any stage error aborts the run, marks it failed
// and is returned; sheets already written stay as they are.
func (t *Tracker) Run(ctx context.Context) (*model.Run, error) {
	date := t.Date()
	log := zap.L().With(zap.String("brand", t.brand), zap.String("date", date))
	log.Info("tracker: starting run")

	run, err := t.begin(ctx, date)
	if err != nil {
		return nil, err
	}

	result, status, err := t.execute(ctx, date, log)
	// The ledger is written even when ctx was cancelled mid-run.
	rctx := context.WithoutCancel(ctx)
	if err != nil {
		run.Status = model.RunStatusFailed
		run.Error = err.Error()
		if t.store != nil {
			if ferr := t.store.FailRun(rctx, run.ID, err.Error()); ferr != nil {
				log.Warn("tracker: failed to record run failure", zap.Error(ferr))
			}
		}
		log.Error("tracker: run failed", zap.Error(err))
		return run, err
	}

	run.Status = status
	run.Result = result
	run.UpdatedAt = t.now().UTC()
	if t.store != nil {
		if err := t.store.FinishRun(rctx, run.ID, status, result); err != nil {
			return run, eris.Wrap(err, "tracker: record run")
		}
	}

	log.Info("tracker: run finished",
		zap.String("status", string(status)),
		zap.Int("records", result.Records),
		zap.Int("appeared", result.Appeared),
		zap.Int("disappeared", result.Disappeared),
	)
	return run, nil
}

func (t *Tracker) begin(ctx context.Context, date string) (*model.Run, error) {
	if t.store == nil {
		now := t.now().UTC()
		return &model.Run{
			ID:        uuid.New().String(),
			Brand:     t.brand,
			Date:      date,
			Status:    model.RunStatusRunning,
			CreatedAt: now,
			UpdatedAt: now,
		}, nil
	}
	run, err := t.store.CreateRun(ctx, t.brand, date)
	if err != nil {
		return nil, eris.Wrap(err, "tracker: create run")
	}
	return run, nil
}

func (t *Tracker) execute(ctx context.Context, date string, log *zap.Logger) (*model.RunResult, model.RunStatus, error) {
	res, err := t.scraper.Scrape(ctx, t.brand)
	if err != nil {
		return nil, "", eris.Wrap(err, "tracker: scrape")
	}
	result := &model.RunResult{Pages: res.Pages, Records: len(res.Records)}

	if len(res.Records) == 0 {
		log.Warn("tracker: nothing scraped, leaving sheets untouched")
		return result, model.RunStatusEmpty, nil
	}

	if _, err := t.writer.Write(ctx, date, res.Records); err != nil {
		return nil, "", eris.Wrap(err, "tracker: write snapshot")
	}

	d, err := t.differ.Run(ctx, date)
	if err != nil {
		return nil, "", eris.Wrap(err, "tracker: diff")
	}
	result.DiffSkipped = d.Skipped
	result.ComparedWith = d.Yesterday
	result.Appeared = d.Appeared
	result.Disappeared = d.Disappeared

	return result, model.RunStatusComplete, nil
}
