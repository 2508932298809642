// Package diff compares the two most recent snapshots and appends the
// appeared and disappeared product names to the tracking log.
package diff

import (
	"context"
	"sort"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/listing-tracker/internal/model"
	"github.com/sells-group/listing-tracker/pkg/sheets"
)

// SnapshotSource lists and reads snapshot sheets.
type SnapshotSource interface {
	Dates(ctx context.Context) ([]string, error)
	Read(ctx context.Context, date string) (model.Snapshot, error)
}

// Result summarizes one comparison.
type Result struct {
	Skipped     bool                  `json:"skipped"` // fewer than two snapshots exist
	Yesterday   string                `json:"yesterday,omitempty"`
	Today       string                `json:"today,omitempty"`
	Appeared    int                   `json:"appeared"`
	Disappeared int                   `json:"disappeared"`
	Entries     []model.TrackingEntry `json:"entries"`
}

// Compare returns the tracking entries for names present in only one of the
// two snapshots. Disappeared entries come first, then appeared entries, each
// group sorted by name. Products are keyed by full name; a price change on
// the same name produces nothing. When a name repeats within a snapshot the
// last record wins.
func Compare(date string, yesterday, today model.Snapshot) []model.TrackingEntry {
	prev := index(yesterday.Records)
	curr := index(today.Records)

	var entries []model.TrackingEntry
	for _, name := range missingFrom(prev, curr) {
		entries = append(entries, entry(date, model.StatusDisappeared, prev[name]))
	}
	for _, name := range missingFrom(curr, prev) {
		entries = append(entries, entry(date, model.StatusAppeared, curr[name]))
	}
	return entries
}

func index(records []model.ProductRecord) map[string]model.ProductRecord {
	m := make(map[string]model.ProductRecord, len(records))
	for _, r := range records {
		if r.FullName == "" {
			continue
		}
		m[r.FullName] = r
	}
	return m
}

// missingFrom returns the sorted names in a that are not in b.
func missingFrom(a, b map[string]model.ProductRecord) []string {
	var names []string
	for name := range a {
		if _, ok := b[name]; !ok {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

func entry(date string, status model.TrackingStatus, r model.ProductRecord) model.TrackingEntry {
	return model.TrackingEntry{
		Date:      date,
		Status:    status,
		FullName:  r.FullName,
		ModelCode: model.ModelCode(r.FullName),
		Price:     r.Price,
	}
}

// Engine runs comparisons against the spreadsheet.
type Engine struct {
	source   SnapshotSource
	client   sheets.Client
	tracking string
}

// NewEngine creates an Engine that appends to the sheet titled tracking.
func NewEngine(source SnapshotSource, client sheets.Client, tracking string) *Engine {
	return &Engine{source: source, client: client, tracking: tracking}
}

// Run compares the latest two snapshots and appends the changes, dated
// date, to the tracking sheet. With fewer than two snapshots it does
// nothing and reports Skipped.
func (e *Engine) Run(ctx context.Context, date string) (*Result, error) {
	log := zap.L().With(zap.String("date", date))

	dates, err := e.source.Dates(ctx)
	if err != nil {
		return nil, eris.Wrap(err, "diff: list snapshots")
	}
	if len(dates) < 2 {
		log.Info("not enough snapshots to compare", zap.Int("snapshots", len(dates)))
		return &Result{Skipped: true}, nil
	}

	res := &Result{
		Yesterday: dates[len(dates)-2],
		Today:     dates[len(dates)-1],
	}
	prev, err := e.source.Read(ctx, res.Yesterday)
	if err != nil {
		return nil, eris.Wrap(err, "diff: read previous snapshot")
	}
	curr, err := e.source.Read(ctx, res.Today)
	if err != nil {
		return nil, eris.Wrap(err, "diff: read latest snapshot")
	}

	res.Entries = Compare(date, prev, curr)
	for _, en := range res.Entries {
		switch en.Status {
		case model.StatusAppeared:
			res.Appeared++
		case model.StatusDisappeared:
			res.Disappeared++
		}
	}

	log = log.With(
		zap.String("yesterday", res.Yesterday),
		zap.String("today", res.Today),
		zap.Int("appeared", res.Appeared),
		zap.Int("disappeared", res.Disappeared),
	)
	if len(res.Entries) == 0 {
		log.Info("no listing changes")
		return res, nil
	}

	rows := make([][]any, len(res.Entries))
	for i, en := range res.Entries {
		rows[i] = en.Row()
	}
	if err := e.client.AppendRows(ctx, sheets.Range(e.tracking, "A1"), rows, sheets.UserEntered); err != nil {
		return nil, eris.Wrap(err, "diff: append tracking rows")
	}

	log.Info("appended listing changes")
	return res, nil
}
