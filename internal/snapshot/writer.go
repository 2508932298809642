// Package snapshot writes daily listing snapshots to the spreadsheet and
// reads them back for comparison.
package snapshot

import (
	"context"
	"fmt"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/listing-tracker/internal/model"
	"github.com/sells-group/listing-tracker/pkg/sheets"
)

// DefaultTrackingTitle is the title of the tracking log sheet.
const DefaultTrackingTitle = "商品變動追蹤"

const (
	minRows   = 200
	sheetCols = 10
)

// Writer creates the dated snapshot sheet for a run.
type Writer struct {
	client   sheets.Client
	tracking string
}

// NewWriter creates a Writer. An empty trackingTitle selects
// DefaultTrackingTitle.
func NewWriter(client sheets.Client, trackingTitle string) *Writer {
	if trackingTitle == "" {
		trackingTitle = DefaultTrackingTitle
	}
	return &Writer{client: client, tracking: trackingTitle}
}

// EnsureTracking returns the tracking sheet, creating it with its header as
// the leftmost sheet when absent. An existing tracking sheet is never
// recreated.
func (w *Writer) EnsureTracking(ctx context.Context) (*sheets.Worksheet, error) {
	ws, err := w.client.Worksheet(ctx, w.tracking)
	if err == nil {
		return ws, nil
	}
	if !eris.Is(err, sheets.ErrWorksheetNotFound) {
		return nil, eris.Wrap(err, "snapshot: get tracking sheet")
	}

	ws, err = w.client.AddWorksheet(ctx, w.tracking, minRows, sheetCols)
	if err != nil {
		return nil, eris.Wrap(err, "snapshot: create tracking sheet")
	}
	if err := w.client.MoveWorksheet(ctx, *ws, 0); err != nil {
		return nil, eris.Wrap(err, "snapshot: move tracking sheet")
	}
	ws.Index = 0
	header := [][]any{model.TrackingHeader}
	if err := w.client.Update(ctx, sheets.Range(w.tracking, "A1:E1"), header, sheets.UserEntered); err != nil {
		return nil, eris.Wrap(err, "snapshot: write tracking header")
	}

	zap.L().Info("created tracking sheet", zap.String("sheet", w.tracking))
	return ws, nil
}

// Write replaces the snapshot sheet for date with records, in input order.
// A same-day sheet from an earlier run is deleted first, so a rerun keeps
// only the latest records.
func (w *Writer) Write(ctx context.Context, date string, records []model.ProductRecord) (*sheets.Worksheet, error) {
	if !model.IsSnapshotTitle(date) {
		return nil, eris.Errorf("snapshot: invalid date %q", date)
	}
	if _, err := w.EnsureTracking(ctx); err != nil {
		return nil, err
	}

	existing, err := w.client.Worksheet(ctx, date)
	switch {
	case err == nil:
		if err := w.client.DeleteWorksheet(ctx, *existing); err != nil {
			return nil, eris.Wrapf(err, "snapshot: delete previous %s", date)
		}
		zap.L().Info("replacing same-day snapshot", zap.String("sheet", date))
	case !eris.Is(err, sheets.ErrWorksheetNotFound):
		return nil, eris.Wrapf(err, "snapshot: get %s", date)
	}

	ws, err := w.client.AddWorksheet(ctx, date, max(minRows, len(records)+1), sheetCols)
	if err != nil {
		return nil, eris.Wrapf(err, "snapshot: create %s", date)
	}

	header := [][]any{model.SnapshotHeader}
	if err := w.client.Update(ctx, sheets.Range(date, "A1:G1"), header, sheets.UserEntered); err != nil {
		return nil, eris.Wrapf(err, "snapshot: write %s header", date)
	}
	if len(records) == 0 {
		return ws, nil
	}

	last := len(records) + 1
	rows := make([][]any, len(records))
	codes := make([][]any, len(records))
	for i, r := range records {
		row := r.Row()
		row[2] = ""
		rows[i] = row
		codes[i] = []any{model.ModelCode(r.FullName)}
	}

	// Rows go in user-entered mode so the IMAGE formulas render; the model
	// code column is then written raw so codes stay text, not numbers.
	if err := w.client.Update(ctx, sheets.Range(date, fmt.Sprintf("A2:G%d", last)), rows, sheets.UserEntered); err != nil {
		return nil, eris.Wrapf(err, "snapshot: write %s rows", date)
	}
	if err := w.client.Update(ctx, sheets.Range(date, fmt.Sprintf("C2:C%d", last)), codes, sheets.Raw); err != nil {
		return nil, eris.Wrapf(err, "snapshot: write %s model codes", date)
	}

	zap.L().Info("wrote snapshot", zap.String("sheet", date), zap.Int("records", len(records)))
	return ws, nil
}
