package snapshot

import (
	"context"
	"sort"

	"github.com/rotisserie/eris"

	"github.com/sells-group/listing-tracker/internal/model"
	"github.com/sells-group/listing-tracker/pkg/sheets"
)

// Reader reads snapshot sheets back from the spreadsheet.
type Reader struct {
	client sheets.Client
}

// NewReader creates a Reader.
func NewReader(client sheets.Client) *Reader {
	return &Reader{client: client}
}

// Dates returns the titles of all snapshot sheets in ascending order.
func (r *Reader) Dates(ctx context.Context) ([]string, error) {
	list, err := r.client.Worksheets(ctx)
	if err != nil {
		return nil, eris.Wrap(err, "snapshot: list sheets")
	}
	var dates []string
	for _, ws := range list {
		if model.IsSnapshotTitle(ws.Title) {
			dates = append(dates, ws.Title)
		}
	}
	sort.Strings(dates)
	return dates, nil
}

// Read returns the name and price columns of the snapshot for date. Rows
// without a name are skipped; the remaining fields are left empty.
func (r *Reader) Read(ctx context.Context, date string) (model.Snapshot, error) {
	rows, err := r.client.Get(ctx, sheets.Range(date, "D2:E"))
	if err != nil {
		return model.Snapshot{}, eris.Wrapf(err, "snapshot: read %s", date)
	}
	snap := model.Snapshot{Date: date}
	for _, row := range rows {
		if len(row) == 0 || row[0] == "" {
			continue
		}
		rec := model.ProductRecord{FullName: row[0]}
		if len(row) > 1 {
			rec.Price = model.ParsePrice(row[1])
		}
		snap.Records = append(snap.Records, rec)
	}
	return snap, nil
}
