// Package sheets provides the spreadsheet document the tracker writes its
// daily snapshots and tracking log to.
package sheets

import (
	"context"
	"strings"

	"github.com/rotisserie/eris"
)

// ErrWorksheetNotFound is returned by Client.Worksheet when no worksheet has
// the requested title.
var ErrWorksheetNotFound = eris.New("sheets: worksheet not found")

// InputMode controls how written values are interpreted.
type InputMode string

const (
	// UserEntered parses values as if typed into the UI: "=..." becomes a
	// formula and numeric strings become numbers.
	UserEntered InputMode = "USER_ENTERED"
	// Raw stores values literally.
	Raw InputMode = "RAW"
)

// Worksheet describes one sheet (tab) of a spreadsheet.
type Worksheet struct {
	ID    int64
	Title string
	Index int
	Rows  int
	Cols  int
}

// Client is an open spreadsheet document. Ranges use A1 notation qualified
// by the sheet title, see Range.
type Client interface {
	Worksheets(ctx context.Context) ([]Worksheet, error)
	Worksheet(ctx context.Context, title string) (*Worksheet, error)
	AddWorksheet(ctx context.Context, title string, rows, cols int) (*Worksheet, error)
	DeleteWorksheet(ctx context.Context, ws Worksheet) error
	MoveWorksheet(ctx context.Context, ws Worksheet, index int) error
	Update(ctx context.Context, rng string, values [][]any, mode InputMode) error
	Get(ctx context.Context, rng string) ([][]string, error)
	AppendRows(ctx context.Context, rng string, values [][]any, mode InputMode) error
	Close() error
}

// Range qualifies an A1 cell range with a sheet title, e.g.
// Range("2025-10-01", "A1:G1") == "'2025-10-01'!A1:G1".
func Range(title, cells string) string {
	return "'" + strings.ReplaceAll(title, "'", "''") + "'!" + cells
}

// findWorksheet returns the worksheet titled title from list.
func findWorksheet(list []Worksheet, title string) (*Worksheet, error) {
	for i := range list {
		if list[i].Title == title {
			ws := list[i]
			return &ws, nil
		}
	}
	return nil, eris.Wrapf(ErrWorksheetNotFound, "title %q", title)
}
