package sheets

import (
	"context"
	"fmt"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"google.golang.org/api/option"
	gsheets "google.golang.org/api/sheets/v4"
)

// GoogleClient implements Client on top of the Google Sheets v4 API.
type GoogleClient struct {
	svc           *gsheets.Service
	spreadsheetID string
}

// NewGoogleClient opens the spreadsheet identified by spreadsheetID. Callers
// normally pass option.WithCredentialsFile for a service account.
func NewGoogleClient(ctx context.Context, spreadsheetID string, opts ...option.ClientOption) (*GoogleClient, error) {
	if spreadsheetID == "" {
		return nil, eris.New("sheets: spreadsheet id is required")
	}
	opts = append([]option.ClientOption{option.WithScopes(gsheets.SpreadsheetsScope)}, opts...)
	svc, err := gsheets.NewService(ctx, opts...)
	if err != nil {
		return nil, eris.Wrap(err, "sheets: create service")
	}

	ss, err := svc.Spreadsheets.Get(spreadsheetID).Fields("spreadsheetId,properties.title").Context(ctx).Do()
	if err != nil {
		return nil, eris.Wrapf(err, "sheets: open spreadsheet %s", spreadsheetID)
	}
	title := ""
	if ss.Properties != nil {
		title = ss.Properties.Title
	}
	zap.L().Debug("opened spreadsheet",
		zap.String("spreadsheet_id", spreadsheetID),
		zap.String("title", title),
	)

	return &GoogleClient{svc: svc, spreadsheetID: spreadsheetID}, nil
}

// Worksheets lists all worksheets in document order.
func (c *GoogleClient) Worksheets(ctx context.Context) ([]Worksheet, error) {
	ss, err := c.svc.Spreadsheets.Get(c.spreadsheetID).Fields("sheets.properties").Context(ctx).Do()
	if err != nil {
		return nil, eris.Wrap(err, "sheets: list worksheets")
	}
	out := make([]Worksheet, 0, len(ss.Sheets))
	for _, s := range ss.Sheets {
		if s.Properties == nil {
			continue
		}
		out = append(out, fromProperties(s.Properties))
	}
	return out, nil
}

// Worksheet returns the worksheet with the given title or an error wrapping
// ErrWorksheetNotFound.
func (c *GoogleClient) Worksheet(ctx context.Context, title string) (*Worksheet, error) {
	list, err := c.Worksheets(ctx)
	if err != nil {
		return nil, err
	}
	return findWorksheet(list, title)
}

// AddWorksheet appends a new worksheet with the given grid size.
func (c *GoogleClient) AddWorksheet(ctx context.Context, title string, rows, cols int) (*Worksheet, error) {
	resp, err := c.batchUpdate(ctx, &gsheets.Request{
		AddSheet: &gsheets.AddSheetRequest{
			Properties: &gsheets.SheetProperties{
				Title: title,
				GridProperties: &gsheets.GridProperties{
					RowCount:    int64(rows),
					ColumnCount: int64(cols),
				},
			},
		},
	})
	if err != nil {
		return nil, eris.Wrapf(err, "sheets: add worksheet %q", title)
	}
	if len(resp.Replies) == 0 || resp.Replies[0].AddSheet == nil || resp.Replies[0].AddSheet.Properties == nil {
		return nil, eris.Errorf("sheets: add worksheet %q: empty reply", title)
	}
	ws := fromProperties(resp.Replies[0].AddSheet.Properties)
	return &ws, nil
}

// DeleteWorksheet removes ws from the document.
func (c *GoogleClient) DeleteWorksheet(ctx context.Context, ws Worksheet) error {
	_, err := c.batchUpdate(ctx, &gsheets.Request{
		DeleteSheet: &gsheets.DeleteSheetRequest{
			SheetId:         ws.ID,
			ForceSendFields: []string{"SheetId"}, // sheet 0 is a valid id
		},
	})
	return eris.Wrapf(err, "sheets: delete worksheet %q", ws.Title)
}

// MoveWorksheet repositions ws at index (0 is leftmost).
func (c *GoogleClient) MoveWorksheet(ctx context.Context, ws Worksheet, index int) error {
	_, err := c.batchUpdate(ctx, &gsheets.Request{
		UpdateSheetProperties: &gsheets.UpdateSheetPropertiesRequest{
			Properties: &gsheets.SheetProperties{
				SheetId:         ws.ID,
				Index:           int64(index),
				ForceSendFields: []string{"SheetId", "Index"},
			},
			Fields: "index",
		},
	})
	return eris.Wrapf(err, "sheets: move worksheet %q", ws.Title)
}

// Update writes values starting at the top-left of rng.
func (c *GoogleClient) Update(ctx context.Context, rng string, values [][]any, mode InputMode) error {
	_, err := c.svc.Spreadsheets.Values.Update(c.spreadsheetID, rng, &gsheets.ValueRange{Values: values}).
		ValueInputOption(string(mode)).
		Context(ctx).
		Do()
	return eris.Wrapf(err, "sheets: update %s", rng)
}

// Get reads the formatted values of rng. Trailing empty rows and cells are
// omitted, as the API does.
func (c *GoogleClient) Get(ctx context.Context, rng string) ([][]string, error) {
	vr, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return nil, eris.Wrapf(err, "sheets: get %s", rng)
	}
	out := make([][]string, len(vr.Values))
	for i, row := range vr.Values {
		cells := make([]string, len(row))
		for j, v := range row {
			cells[j] = cellString(v)
		}
		out[i] = cells
	}
	return out, nil
}

// AppendRows appends values after the last row of the table found in rng.
func (c *GoogleClient) AppendRows(ctx context.Context, rng string, values [][]any, mode InputMode) error {
	_, err := c.svc.Spreadsheets.Values.Append(c.spreadsheetID, rng, &gsheets.ValueRange{Values: values}).
		ValueInputOption(string(mode)).
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	return eris.Wrapf(err, "sheets: append %s", rng)
}

// Close releases the client. The HTTP transport needs no teardown.
func (c *GoogleClient) Close() error { return nil }

func (c *GoogleClient) batchUpdate(ctx context.Context, req *gsheets.Request) (*gsheets.BatchUpdateSpreadsheetResponse, error) {
	return c.svc.Spreadsheets.BatchUpdate(c.spreadsheetID, &gsheets.BatchUpdateSpreadsheetRequest{
		Requests: []*gsheets.Request{req},
	}).Context(ctx).Do()
}

func fromProperties(p *gsheets.SheetProperties) Worksheet {
	ws := Worksheet{
		ID:    p.SheetId,
		Title: p.Title,
		Index: int(p.Index),
	}
	if p.GridProperties != nil {
		ws.Rows = int(p.GridProperties.RowCount)
		ws.Cols = int(p.GridProperties.ColumnCount)
	}
	return ws
}

func cellString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	default:
		return fmt.Sprint(t)
	}
}
