package sheets

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
)

// XLSXClient implements Client over a local workbook file. Formulas are
// stored but never evaluated, so Get returns them as "=..." text. The file
// is written on Close.
type XLSXClient struct {
	path string
	file *xlsx.File
}

// OpenXLSX opens the workbook at path, or starts an empty one when the file
// does not exist yet.
func OpenXLSX(path string) (*XLSXClient, error) {
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return nil, eris.Wrapf(err, "sheets: stat %s", path)
		}
		return &XLSXClient{path: path, file: xlsx.NewFile()}, nil
	}
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "sheets: open workbook %s", path)
	}
	return &XLSXClient{path: path, file: f}, nil
}

// Worksheets lists the sheets in workbook order. Rows and Cols report the
// populated extent, not a fixed grid size.
func (c *XLSXClient) Worksheets(_ context.Context) ([]Worksheet, error) {
	out := make([]Worksheet, 0, len(c.file.Sheets))
	for i, sh := range c.file.Sheets {
		cols := 0
		for _, r := range sh.Rows {
			if r != nil && len(r.Cells) > cols {
				cols = len(r.Cells)
			}
		}
		out = append(out, Worksheet{
			ID:    int64(i),
			Title: sh.Name,
			Index: i,
			Rows:  len(sh.Rows),
			Cols:  cols,
		})
	}
	return out, nil
}

// Worksheet returns the sheet titled title, or ErrWorksheetNotFound.
func (c *XLSXClient) Worksheet(ctx context.Context, title string) (*Worksheet, error) {
	list, err := c.Worksheets(ctx)
	if err != nil {
		return nil, err
	}
	return findWorksheet(list, title)
}

// AddWorksheet appends a sheet. The grid grows on demand, so rows and cols
// only matter for the remote backend.
func (c *XLSXClient) AddWorksheet(ctx context.Context, title string, _, _ int) (*Worksheet, error) {
	if _, ok := c.file.Sheet[title]; ok {
		return nil, eris.Errorf("sheets: worksheet %q already exists", title)
	}
	if _, err := c.file.AddSheet(title); err != nil {
		return nil, eris.Wrapf(err, "sheets: add worksheet %q", title)
	}
	return c.Worksheet(ctx, title)
}

// DeleteWorksheet removes the sheet with the title of ws.
func (c *XLSXClient) DeleteWorksheet(_ context.Context, ws Worksheet) error {
	i := c.indexOf(ws.Title)
	if i < 0 {
		return eris.Wrapf(ErrWorksheetNotFound, "title %q", ws.Title)
	}
	c.file.Sheets = append(c.file.Sheets[:i], c.file.Sheets[i+1:]...)
	delete(c.file.Sheet, ws.Title)
	return nil
}

// MoveWorksheet places the sheet with the title of ws at index, shifting
// the others along.
func (c *XLSXClient) MoveWorksheet(_ context.Context, ws Worksheet, index int) error {
	i := c.indexOf(ws.Title)
	if i < 0 {
		return eris.Wrapf(ErrWorksheetNotFound, "title %q", ws.Title)
	}
	if index < 0 || index >= len(c.file.Sheets) {
		return eris.Errorf("sheets: move worksheet %q: index %d out of range", ws.Title, index)
	}
	sh := c.file.Sheets[i]
	rest := append(c.file.Sheets[:i:i], c.file.Sheets[i+1:]...)
	moved := make([]*xlsx.Sheet, 0, len(c.file.Sheets))
	moved = append(moved, rest[:index]...)
	moved = append(moved, sh)
	moved = append(moved, rest[index:]...)
	c.file.Sheets = moved
	return nil
}

// Update writes values into the grid starting at the top-left cell of rng.
func (c *XLSXClient) Update(_ context.Context, rng string, values [][]any, mode InputMode) error {
	sh, r, err := c.resolve(rng)
	if err != nil {
		return err
	}
	for i, row := range values {
		for j, v := range row {
			setCell(cellAt(sh, r.startRow+i, r.startCol+j), v, mode)
		}
	}
	return nil
}

// Get returns the formatted values in rng. Trailing empty cells and rows are
// dropped, as the Sheets API does.
func (c *XLSXClient) Get(_ context.Context, rng string) ([][]string, error) {
	sh, r, err := c.resolve(rng)
	if err != nil {
		return nil, err
	}
	last := len(sh.Rows) - 1
	if r.endRow >= 0 && r.endRow < last {
		last = r.endRow
	}
	var out [][]string
	for i := r.startRow; i <= last; i++ {
		row := sh.Rows[i]
		var cells []string
		if row != nil {
			end := len(row.Cells) - 1
			if r.endCol >= 0 && r.endCol < end {
				end = r.endCol
			}
			for j := r.startCol; j <= end; j++ {
				cells = append(cells, cellValue(row.Cells[j]))
			}
		}
		out = append(out, trimTrailing(cells))
	}
	for len(out) > 0 && len(out[len(out)-1]) == 0 {
		out = out[:len(out)-1]
	}
	return out, nil
}

// AppendRows writes values below the last non-empty row of the sheet,
// starting at the first column of rng.
func (c *XLSXClient) AppendRows(_ context.Context, rng string, values [][]any, mode InputMode) error {
	sh, r, err := c.resolve(rng)
	if err != nil {
		return err
	}
	start := lastUsedRow(sh) + 1
	if start < r.startRow {
		start = r.startRow
	}
	for i, row := range values {
		for j, v := range row {
			setCell(cellAt(sh, start+i, r.startCol+j), v, mode)
		}
	}
	return nil
}

// Close saves the workbook to its path.
func (c *XLSXClient) Close() error {
	if len(c.file.Sheets) == 0 {
		return nil
	}
	return eris.Wrapf(c.file.Save(c.path), "sheets: save workbook %s", c.path)
}

func (c *XLSXClient) indexOf(title string) int {
	for i, sh := range c.file.Sheets {
		if sh.Name == title {
			return i
		}
	}
	return -1
}

func (c *XLSXClient) resolve(rng string) (*xlsx.Sheet, cellRange, error) {
	r, err := parseRange(rng)
	if err != nil {
		return nil, r, err
	}
	sh, ok := c.file.Sheet[r.title]
	if !ok {
		return nil, r, eris.Wrapf(ErrWorksheetNotFound, "title %q", r.title)
	}
	return sh, r, nil
}

func cellAt(sh *xlsx.Sheet, row, col int) *xlsx.Cell {
	for len(sh.Rows) <= row {
		sh.AddRow()
	}
	r := sh.Rows[row]
	for len(r.Cells) <= col {
		r.AddCell()
	}
	return r.Cells[col]
}

func setCell(cell *xlsx.Cell, v any, mode InputMode) {
	switch t := v.(type) {
	case nil:
		cell.SetString("")
	case string:
		if mode == UserEntered {
			if strings.HasPrefix(t, "=") {
				cell.SetFormula(strings.TrimPrefix(t, "="))
				return
			}
			if n, err := strconv.ParseInt(t, 10, 64); err == nil {
				cell.SetInt64(n)
				return
			}
		}
		cell.SetString(t)
	case int:
		cell.SetInt(t)
	case int64:
		cell.SetInt64(t)
	case float64:
		cell.SetFloat(t)
	case bool:
		cell.SetBool(t)
	default:
		cell.SetString(fmt.Sprint(t))
	}
}

func cellValue(cell *xlsx.Cell) string {
	if cell == nil {
		return ""
	}
	if f := cell.Formula(); f != "" {
		return "=" + f
	}
	return cell.Value
}

func lastUsedRow(sh *xlsx.Sheet) int {
	for i := len(sh.Rows) - 1; i >= 0; i-- {
		row := sh.Rows[i]
		if row == nil {
			continue
		}
		for _, cell := range row.Cells {
			if cellValue(cell) != "" {
				return i
			}
		}
	}
	return -1
}

func trimTrailing(cells []string) []string {
	for len(cells) > 0 && cells[len(cells)-1] == "" {
		cells = cells[:len(cells)-1]
	}
	if cells == nil {
		return []string{}
	}
	return cells
}
