package sheets

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
)

// cellRange is a parsed A1 range with zero-based bounds. An end of -1 means
// the range is open in that direction ("D2:E" has no end row).
type cellRange struct {
	title    string
	startCol int
	startRow int
	endCol   int
	endRow   int
}

func parseRange(rng string) (cellRange, error) {
	var r cellRange
	title, cells, err := splitTitle(rng)
	if err != nil {
		return r, err
	}
	r.title = title

	from, to, isPair := strings.Cut(cells, ":")
	sc, sr, hasRow, err := parseRef(from)
	if err != nil {
		return r, eris.Wrapf(err, "sheets: range %q", rng)
	}
	r.startCol, r.startRow = sc, sr
	if !hasRow {
		r.startRow = 0
	}
	if !isPair {
		r.endCol, r.endRow = sc, sr
		if !hasRow {
			r.endRow = -1
		}
		return r, nil
	}

	ec, er, hasRow, err := parseRef(to)
	if err != nil {
		return r, eris.Wrapf(err, "sheets: range %q", rng)
	}
	r.endCol, r.endRow = ec, er
	if !hasRow {
		r.endRow = -1
	}
	return r, nil
}

// splitTitle separates "'My ''Sheet'''!A1:B2" into its title and cells.
func splitTitle(rng string) (string, string, error) {
	if strings.HasPrefix(rng, "'") {
		var b strings.Builder
		for i := 1; i < len(rng); i++ {
			if rng[i] != '\'' {
				b.WriteByte(rng[i])
				continue
			}
			if i+1 < len(rng) && rng[i+1] == '\'' {
				b.WriteByte('\'')
				i++
				continue
			}
			if i+1 >= len(rng) || rng[i+1] != '!' {
				return "", "", eris.Errorf("sheets: malformed range %q", rng)
			}
			return b.String(), rng[i+2:], nil
		}
		return "", "", eris.Errorf("sheets: unterminated sheet title in %q", rng)
	}
	i := strings.LastIndex(rng, "!")
	if i < 0 {
		return "", "", eris.Errorf("sheets: range %q has no sheet title", rng)
	}
	return rng[:i], rng[i+1:], nil
}

// parseRef parses "D2" or "D" into a zero-based column and row.
func parseRef(ref string) (col, row int, hasRow bool, err error) {
	letters := strings.TrimRight(ref, "0123456789")
	if letters == "" || strings.IndexFunc(letters, notUpper) >= 0 {
		return 0, 0, false, eris.Errorf("cell %q has no column", ref)
	}
	if letters == ref {
		return xlsx.ColLettersToIndex(ref), 0, false, nil
	}
	col, row, err = xlsx.GetCoordsFromCellIDString(ref)
	if err != nil || row < 0 {
		return 0, 0, false, eris.Errorf("cell %q has an invalid row", ref)
	}
	return col, row, true, nil
}

func notUpper(r rune) bool { return r < 'A' || r > 'Z' }
