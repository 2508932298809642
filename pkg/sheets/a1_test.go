package sheets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRange_QuotesTitle(t *testing.T) {
	assert.Equal(t, "'2025-10-01'!A1:G1", Range("2025-10-01", "A1:G1"))
	assert.Equal(t, "'Bob''s'!A1", Range("Bob's", "A1"))
}

func TestParseRange(t *testing.T) {
	tests := []struct {
		in   string
		want cellRange
	}{
		{"'2025-10-01'!A1:G1", cellRange{title: "2025-10-01", startCol: 0, startRow: 0, endCol: 6, endRow: 0}},
		{"'商品變動追蹤'!D2:E", cellRange{title: "商品變動追蹤", startCol: 3, startRow: 1, endCol: 4, endRow: -1}},
		{"Sheet1!C2:C10", cellRange{title: "Sheet1", startCol: 2, startRow: 1, endCol: 2, endRow: 9}},
		{"'Bob''s'!A1", cellRange{title: "Bob's", startCol: 0, startRow: 0, endCol: 0, endRow: 0}},
		{"'x'!AA3:AB4", cellRange{title: "x", startCol: 26, startRow: 2, endCol: 27, endRow: 3}},
		{"'x'!B:ZZ", cellRange{title: "x", startCol: 1, startRow: 0, endCol: 701, endRow: -1}},
		{"'x'!AZ100", cellRange{title: "x", startCol: 51, startRow: 99, endCol: 51, endRow: 99}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseRange(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseRange_Errors(t *testing.T) {
	for _, in := range []string{"A1:B2", "'open!A1", "'x'A1", "'x'!1:2", "'x'!A0", "'x'!a1", "'x'!A1B", "'x'!B2:3"} {
		_, err := parseRange(in)
		assert.Error(t, err, in)
	}
}
