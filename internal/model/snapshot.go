package model

import "regexp"

// SnapshotHeader is the header row of a daily snapshot sheet.
var SnapshotHeader = []any{"店名", "品牌", "型號", "完整名稱", "價格", "連結", "圖片"}

// TrackingHeader is the header row of the tracking sheet.
var TrackingHeader = []any{"日期", "狀態", "商品名稱", "型號", "價格"}

// DateLayout is the layout of snapshot sheet titles. Zero padding makes
// lexicographic order equal to chronological order.
const DateLayout = "2006-01-02"

var snapshotTitleRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// IsSnapshotTitle reports whether a sheet title names a daily snapshot.
func IsSnapshotTitle(title string) bool {
	return snapshotTitleRe.MatchString(title)
}

// Snapshot is one day's capture of listing records.
type Snapshot struct {
	Date    string          `json:"date"`
	Records []ProductRecord `json:"records"`
}

// TrackingStatus marks whether a product name appeared or disappeared.
type TrackingStatus string

const (
	StatusAppeared    TrackingStatus = "新增"
	StatusDisappeared TrackingStatus = "下架"
)

// TrackingEntry is one row of the append-only tracking log.
type TrackingEntry struct {
	Date      string         `json:"date"`
	Status    TrackingStatus `json:"status"`
	FullName  string         `json:"full_name"`
	ModelCode string         `json:"model_code"`
	Price     *int64         `json:"price"`
}

// Row returns the entry in tracking sheet column order.
func (e TrackingEntry) Row() []any {
	return []any{e.Date, string(e.Status), e.FullName, e.ModelCode, PriceCell(e.Price)}
}
