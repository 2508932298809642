package model

import (
	"regexp"
	"strconv"
	"strings"
)

// ProductRecord is one product cell scraped from a listing page.
type ProductRecord struct {
	Shop         string `json:"shop"`
	BrandToken   string `json:"brand_token"`
	ModelCode    string `json:"model_code"`
	FullName     string `json:"full_name"`
	Price        *int64 `json:"price"` // nil when the listing shows no digits
	URL          string `json:"url"`
	ImageFormula string `json:"image_formula"`
}

var (
	modelCodeRe = regexp.MustCompile(`\d{5,6}[A-Z]{0,4}`)
	nonDigitRe  = regexp.MustCompile(`[^\d]`)
)

// ModelCode returns the first 5-6 digit run (plus up to four trailing
// uppercase letters) found in name, or "" when there is none.
func ModelCode(name string) string {
	return modelCodeRe.FindString(name)
}

// BrandToken returns the first whitespace-delimited word of name.
func BrandToken(name string) string {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// ParsePrice keeps only the digits of text. It returns nil when no digit is
// present so that an unpriced listing is distinguishable from a zero price.
func ParsePrice(text string) *int64 {
	digits := nonDigitRe.ReplaceAllString(text, "")
	if digits == "" {
		return nil
	}
	v, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		// More digits than int64 holds; treat like an unreadable price.
		return nil
	}
	return &v
}

// FormatPrice renders p for display; nil becomes "".
func FormatPrice(p *int64) string {
	if p == nil {
		return ""
	}
	return strconv.FormatInt(*p, 10)
}

// PriceCell returns the value to store in a spreadsheet price cell.
func PriceCell(p *int64) any {
	if p == nil {
		return ""
	}
	return *p
}

// ImageFormula renders an image URL as a spreadsheet IMAGE() formula
// sized 80x80. An empty URL yields "".
func ImageFormula(imageURL string) string {
	if imageURL == "" {
		return ""
	}
	return `=IMAGE("` + imageURL + `", 4, 80, 80)`
}

// Row returns the record in daily snapshot column order.
func (r ProductRecord) Row() []any {
	return []any{
		r.Shop,
		r.BrandToken,
		r.ModelCode,
		r.FullName,
		PriceCell(r.Price),
		r.URL,
		r.ImageFormula,
	}
}
