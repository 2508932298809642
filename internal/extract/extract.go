// Package extract turns a parsed listing page into product records.
package extract

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/sells-group/listing-tracker/internal/model"
)

// Selectors for the listing markup. A product is a fixed-width, top-aligned
// table cell.
const (
	productSelector = "td[width='160'][valign='top']"
	nameSelector    = "a.a_table_list_txt"
	priceSelector   = "span.shopping_Price"
)

// Extract returns one record per product cell in doc, in document order.
// Relative links and image sources are resolved against base. A missing
// sub-element leaves the corresponding field empty.
func Extract(doc *goquery.Document, base *url.URL) []model.ProductRecord {
	var out []model.ProductRecord
	doc.Find(productSelector).Each(func(_ int, cell *goquery.Selection) {
		out = append(out, extractCell(cell, base))
	})
	return out
}

func extractCell(cell *goquery.Selection, base *url.URL) model.ProductRecord {
	var rec model.ProductRecord

	if shop := cell.Find("span").First(); shop.Length() > 0 {
		rec.Shop = strings.TrimSpace(shop.Text())
	}

	if a := cell.Find(nameSelector).First(); a.Length() > 0 {
		rec.FullName = joinedText(a)
		if href, ok := a.Attr("href"); ok {
			rec.URL = resolve(base, href)
		}
	}

	if img := cell.Find("img").First(); img.Length() > 0 {
		if src, ok := img.Attr("src"); ok {
			rec.ImageFormula = model.ImageFormula(resolve(base, src))
		}
	}

	if price := cell.Find(priceSelector).First(); price.Length() > 0 {
		rec.Price = model.ParsePrice(price.Text())
	}

	rec.BrandToken = model.BrandToken(rec.FullName)
	rec.ModelCode = model.ModelCode(rec.FullName)
	return rec
}

// HasNextPage reports whether doc links to result page page+1. listing is
// the file name of the listing endpoint, e.g. "products.asp".
func HasNextPage(doc *goquery.Document, listing string, page int) bool {
	needle := listing + "?page=" + strconv.Itoa(page+1)
	found := false
	doc.Find("a[href]").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		href, _ := a.Attr("href")
		if strings.Contains(href, needle) {
			found = true
			return false
		}
		return true
	})
	return found
}

// joinedText collects the text nodes under sel, trims each, drops empty
// ones and joins the rest with single spaces.
func joinedText(sel *goquery.Selection) string {
	var parts []string
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			if s := strings.TrimSpace(n.Data); s != "" {
				parts = append(parts, s)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range sel.Nodes {
		walk(n)
	}
	return strings.Join(parts, " ")
}

func resolve(base *url.URL, ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return ""
	}
	u, err := url.Parse(ref)
	if err != nil || base == nil {
		return ref
	}
	return base.ResolveReference(u).String()
}
