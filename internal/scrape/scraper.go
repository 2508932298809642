package scrape

import (
	"context"
	"net/url"
	"path"

	"github.com/PuerkitoBio/goquery"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/listing-tracker/internal/extract"
	"github.com/sells-group/listing-tracker/internal/model"
)

// PageSource fetches one parsed search result page.
type PageSource interface {
	Fetch(ctx context.Context, brand string, page int) (*goquery.Document, error)
}

// Result holds every record collected for a brand.
type Result struct {
	Records []model.ProductRecord
	Pages   int // pages that contributed records
}

// Scraper walks the result pages of a brand search until the listing stops
// linking to a next page.
type Scraper struct {
	source  PageSource
	assets  *url.URL
	listing string
}

// New creates a Scraper. assets is the base that relative product and image
// links resolve against; listing is the endpoint file name used to detect
// next-page links (see ListingName).
func New(source PageSource, assets *url.URL, listing string) *Scraper {
	return &Scraper{source: source, assets: assets, listing: listing}
}

// ListingName returns the file name of a listing endpoint URL, e.g.
// "products.asp" for https://www.egps.com.tw/products.asp.
func ListingName(endpoint string) (string, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return "", eris.Wrapf(err, "scrape: parse listing url %q", endpoint)
	}
	name := path.Base(u.Path)
	if name == "." || name == "/" {
		return "", eris.Errorf("scrape: listing url %q has no file name", endpoint)
	}
	return name, nil
}

// Scrape collects all records for brand. Termination relies only on the
// page contents: an empty page or a page without a next-page link ends the
// walk. Fetch errors abort the walk and are returned as is.
func (s *Scraper) Scrape(ctx context.Context, brand string) (*Result, error) {
	log := zap.L().With(zap.String("brand", brand))
	res := &Result{}

	for page := 1; ; page++ {
		doc, err := s.source.Fetch(ctx, brand, page)
		if err != nil {
			return nil, eris.Wrapf(err, "scrape: page %d", page)
		}

		records := extract.Extract(doc, s.assets)
		if len(records) == 0 {
			if page == 1 {
				log.Warn("no matching products")
			} else {
				log.Info("page has no products, stopping", zap.Int("page", page))
			}
			return res, nil
		}

		log.Info("scraped page", zap.Int("page", page), zap.Int("records", len(records)))
		res.Records = append(res.Records, records...)
		res.Pages = page

		if !extract.HasNextPage(doc, s.listing, page) {
			log.Info("reached last page",
				zap.Int("pages", res.Pages),
				zap.Int("records", len(res.Records)),
			)
			return res, nil
		}
	}
}
