package fetcher

import (
	"bytes"
	"context"
	"strconv"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/time/rate"
)

// PageOptions configures the listing page fetcher.
type PageOptions struct {
	BaseURL           string        // listing endpoint, e.g. https://www.egps.com.tw/products.asp
	UserAgent         string        // default "Mozilla/5.0"
	Encoding          string        // WHATWG encoding label, default "big5"
	Timeout           time.Duration // default 30s
	RequestsPerSecond float64       // 0 disables pacing
}

// PageFetcher retrieves one search result page per call. It never retries:
// transport failures and error statuses are returned to the caller.
type PageFetcher struct {
	client  *resty.Client
	opts    PageOptions
	enc     encoding.Encoding
	limiter *rate.Limiter
}

// NewPageFetcher creates a PageFetcher with the given options.
func NewPageFetcher(opts PageOptions) (*PageFetcher, error) {
	if opts.BaseURL == "" {
		return nil, eris.New("fetcher: base url is required")
	}
	if opts.UserAgent == "" {
		opts.UserAgent = "Mozilla/5.0"
	}
	if opts.Encoding == "" {
		opts.Encoding = "big5"
	}
	if opts.Timeout == 0 {
		opts.Timeout = 30 * time.Second
	}

	enc, err := htmlindex.Get(opts.Encoding)
	if err != nil {
		return nil, eris.Wrapf(err, "fetcher: unsupported encoding %q", opts.Encoding)
	}

	client := resty.New()
	client.SetHeader("User-Agent", opts.UserAgent)
	client.SetTimeout(opts.Timeout)

	f := &PageFetcher{client: client, opts: opts, enc: enc}
	if opts.RequestsPerSecond > 0 {
		f.limiter = rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), 1)
	}
	return f, nil
}

// SearchParams returns the search parameters for a brand and page number.
func SearchParams(brand string, page int) map[string]string {
	return map[string]string{
		"type": "search",
		"t1":   brand,
		"t2":   "",
		"t3":   "",
		"page": strconv.Itoa(page),
	}
}

// Fetch retrieves result page number page (1-based) for brand. The first
// page is requested with a form POST, later pages with a query-string GET.
func (f *PageFetcher) Fetch(ctx context.Context, brand string, page int) (*goquery.Document, error) {
	if page < 1 {
		return nil, eris.Errorf("fetcher: invalid page %d", page)
	}
	if f.limiter != nil {
		if err := f.limiter.Wait(ctx); err != nil {
			return nil, eris.Wrap(err, "fetcher: rate limiter wait")
		}
	}

	params := SearchParams(brand, page)
	req := f.client.R().SetContext(ctx)

	var (
		resp *resty.Response
		err  error
	)
	if page == 1 {
		resp, err = req.SetFormData(params).Post(f.opts.BaseURL)
	} else {
		resp, err = req.SetQueryParams(params).Get(f.opts.BaseURL)
	}
	if err != nil {
		return nil, eris.Wrapf(err, "fetcher: request page %d", page)
	}
	if resp.IsError() {
		return nil, eris.Errorf("fetcher: page %d: unexpected status %d", page, resp.StatusCode())
	}

	zap.L().Debug("fetched listing page",
		zap.String("brand", brand),
		zap.Int("page", page),
		zap.Int("bytes", len(resp.Body())),
		zap.Duration("elapsed", resp.Time()),
	)

	return f.parse(resp.Body())
}

func (f *PageFetcher) parse(body []byte) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(f.enc.NewDecoder().Reader(bytes.NewReader(body)))
	if err != nil {
		return nil, eris.Wrap(err, "fetcher: parse html")
	}
	return doc, nil
}
