// Package harvester pulls product records out of a rendered page and
// submits them to the ingest endpoint in one batch.
package harvester

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"synapse/synapse/config"
	"synapse/synapse/services/scraper"
	"synapse/synapse/utils/logging"
	"synapse/synapse/utils/types"
)

var ErrNoPage = errors.New("harvester: page has neither html nor url")

// Ingester receives the harvested batch.
type Ingester interface {
	Ingest(ctx context.Context, products []types.HarvestedProduct) (string, error)
}

// Page is what gets harvested: a DOM snapshot, or a URL to fetch when HTML
// is empty.
type Page struct {
	URL  string
	HTML string
}

type Harvester struct {
	schema   config.Schema
	fetcher  scraper.Fetcher
	ingester Ingester
}

// New returns a Harvester. fetcher may be nil when only snapshots are harvested.
func New(schema config.Schema, fetcher scraper.Fetcher, ingester Ingester) *Harvester {
	return &Harvester{schema: schema, fetcher: fetcher, ingester: ingester}
}

func (h *Harvester) Load(ctx context.Context, page Page) (*goquery.Document, error) {
	switch {
	case page.HTML != "":
		return scraper.ParseHTML(page.HTML, page.URL)
	case page.URL != "" && h.fetcher != nil:
		return h.fetcher.Fetch(ctx, page.URL)
	default:
		return nil, ErrNoPage
	}
}

// Extract returns one record per product element, in document order.
func (h *Harvester) Extract(doc *goquery.Document) []types.HarvestedProduct {
	products := []types.HarvestedProduct{}
	doc.Find(h.schema.Product).Each(func(_ int, el *goquery.Selection) {
		var p types.HarvestedProduct
		if id, ok := el.Attr(h.schema.IDAttr); ok {
			p.ID = &id
		}
		p.Name = h.text(el, h.schema.Name)
		p.Price = h.text(el, h.schema.Price)
		p.Image = h.link(el, h.schema.Image, "src", doc.Url)
		p.URL = h.link(el, h.schema.Link, "href", doc.Url)
		products = append(products, p)
	})
	return products
}

// Run harvests page and submits the batch. A page without products is not
// an error: nothing is sent.
func (h *Harvester) Run(ctx context.Context, page Page) (types.HarvestReport, error) {
	report := types.HarvestReport{RunID: uuid.NewString(), URL: page.URL}
	ctx = logging.WithTraceID(ctx, report.RunID)
	defer logging.LogDuration(ctx, "Harvester.Run")()
	log := logging.AppLogger.With(zap.String("run_id", report.RunID), zap.String("url", page.URL))

	doc, err := h.Load(ctx, page)
	if err != nil {
		return h.fail(report, err, "harvest load failed")
	}

	products := h.Extract(doc)
	report.Products = len(products)
	if len(products) == 0 {
		log.Info("no product elements on page", zap.String("selector", h.schema.Product))
		report.Message = "no products found"
		return report, nil
	}

	log.Info("submitting harvested products", zap.Int("count", len(products)))
	msg, err := h.ingester.Ingest(ctx, products)
	if err != nil {
		return h.fail(report, err, "ingest failed")
	}
	report.Message = msg
	log.Info("ingest complete", zap.String("message", msg))
	return report, nil
}

func (h *Harvester) fail(report types.HarvestReport, err error, msg string) (types.HarvestReport, error) {
	logging.ErrorLogger.Error(msg, zap.String("run_id", report.RunID), zap.String("url", report.URL), zap.Error(err))
	report.Error = err.Error()
	return report, err
}

// text mirrors innerText: whitespace collapsed and trimmed. A missing
// sub-element yields nil, an empty one yields "".
func (h *Harvester) text(el *goquery.Selection, selector string) *string {
	if selector == "" {
		return nil
	}
	sub := el.Find(selector).First()
	if sub.Length() == 0 {
		return nil
	}
	s := strings.Join(strings.Fields(sub.Text()), " ")
	return &s
}

// link reads attr from the first match and resolves it against the page URL
// the way img.src and a.href do in a browser.
func (h *Harvester) link(el *goquery.Selection, selector, attr string, base *url.URL) *string {
	if selector == "" {
		return nil
	}
	sub := el.Find(selector).First()
	if sub.Length() == 0 {
		return nil
	}
	raw, ok := sub.Attr(attr)
	if !ok {
		empty := ""
		return &empty
	}
	raw = strings.TrimSpace(raw)
	if base != nil {
		if u, err := base.Parse(raw); err == nil {
			abs := u.String()
			return &abs
		}
	}
	return &raw
}
