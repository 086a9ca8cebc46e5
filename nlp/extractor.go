package nlp

import (
	"context"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/gocolly/colly"
)

const extractorUserAgent = "Mozilla/5.0 (compatible; newsdash/1.0)"

// CollyExtractor downloads an article page and keeps its headline and
// paragraph text. Paragraphs inside <article> win over the rest of the page.
type CollyExtractor struct {
	timeout time.Duration
}

func NewCollyExtractor(timeout time.Duration) *CollyExtractor {
	return &CollyExtractor{timeout: timeout}
}

func (e *CollyExtractor) Extract(ctx context.Context, url string) (Page, error) {
	page := Page{}
	var visitErr error

	// a collector refuses to revisit a url, so every extraction gets its own
	c := colly.NewCollector(colly.UserAgent(extractorUserAgent))
	c.SetRequestTimeout(e.timeout)

	c.OnRequest(func(r *colly.Request) {
		if ctx.Err() != nil {
			r.Abort()
		}
	})

	c.OnHTML("html", func(h *colly.HTMLElement) {
		page = parsePage(h.DOM)
	})

	c.OnError(func(r *colly.Response, err error) {
		visitErr = err
	})

	if err := c.Visit(url); err != nil {
		return Page{}, err
	}
	if visitErr != nil {
		return Page{}, visitErr
	}
	if err := ctx.Err(); err != nil {
		return Page{}, err
	}
	return page, nil
}

func parsePage(doc *goquery.Selection) Page {
	title := strings.TrimSpace(doc.Find("h1").First().Text())
	if title == "" {
		title = strings.TrimSpace(doc.Find("title").First().Text())
	}

	paragraphs := doc.Find("article p")
	if paragraphs.Length() == 0 {
		paragraphs = doc.Find("p")
	}
	texts := []string{}
	paragraphs.Each(func(_ int, s *goquery.Selection) {
		if text := strings.Join(strings.Fields(s.Text()), " "); text != "" {
			texts = append(texts, text)
		}
	})

	return Page{Title: title, Text: strings.Join(texts, "\n")}
}
