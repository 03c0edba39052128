// Package pagemeta extracts display metadata (title, favicon) from a page
// so records created without them can still render nicely in the companion
// UI. Everything here is best-effort: callers treat failures as "no
// metadata", never as an error of their own operation.
package pagemeta

import (
	"bytes"
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/devbrowser/backend/internal/webclient"
)

// Meta is page metadata scraped from an HTML document.
type Meta struct {
	Title   string
	Favicon string
}

// faviconSelectors are tried in order; the first matching href wins.
var faviconSelectors = []string{
	`link[rel="icon"]`,
	`link[rel="shortcut icon"]`,
	`link[rel="apple-touch-icon"]`,
}

// Fetch GETs pageURL through wc and extracts its metadata.
func Fetch(ctx context.Context, wc webclient.WebClient, pageURL string) (Meta, error) {
	resp, err := wc.Do(ctx, &webclient.Request{Method: http.MethodGet, URL: pageURL})
	if err != nil {
		return Meta{}, err
	}

	base, err := url.Parse(pageURL)
	if err != nil {
		base = nil
	}
	return Extract(resp.Body, base), nil
}

// Extract parses HTML and pulls the document title and favicon link.
// Relative favicon hrefs are resolved against base; when the document
// declares no icon but base has a host, the conventional /favicon.ico
// location is assumed.
func Extract(body []byte, base *url.URL) Meta {
	var meta Meta

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return meta
	}

	meta.Title = strings.TrimSpace(doc.Find("title").First().Text())

	for _, sel := range faviconSelectors {
		href, ok := doc.Find(sel).First().Attr("href")
		if !ok || strings.TrimSpace(href) == "" {
			continue
		}
		meta.Favicon = resolveRef(base, strings.TrimSpace(href))
		break
	}

	if meta.Favicon == "" && base != nil && base.Host != "" {
		meta.Favicon = base.Scheme + "://" + base.Host + "/favicon.ico"
	}

	return meta
}

func resolveRef(base *url.URL, href string) string {
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	if base == nil {
		return ref.String()
	}
	return base.ResolveReference(ref).String()
}
