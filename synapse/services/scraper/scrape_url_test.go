package scraper

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	httputils "synapse/synapse/utils/http"
)

func TestHTTPFetcherSetsDocumentURL(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/old", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/shop/list", http.StatusFound)
	})
	mux.HandleFunc("/shop/list", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("User-Agent") == "" {
			t.Errorf("expected a user agent")
		}
		w.Write([]byte(`<html><body><div class="product">x</div></body></html>`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	doc, err := NewHTTPFetcher(srv.Client()).Fetch(context.Background(), srv.URL+"/old")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if doc.Url == nil || doc.Url.Path != "/shop/list" {
		t.Fatalf("expected final url after redirect, got %v", doc.Url)
	}
	if n := doc.Find(".product").Length(); n != 1 {
		t.Errorf("expected 1 product, got %d", n)
	}
}

func TestHTTPFetcherStatusError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	_, err := NewHTTPFetcher(nil).Fetch(context.Background(), srv.URL)
	var se *httputils.StatusError
	if !errors.As(err, &se) || se.Code != http.StatusNotFound {
		t.Fatalf("expected 404 StatusError, got %v", err)
	}
}

func TestParseHTMLSnapshot(t *testing.T) {
	doc, err := ParseHTML(`<div class="product" data-product-id="7"></div>`, "https://shop.example/a/b")
	if err != nil {
		t.Fatalf("ParseHTML: %v", err)
	}
	if doc.Url.Host != "shop.example" {
		t.Errorf("expected host shop.example, got %q", doc.Url.Host)
	}
	if id, _ := doc.Find(".product").Attr("data-product-id"); id != "7" {
		t.Errorf("expected id 7, got %q", id)
	}
}

func TestNewFetcherKinds(t *testing.T) {
	f, closeFn, err := NewFetcher("http", nil)
	if err != nil {
		t.Fatalf("NewFetcher(http): %v", err)
	}
	defer closeFn()
	if _, ok := f.(*HTTPFetcher); !ok {
		t.Fatalf("expected *HTTPFetcher, got %T", f)
	}
	if _, _, err := NewFetcher("carrier-pigeon", nil); err == nil {
		t.Fatal("expected error for unknown fetcher")
	}
}
