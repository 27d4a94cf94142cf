package controllers

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"synapse/synapse/services/harvester"
	"synapse/synapse/services/widget"
	"synapse/synapse/utils/types"
)

type countingHarvester struct {
	mu    sync.Mutex
	pages []harvester.Page
}

func (h *countingHarvester) Run(ctx context.Context, page harvester.Page) (types.HarvestReport, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.pages = append(h.pages, page)
	return types.HarvestReport{Products: 1}, nil
}

type staticSearcher struct{}

func (staticSearcher) Search(ctx context.Context, q string) ([]types.SearchResult, error) {
	return []types.SearchResult{{Name: q}}, nil
}

type chanRenderer chan widget.Panel

func (c chanRenderer) Render(p widget.Panel) { c <- p }

func TestSessionHarvestsOnce(t *testing.T) {
	h := &countingHarvester{}
	ctrl := NewWidgetController(staticSearcher{}, h, widget.Options{MinQueryLength: 2, Debounce: 10 * time.Millisecond})
	s := ctrl.NewSession(context.Background(), make(chanRenderer, 8))
	defer s.Close()

	load := types.ClientMessage{Type: types.MessageLoad, URL: "https://shop.example", HTML: "<div></div>"}
	s.Handle(context.Background(), load)
	s.Handle(context.Background(), load)

	select {
	case <-s.HarvestDone():
	case <-time.After(time.Second):
		t.Fatal("harvest did not finish")
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.pages) != 1 {
		t.Fatalf("expected one harvest per session, got %d", len(h.pages))
	}
	if h.pages[0].HTML != "<div></div>" {
		t.Errorf("snapshot not forwarded: %+v", h.pages[0])
	}
}

func TestSessionRoutesInputAndClicks(t *testing.T) {
	r := make(chanRenderer, 8)
	ctrl := NewWidgetController(staticSearcher{}, nil, widget.Options{MinQueryLength: 2, Debounce: 10 * time.Millisecond})
	s := ctrl.NewSession(context.Background(), r)
	defer s.Close()

	s.Handle(context.Background(), types.ClientMessage{Type: types.MessageInput, Value: "mug"})
	select {
	case p := <-r:
		if !p.Visible || len(p.Rows) != 1 || p.Rows[0].Name != "mug" {
			t.Fatalf("unexpected panel %+v", p)
		}
	case <-time.After(time.Second):
		t.Fatal("no render after input")
	}

	s.Handle(context.Background(), types.ClientMessage{Type: types.MessageClickOutside})
	if p := <-r; p.Visible {
		t.Fatal("click outside should hide the panel")
	}
	if s.Bar().Panel().Visible {
		t.Fatal("bar state should be hidden")
	}
}

type fakeRunHarvester struct {
	got harvester.Page
}

func (f *fakeRunHarvester) Run(ctx context.Context, page harvester.Page) (types.HarvestReport, error) {
	f.got = page
	return types.HarvestReport{URL: page.URL, Products: 2, Message: "2 products ingested"}, nil
}

func TestHarvestControllerValidatesURL(t *testing.T) {
	f := &fakeRunHarvester{}
	ctrl := NewHarvestController(f)

	for _, bad := range []string{"", "ftp://x", "/relative", "http://"} {
		_, err := ctrl.Harvest(context.Background(), types.HarvestRequest{URL: bad})
		var invalid *ErrInvalidURL
		if !errors.As(err, &invalid) {
			t.Errorf("%q: expected ErrInvalidURL, got %v", bad, err)
		}
	}

	report, err := ctrl.Harvest(context.Background(), types.HarvestRequest{URL: "https://shop.example/list"})
	if err != nil {
		t.Fatalf("Harvest: %v", err)
	}
	if f.got.URL != "https://shop.example/list" || report.Products != 2 {
		t.Fatalf("unexpected run %+v / %+v", f.got, report)
	}
}
