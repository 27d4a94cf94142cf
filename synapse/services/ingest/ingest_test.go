package ingest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"synapse/synapse/utils/types"
)

func TestIngestPostsBatch(t *testing.T) {
	var raw map[string][]map[string]*string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/ingest" {
			t.Errorf("unexpected %s %s", r.Method, r.URL.Path)
		}
		json.NewDecoder(r.Body).Decode(&raw)
		w.Write([]byte(`{"status":"success","message":"1 products ingested"}`))
	}))
	defer srv.Close()

	name := "Lamp"
	msg, err := NewClient(srv.URL, srv.Client()).Ingest(context.Background(), []types.HarvestedProduct{{Name: &name}})
	if err != nil {
		t.Fatalf("Ingest: %v", err)
	}
	if msg != "1 products ingested" {
		t.Errorf("unexpected message %q", msg)
	}
	products := raw["products"]
	if len(products) != 1 {
		t.Fatalf("expected 1 product in body, got %d", len(products))
	}
	if v, ok := products[0]["image"]; !ok || v != nil {
		t.Errorf("missing image should be an explicit null")
	}
	if *products[0]["name"] != "Lamp" {
		t.Errorf("expected name Lamp")
	}
}

func TestIngestBadRequest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"status":"error","message":"No products found in request"}`))
	}))
	defer srv.Close()

	if _, err := NewClient(srv.URL, nil).Ingest(context.Background(), nil); err == nil {
		t.Fatal("expected error on 400")
	}
}
