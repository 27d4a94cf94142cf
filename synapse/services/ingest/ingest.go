package ingest

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	httputils "synapse/synapse/utils/http"
	"synapse/synapse/utils/types"
)

// Client submits harvested products to the backend ingest endpoint.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), http: httpClient}
}

// Ingest posts the whole batch in one request and returns the backend's
// confirmation message.
func (c *Client) Ingest(ctx context.Context, products []types.HarvestedProduct) (string, error) {
	var resp types.IngestResponse
	body := types.IngestRequest{Products: products}
	if err := httputils.PostJSON(ctx, c.http, c.baseURL+"/api/ingest", body, &resp); err != nil {
		return "", fmt.Errorf("ingest %d products: %w", len(products), err)
	}
	return resp.Message, nil
}
