package search

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	httputils "synapse/synapse/utils/http"
	"synapse/synapse/utils/types"
)

// ErrNoResults is returned for a 2xx response without a results list.
var ErrNoResults = errors.New("response has no results list")

// searchBody tells an absent or null results list apart from an empty one.
type searchBody struct {
	Results *[]types.SearchResult `json:"results"`
}

// Client queries the backend search endpoint.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient builds a Client for baseURL. A nil httpClient uses the default
// transport with no extra timeout.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), http: httpClient}
}

// Search runs GET {base}/api/search?q=<query>. The results list must be
// present; an empty list is a valid answer.
func (c *Client) Search(ctx context.Context, query string) ([]types.SearchResult, error) {
	endpoint := c.baseURL + "/api/search?" + url.Values{"q": {query}}.Encode()
	var resp searchBody
	if err := httputils.GetJSON(ctx, c.http, endpoint, &resp); err != nil {
		return nil, fmt.Errorf("search %q: %w", query, err)
	}
	if resp.Results == nil {
		return nil, fmt.Errorf("search %q: %w", query, ErrNoResults)
	}
	if *resp.Results == nil {
		return []types.SearchResult{}, nil
	}
	return *resp.Results, nil
}
