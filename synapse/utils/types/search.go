package types

// SearchResult is one hit returned by the backend search endpoint.
type SearchResult struct {
	Name  string  `json:"name"`
	Price string  `json:"price"`
	Image string  `json:"image"`
	URL   *string `json:"url"`
}

type SearchResponse struct {
	Query   string         `json:"query,omitempty"`
	Results []SearchResult `json:"results"`
}
