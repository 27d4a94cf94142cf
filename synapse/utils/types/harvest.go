package types

// HarvestedProduct is extracted from one product element of a host page.
// Every field is optional; a nil field is sent as JSON null.
type HarvestedProduct struct {
	ID    *string `json:"id"`
	Name  *string `json:"name"`
	Price *string `json:"price"`
	Image *string `json:"image"`
	URL   *string `json:"url"`
}

type IngestRequest struct {
	Products []HarvestedProduct `json:"products"`
}

type IngestResponse struct {
	Status  string `json:"status,omitempty"`
	Message string `json:"message"`
}

// HarvestRequest triggers a harvest of a page by URL.
type HarvestRequest struct {
	URL string `json:"url"`
}

type HarvestReport struct {
	RunID    string `json:"run_id"`
	URL      string `json:"url,omitempty"`
	Products int    `json:"products"`
	Message  string `json:"message"`
	Error    string `json:"error,omitempty"`
}
