// synapse/controllers/harvest.go
package controllers

import (
	"context"
	"fmt"
	"net/url"

	"synapse/synapse/services/harvester"
	"synapse/synapse/utils/types"
)

// HarvestController runs harvests on demand, for pages that never load the widget.
type HarvestController struct {
	harvester Harvester
}

func NewHarvestController(h Harvester) *HarvestController {
	return &HarvestController{harvester: h}
}

// ErrInvalidURL is returned for anything but an absolute http(s) URL.
type ErrInvalidURL struct {
	URL string
}

func (e *ErrInvalidURL) Error() string {
	return fmt.Sprintf("invalid page url %q", e.URL)
}

func (c *HarvestController) Harvest(ctx context.Context, req types.HarvestRequest) (types.HarvestReport, error) {
	u, err := url.Parse(req.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return types.HarvestReport{}, &ErrInvalidURL{URL: req.URL}
	}
	return c.harvester.Run(ctx, harvester.Page{URL: u.String()})
}
