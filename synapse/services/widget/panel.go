package widget

import "synapse/synapse/utils/types"

// Panel is the full state of the results dropdown. Each result set replaces
// it wholesale.
type Panel struct {
	Visible bool
	Empty   bool
	Rows    []Row
}

type Row struct {
	Name      string
	Price     string
	Image     string
	URL       string
	Navigable bool
}

// Hidden is the panel after a short query, a failed search or an outside click.
func Hidden() Panel {
	return Panel{}
}

// PanelFor renders a successful result set. An empty set shows the
// no-results placeholder.
func PanelFor(results []types.SearchResult) Panel {
	p := Panel{Visible: true, Empty: len(results) == 0}
	if p.Empty {
		return p
	}
	p.Rows = make([]Row, 0, len(results))
	for _, r := range results {
		row := Row{Name: r.Name, Price: r.Price, Image: r.Image}
		if r.URL != nil && *r.URL != "" {
			row.URL = *r.URL
			row.Navigable = true
		}
		p.Rows = append(p.Rows, row)
	}
	return p
}
