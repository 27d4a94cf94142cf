package widget

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"sync"

	"synapse/synapse/utils/color"
)

const NoResultsText = "No se encontraron resultados."

var panelTmpl = template.Must(template.New("panel").Parse(
	`{{if .Empty}}<p style="padding: 15px; text-align: center; color: #888;">{{.NoResults}}</p>` +
		`{{else}}{{range .Rows}}<div class="synapse-result"{{if .Navigable}} data-url="{{.URL}}"{{end}} style="padding: 10px; border-bottom: 1px solid #eee; display: flex; align-items: center; cursor: pointer;">` +
		`<img src="{{.Image}}" style="width: 50px; height: 50px; margin-right: 10px; object-fit: cover;">` +
		`<div><strong>{{.Name}}</strong><br><span style="color: #555;">{{.Price}}</span></div></div>` +
		`{{end}}{{end}}`))

// RenderHTML renders the panel body. A hidden panel renders as "".
func RenderHTML(p Panel) (string, error) {
	if !p.Visible {
		return "", nil
	}
	var buf bytes.Buffer
	err := panelTmpl.Execute(&buf, struct {
		Panel
		NoResults string
	}{p, NoResultsText})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}

// TerminalRenderer prints each panel state as a block of lines.
type TerminalRenderer struct {
	mu sync.Mutex
	w  io.Writer
}

func NewTerminalRenderer(w io.Writer) *TerminalRenderer {
	return &TerminalRenderer{w: w}
}

func (t *TerminalRenderer) Render(p Panel) {
	t.mu.Lock()
	defer t.mu.Unlock()
	switch {
	case !p.Visible:
		fmt.Fprintln(t.w, color.ColorMuted("(results hidden)"))
	case p.Empty:
		fmt.Fprintln(t.w, color.ColorMuted(NoResultsText))
	default:
		for _, r := range p.Rows {
			line := fmt.Sprintf("  %s  %s", color.ColorName(r.Name), color.ColorPrice(r.Price))
			if r.Navigable {
				line += "  " + color.ColorLink(r.URL)
			}
			fmt.Fprintln(t.w, line)
		}
	}
}
