package dashboard

import (
	"embed"
	"html/template"
	"io"
	"time"

	"airwatch/backend/services/dashboard-service/internal/reading"
)

// Title is shown in the browser tab and as the page heading.
const Title = "Air Quality Monitoring System"

//go:embed templates/dashboard.html.tmpl
var templatesFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templatesFS, "templates/dashboard.html.tmpl"))

// slot binds a field to a card color. Rows never change at runtime.
type slot struct {
	field reading.Field
	color string
}

var layout = [][]slot{
	{{reading.Temperature, "primary"}, {reading.Pressure, "success"}, {reading.Humidity, "info"}},
	{{reading.VOCs, "warning"}, {reading.Altitude, "danger"}},
	{{reading.MQ7CO, "secondary"}, {reading.MQ135CO, "dark"}, {reading.CO2, "primary"}},
	{{reading.Alcohol, "success"}, {reading.Toluene, "info"}, {reading.NH4, "warning"}, {reading.Acetone, "danger"}},
}

// Card is one rendered slot.
type Card struct {
	ID    string
	Label string
	Value string
	Color string
}

type pageData struct {
	Title         string
	Rows          [][]Card
	Tick          uint64
	RefreshMillis int64
}

// Page renders the full dashboard document.
type Page struct {
	refresh time.Duration
}

// NewPage builds a page whose polling fallback uses the refresh period.
func NewPage(refresh time.Duration) *Page {
	return &Page{refresh: refresh}
}

// Rows returns the cards for snap grouped into the static rows.
func Rows(snap Snapshot) [][]Card {
	rows := make([][]Card, len(layout))
	for i, row := range layout {
		cards := make([]Card, len(row))
		for j, s := range row {
			spec := s.field.Spec()
			cards[j] = Card{
				ID:    spec.ID,
				Label: spec.Label(),
				Value: snap.Values[spec.ID],
				Color: s.color,
			}
		}
		rows[i] = cards
	}
	return rows
}

// Render writes the HTML for snap to w.
func (p *Page) Render(w io.Writer, snap Snapshot) error {
	return pageTemplate.Execute(w, pageData{
		Title:         Title,
		Rows:          Rows(snap),
		Tick:          snap.Tick,
		RefreshMillis: p.refresh.Milliseconds(),
	})
}
