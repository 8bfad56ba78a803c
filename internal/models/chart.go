package models

// Figure is a Plotly figure: the page hands it straight to Plotly.newPlot.
type Figure struct {
	Data   []Trace `json:"data"`
	Layout Layout  `json:"layout"`
}

type Trace map[string]any

type Layout map[string]any
