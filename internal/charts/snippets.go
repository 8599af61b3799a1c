// Package charts renders the gauge and time-series visuals used by the
// widget fragments: ECharts option snippets for interactive contexts and
// PNG sparklines for no-JS and cached-image contexts.
package charts

// Snippet is a self-contained chart fragment: a target div plus the init
// script carrying the option JSON.
type Snippet struct {
	ID     string
	Title  string
	Div    string
	Script string
	HTML   string
}
