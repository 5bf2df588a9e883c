package render

// RenderOptions describe per-request data that renderers can use to customise
// their output without mutating the form model pipeline.
type RenderOptions struct {
	// Method overrides the HTTP method declared by the form model. Renderers
	// are responsible for translating unsupported verbs into browser-friendly
	// POST submissions when needed.
	Method string
	// Action overrides the form's submission URL, e.g. to target a specific
	// record id.
	Action string
	// Values pre-populates rendered controls using dotted field paths (e.g.
	// "locations.0.url"). Renderers decide how nested values map onto subform
	// rows.
	Values map[string]any
	// Errors surfaces server-side validation feedback keyed by field path.
	Errors map[string][]string
	// Hidden adds hidden inputs (CSRF tokens, serialized prior relations)
	// emitted alongside the visible fields. See the HiddenField helpers.
	Hidden map[string]string
	// Choices supplies options for relation selectors keyed by field name.
	Choices map[string][]Choice
}

// Choice is a selectable option for checkbox and select controls, pairing a
// stored value with its display label.
type Choice struct {
	Value    string `json:"value"`
	Label    string `json:"label"`
	Selected bool   `json:"selected"`
}
