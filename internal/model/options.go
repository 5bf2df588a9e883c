package model

// Options tunes the Builder. Zero fields fall back to defaults, so the public
// adapter in pkg/model can pass a partially filled value.
type Options struct {
	Labeler func(string) string
}

func (o Options) labeler() func(string) string {
	if o.Labeler != nil {
		return o.Labeler
	}
	return DefaultLabeler
}
