package views

import (
	"github.com/spf13/cast"

	"github.com/goliatone/go-catalog/pkg/model"
	"github.com/goliatone/go-catalog/pkg/record"
	"github.com/goliatone/go-catalog/pkg/render"
	"github.com/goliatone/go-catalog/pkg/sanitize"
)

// Flash is a one-shot notice rendered at the top of the next page.
type Flash struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}

// Link points at another catalog record.
type Link struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Path string `json:"path"`
}

// RelationGroup is one block of related records, labelled the way the edit
// form labels the matching selector. SchemeGroup marks groups the scheme page
// folds under its shared "related schemes" heading.
type RelationGroup struct {
	Field       string `json:"field"`
	Label       string `json:"label"`
	SchemeGroup bool   `json:"schemeGroup"`
	Entries     []Link `json:"entries"`
}

// RecordView is the display-ready projection of a record. Description HTML is
// sanitized here so templates can pipe it through the safe filter.
type RecordView struct {
	ID              string              `json:"id"`
	Series          string              `json:"series"`
	DocID           int                 `json:"docId"`
	Name            string              `json:"name"`
	DescriptionHTML string              `json:"descriptionHtml,omitempty"`
	Keywords        []string            `json:"keywords,omitempty"`
	DataTypes       []string            `json:"dataTypes,omitempty"`
	Locations       []record.Location   `json:"locations,omitempty"`
	Namespaces      []record.Namespace  `json:"namespaces,omitempty"`
	Identifiers     []record.Identifier `json:"identifiers,omitempty"`
	Samples         []record.Sample     `json:"samples,omitempty"`
	Creators        []record.Creator    `json:"creators,omitempty"`
	Issued          string              `json:"issued,omitempty"`
	ValidFrom       string              `json:"validFrom,omitempty"`
	ValidTo         string              `json:"validTo,omitempty"`
	Path            string              `json:"path"`
	EditPath        string              `json:"editPath"`
}

// NewRecordView projects a record for display. Keywords come out as the
// stored URIs; callers that can reach a thesaurus replace them with labels.
func NewRecordView(rec record.Record) RecordView {
	id := rec.ID()
	return RecordView{
		ID:              id.String(),
		Series:          string(rec.Series),
		DocID:           rec.DocID,
		Name:            rec.Name(),
		DescriptionHTML: sanitize.Description(rec.Description()),
		Keywords:        rec.Keywords(),
		DataTypes:       rec.DataTypes(),
		Locations:       rec.Locations(),
		Namespaces:      rec.Namespaces(),
		Identifiers:     rec.Identifiers(),
		Samples:         rec.Samples(),
		Creators:        rec.Creators(),
		Issued:          cast.ToString(rec.Get("issued")),
		ValidFrom:       cast.ToString(rec.Get("valid_from")),
		ValidTo:         cast.ToString(rec.Get("valid_to")),
		Path:            DisplayPath(id),
		EditPath:        EditPath(id),
	}
}

// DisplayData is the context for a display page.
type DisplayData struct {
	Authenticated     bool             `json:"authenticated"`
	Flashes           []Flash          `json:"flashes,omitempty"`
	Record            RecordView       `json:"record"`
	Versions          []record.Version `json:"versions,omitempty"`
	Relations         []RelationGroup  `json:"relations,omitempty"`
	HasRelatedSchemes bool             `json:"hasRelatedSchemes"`
}

// EditData is the context for an edit page. Values holds current field values
// keyed by field name, shaped the way the form decoder produces them.
type EditData struct {
	Authenticated bool                       `json:"authenticated"`
	Flashes       []Flash                    `json:"flashes,omitempty"`
	Form          model.FormModel            `json:"form"`
	PageTitle     string                     `json:"pageTitle"`
	Action        string                     `json:"action"`
	Method        string                     `json:"method"`
	Values        map[string]any             `json:"values"`
	Errors        map[string][]string        `json:"errors"`
	Hidden        map[string]string          `json:"hidden"`
	Choices       map[string][]render.Choice `json:"choices"`
	CancelPath    string                     `json:"cancelPath,omitempty"`
}

// HasErrors reports whether any field carries validation feedback.
func (d EditData) HasErrors() bool {
	for _, messages := range d.Errors {
		if len(messages) > 0 {
			return true
		}
	}
	return false
}
