package forms

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"go.uber.org/zap"

	"github.com/goliatone/go-catalog/pkg/model"
	"github.com/goliatone/go-catalog/pkg/record"
	"github.com/goliatone/go-catalog/pkg/relation"
	"github.com/goliatone/go-catalog/pkg/sanitize"
	"github.com/goliatone/go-catalog/pkg/vocab"
)

// Store persists records. internal/store satisfies this.
type Store interface {
	Load(ctx context.Context, series record.Series, docID int) (record.Record, error)
	Save(ctx context.Context, rec *record.Record) error
}

// Pipeline processes edit form submissions end to end.
type Pipeline struct {
	store  Store
	graph  relation.Graph
	vocab  *vocab.Thesaurus
	logger *zap.Logger
}

// NewPipeline wires a submission pipeline. The thesaurus and logger are
// optional; a nil thesaurus disables keyword resolution.
func NewPipeline(store Store, graph relation.Graph, thesaurus *vocab.Thesaurus, logger *zap.Logger) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{store: store, graph: graph, vocab: thesaurus, logger: logger}
}

// Result reports the outcome of a processed submission.
type Result struct {
	ID      record.ID
	Created bool
}

// Process validates and stores a submission for the given series. A docID of
// zero creates a new record. Validation failures return a non-empty Errors
// map with a zero Result and nil error; infrastructure failures return an
// error.
func (p *Pipeline) Process(ctx context.Context, form model.FormModel, series record.Series, docID int, values url.Values) (Result, Errors, error) {
	fields := Decode(values, form)

	errs := Validate(form, fields)
	p.resolveKeywords(form, fields, errs)
	if !errs.Empty() {
		return Result{}, errs, nil
	}

	p.sanitizeDescriptions(form, fields)
	injectLocationTypes(series, fields)

	selections := splitRelations(form, series, fields)

	rec := record.New(series)
	rec.DocID = docID
	created := docID == 0
	if !created {
		if _, err := p.store.Load(ctx, series, docID); err != nil {
			return Result{}, nil, fmt.Errorf("forms: load %s%d: %w", series, docID, err)
		}
	}
	rec.Fields = record.Cleanup(fields)

	if err := p.store.Save(ctx, &rec); err != nil {
		return Result{}, nil, fmt.Errorf("forms: save record: %w", err)
	}

	if err := p.applyRelations(ctx, rec.ID(), series, selections, values); err != nil {
		return Result{}, nil, err
	}

	p.logger.Info("record saved",
		zap.String("id", rec.ID().String()),
		zap.Bool("created", created))

	return Result{ID: rec.ID(), Created: created}, nil, nil
}

// resolveKeywords replaces submitted keyword labels with concept URIs.
// Unknown terms become validation errors so typos are not stored silently.
func (p *Pipeline) resolveKeywords(form model.FormModel, fields map[string]any, errs Errors) {
	if p.vocab == nil {
		return
	}
	for _, field := range form.Fields {
		if field.Vocab == "" {
			continue
		}
		raw, ok := fields[field.Name]
		if !ok {
			continue
		}
		var resolved []string
		for i, item := range toSlice(raw) {
			label, _ := item.(string)
			if label == "" {
				continue
			}
			if p.vocab.Contains(label) {
				// Already a concept URI.
				resolved = append(resolved, label)
				continue
			}
			uri := p.vocab.URI(label)
			if uri == "" {
				errs.Add(fmt.Sprintf("%s.%d", field.Name, i), fmt.Sprintf("%q is not a recognised subject term.", label))
				continue
			}
			resolved = append(resolved, uri)
		}
		if len(resolved) > 0 {
			fields[field.Name] = resolved
		} else {
			delete(fields, field.Name)
		}
	}
}

// sanitizeDescriptions cleans rich-text fields before storage.
func (p *Pipeline) sanitizeDescriptions(form model.FormModel, fields map[string]any) {
	for _, field := range form.Fields {
		if field.Widget != model.WidgetTextarea {
			continue
		}
		if raw, ok := fields[field.Name].(string); ok {
			cleaned := sanitize.Description(raw)
			if cleaned == "" {
				delete(fields, field.Name)
			} else {
				fields[field.Name] = cleaned
			}
		}
	}
}

// injectLocationTypes fills the location type for series whose form only
// permits one kind of location.
func injectLocationTypes(series record.Series, fields map[string]any) {
	if series != record.SeriesEndorsement {
		return
	}
	rows, ok := fields["locations"].([]any)
	if !ok {
		return
	}
	for _, raw := range rows {
		row, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		if _, ok := row["type"]; !ok {
			row["type"] = "document"
		}
	}
}

// splitRelations removes relation selector values from the record body and
// returns them keyed by binding field name. A selector that appears in the
// form but arrives empty still yields an entry: unchecking every box clears
// the stored statements.
func splitRelations(form model.FormModel, series record.Series, fields map[string]any) map[string][]string {
	selections := make(map[string][]string)
	for _, binding := range relation.Bindings(series) {
		if form.Field(binding.Field) == nil {
			continue
		}
		raw := fields[binding.Field]
		delete(fields, binding.Field)
		var ids []string
		for _, item := range toSlice(raw) {
			if id, ok := item.(string); ok && id != "" {
				ids = append(ids, id)
			}
		}
		selections[binding.Field] = ids
	}
	return selections
}

// applyRelations diffs the submitted selections against the prior state and
// writes the changes to the graph. The prior state comes from the
// old_relations hidden field when present, otherwise from the graph itself.
func (p *Pipeline) applyRelations(ctx context.Context, self record.ID, series record.Series, selections map[string][]string, values url.Values) error {
	if p.graph == nil || len(selections) == 0 {
		return nil
	}

	previous := parseOldRelations(values.Get("old_relations"))
	id := self.String()

	var add, remove []relation.Triple
	for _, binding := range relation.Bindings(series) {
		submitted, ok := selections[binding.Field]
		if !ok {
			continue
		}
		old, known := previous[binding.Field]
		if !known {
			current, err := relation.Related(ctx, p.graph, self, binding)
			if err != nil {
				return fmt.Errorf("forms: read relations for %s: %w", id, err)
			}
			old = current
		}
		toAdd, toRemove := relation.Diff(id, binding, old, submitted)
		add = append(add, toAdd...)
		remove = append(remove, toRemove...)
	}

	if len(remove) > 0 {
		if _, err := p.graph.Remove(ctx, remove); err != nil {
			return fmt.Errorf("forms: remove relations: %w", err)
		}
	}
	if len(add) > 0 {
		if err := p.graph.Add(ctx, add); err != nil {
			return fmt.Errorf("forms: add relations: %w", err)
		}
	}
	return nil
}

// parseOldRelations decodes the hidden field serialising the relation state
// the form was rendered with. Malformed payloads are ignored so a tampered
// field degrades to reading the graph.
func parseOldRelations(raw string) map[string][]string {
	if raw == "" {
		return nil
	}
	var previous map[string][]string
	if err := json.Unmarshal([]byte(raw), &previous); err != nil {
		return nil
	}
	return previous
}

// OldRelationsValue serialises the current relation state for embedding as a
// hidden form field, pairing with parseOldRelations on submission.
func OldRelationsValue(ctx context.Context, graph relation.Graph, self record.ID, series record.Series) (string, error) {
	if graph == nil {
		return "", nil
	}
	state := make(map[string][]string)
	for _, binding := range relation.Bindings(series) {
		related, err := relation.Related(ctx, graph, self, binding)
		if err != nil {
			return "", fmt.Errorf("forms: read relations for %s: %w", self, err)
		}
		if len(related) > 0 {
			state[binding.Field] = related
		}
	}
	if len(state) == 0 {
		return "", nil
	}
	payload, err := json.Marshal(state)
	if err != nil {
		return "", fmt.Errorf("forms: serialise relations: %w", err)
	}
	return string(payload), nil
}
