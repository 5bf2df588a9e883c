package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/goliatone/go-catalog/internal/store"
	"github.com/goliatone/go-catalog/pkg/record"
	"github.com/goliatone/go-catalog/pkg/relation"
	"github.com/goliatone/go-catalog/pkg/renderers/views"
)

// inverseLabels name the relation groups that only exist on display pages;
// forward selectors take their labels from the edit form fields.
var inverseLabels = map[string]string{
	"child_schemes":        "Child schemes",
	"input_to_mappings":    "Mappings from this scheme",
	"output_from_mappings": "Mappings to this scheme",
	"tools":                "Tools",
	"endorsements":         "Endorsements",
}

func (s *Server) handleDisplay(w http.ResponseWriter, r *http.Request) {
	id, err := parseItem(chi.URLParam(r, "id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}
	rec, err := s.store.Load(r.Context(), id.Series, id.DocID)
	if errors.Is(err, store.ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		s.serverError(w, err)
		return
	}

	data, err := s.displayData(r.Context(), rec, s.sessions.authenticated(r))
	if err != nil {
		s.serverError(w, err)
		return
	}
	data.Flashes = s.sessions.popFlashes(r)

	body, err := s.views.RenderDisplay(r.Context(), data)
	if err != nil {
		s.serverError(w, err)
		return
	}
	s.writeHTML(w, http.StatusOK, body)
}

// DisplayPage loads a record by its bare catalog id, e.g. "m13", and renders
// its display page without session state, for previews outside an HTTP
// request.
func (s *Server) DisplayPage(ctx context.Context, rawID string) ([]byte, error) {
	id, err := parseItem(rawID)
	if err != nil {
		return nil, err
	}
	rec, err := s.store.Load(ctx, id.Series, id.DocID)
	if err != nil {
		return nil, err
	}
	data, err := s.displayData(ctx, rec, false)
	if err != nil {
		return nil, err
	}
	return s.views.RenderDisplay(ctx, data)
}

// displayData assembles the full display context for a loaded record.
func (s *Server) displayData(ctx context.Context, rec record.Record, authenticated bool) (views.DisplayData, error) {
	view := views.NewRecordView(rec)
	view.Keywords = s.keywordLabels(rec.Keywords())
	view.DataTypes = s.datatypeLabels(ctx, rec.DataTypes())

	relations, hasRelatedSchemes, err := s.relationGroups(ctx, rec)
	if err != nil {
		return views.DisplayData{}, err
	}

	return views.DisplayData{
		Authenticated:     authenticated,
		Record:            view,
		Versions:          rec.Versions(),
		Relations:         relations,
		HasRelatedSchemes: hasRelatedSchemes,
	}, nil
}

// keywordLabels translates stored concept URIs into display labels. Unknown
// values pass through unchanged so older records stay readable.
func (s *Server) keywordLabels(uris []string) []string {
	if s.vocab == nil || len(uris) == 0 {
		return uris
	}
	labels := make([]string, 0, len(uris))
	for _, uri := range uris {
		if label := s.vocab.Label(uri); label != "" {
			labels = append(labels, label)
			continue
		}
		labels = append(labels, uri)
	}
	return labels
}

// datatypeLabels translates stored data-type record ids into their labels.
func (s *Server) datatypeLabels(ctx context.Context, ids []string) []string {
	if len(ids) == 0 {
		return ids
	}
	labels := make([]string, 0, len(ids))
	for _, id := range ids {
		rec, err := s.store.LoadID(ctx, id)
		if err != nil {
			labels = append(labels, id)
			continue
		}
		labels = append(labels, rec.Name())
	}
	return labels
}

// relationGroups resolves every binding of the record's series into a list of
// linked records. Empty groups are dropped.
func (s *Server) relationGroups(ctx context.Context, rec record.Record) ([]views.RelationGroup, bool, error) {
	var groups []views.RelationGroup
	hasRelatedSchemes := false
	for _, binding := range relation.Bindings(rec.Series) {
		ids, err := relation.Related(ctx, s.store, rec.ID(), binding)
		if err != nil {
			return nil, false, err
		}
		if len(ids) == 0 {
			continue
		}
		record.SortIDs(ids)
		entries := make([]views.Link, 0, len(ids))
		for _, id := range ids {
			related, err := s.store.LoadID(ctx, id)
			if errors.Is(err, store.ErrNotFound) {
				continue
			}
			if err != nil {
				return nil, false, err
			}
			entries = append(entries, views.Link{
				ID:   id,
				Name: related.Name(),
				Path: views.DisplayPath(related.ID()),
			})
		}
		if len(entries) == 0 {
			continue
		}
		group := views.RelationGroup{
			Field:       binding.Field,
			Label:       s.bindingLabel(rec.Series, binding.Field),
			SchemeGroup: relation.IsSchemeGrouping(binding.Field),
			Entries:     entries,
		}
		if group.SchemeGroup {
			hasRelatedSchemes = true
		}
		groups = append(groups, group)
	}
	return groups, hasRelatedSchemes, nil
}

// bindingLabel prefers the edit form's label for the selector, falling back
// to the display-only names.
func (s *Server) bindingLabel(series record.Series, field string) string {
	if form, ok := s.forms[series]; ok {
		if f := form.Field(field); f != nil && f.Label != "" {
			return f.Label
		}
	}
	if label, ok := inverseLabels[field]; ok {
		return label
	}
	return field
}
