package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/goliatone/go-catalog/internal/store"
	"github.com/goliatone/go-catalog/pkg/forms"
	"github.com/goliatone/go-catalog/pkg/model"
	"github.com/goliatone/go-catalog/pkg/record"
	"github.com/goliatone/go-catalog/pkg/relation"
	"github.com/goliatone/go-catalog/pkg/render"
	"github.com/goliatone/go-catalog/pkg/renderers/views"
)

// seriesTitles feed the edit page headings.
var seriesTitles = map[record.Series]string{
	record.SeriesScheme:       "metadata scheme",
	record.SeriesOrganization: "organization",
	record.SeriesTool:         "tool",
	record.SeriesMapping:      "mapping",
	record.SeriesEndorsement:  "endorsement",
	record.SeriesDatatype:     "data type",
}

func (s *Server) handleEditForm(w http.ResponseWriter, r *http.Request) {
	if !s.requireAuth(w, r) {
		return
	}
	id, err := parseItem(chi.URLParam(r, "id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}
	form, ok := s.forms[id.Series]
	if !ok {
		http.NotFound(w, r)
		return
	}

	rec := record.New(id.Series)
	if id.DocID > 0 {
		rec, err = s.store.Load(r.Context(), id.Series, id.DocID)
		if errors.Is(err, store.ErrNotFound) {
			s.sessions.flash(w, r, "error", "That record no longer exists; starting a fresh one.")
			http.Redirect(w, r, views.EditPath(record.NewID(id.Series, 0)), http.StatusSeeOther)
			return
		}
		if err != nil {
			s.serverError(w, err)
			return
		}
	}

	values := map[string]any{}
	for key, value := range rec.Fields {
		values[key] = value
	}
	if s.vocab != nil && len(rec.Keywords()) > 0 {
		values["keywords"] = s.keywordLabels(rec.Keywords())
	}

	data, err := s.editData(r.Context(), form, id, values, nil, currentSelections(r.Context(), s, rec))
	if err != nil {
		s.serverError(w, err)
		return
	}
	data.Authenticated = true
	data.Flashes = s.sessions.popFlashes(r)
	data.Hidden["csrf_token"] = s.sessions.csrfToken(w, r)

	body, err := s.views.RenderEdit(r.Context(), data)
	if err != nil {
		s.serverError(w, err)
		return
	}
	s.writeHTML(w, http.StatusOK, body)
}

func (s *Server) handleEditSubmit(w http.ResponseWriter, r *http.Request) {
	if !s.requireAuth(w, r) {
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	if !s.sessions.checkCSRF(r, r.PostFormValue("csrf_token")) {
		http.Error(w, "invalid or missing CSRF token", http.StatusForbidden)
		return
	}
	id, err := parseItem(chi.URLParam(r, "id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}
	form, ok := s.forms[id.Series]
	if !ok {
		http.NotFound(w, r)
		return
	}

	result, errs, err := s.pipeline.Process(r.Context(), form, id.Series, id.DocID, r.PostForm)
	if errors.Is(err, store.ErrNotFound) {
		s.sessions.flash(w, r, "error", "That record no longer exists; starting a fresh one.")
		http.Redirect(w, r, views.EditPath(record.NewID(id.Series, 0)), http.StatusSeeOther)
		return
	}
	if err != nil {
		s.serverError(w, err)
		return
	}
	if !errs.Empty() {
		submitted := map[string][]string{}
		for _, field := range form.Fields {
			if values, ok := r.PostForm[field.Name]; ok {
				submitted[field.Name] = values
			}
		}
		data, buildErr := s.editData(r.Context(), form, id, forms.Decode(r.PostForm, form), collapseErrors(errs), submitted)
		if buildErr != nil {
			s.serverError(w, buildErr)
			return
		}
		data.Authenticated = true
		data.Hidden["csrf_token"] = s.sessions.csrfToken(w, r)
		body, renderErr := s.views.RenderEdit(r.Context(), data)
		if renderErr != nil {
			s.serverError(w, renderErr)
			return
		}
		s.writeHTML(w, http.StatusUnprocessableEntity, body)
		return
	}

	verb := "updated"
	if result.Created {
		verb = "added"
	}
	s.sessions.flash(w, r, "info", fmt.Sprintf("Successfully %s record %s.", verb, result.ID))
	http.Redirect(w, r, views.DisplayPath(result.ID), http.StatusSeeOther)
}

// EditPage renders the edit form for a record by its bare catalog id without
// session state, for previews outside an HTTP request. Doc id zero, e.g.
// "m0", renders the blank form for the series.
func (s *Server) EditPage(ctx context.Context, rawID string) ([]byte, error) {
	id, err := parseItem(rawID)
	if err != nil {
		return nil, err
	}
	form, ok := s.forms[id.Series]
	if !ok {
		return nil, fmt.Errorf("server: no edit form for series %q", id.Series)
	}
	rec := record.New(id.Series)
	if id.DocID > 0 {
		rec, err = s.store.Load(ctx, id.Series, id.DocID)
		if err != nil {
			return nil, err
		}
	}
	values := map[string]any{}
	for key, value := range rec.Fields {
		values[key] = value
	}
	if s.vocab != nil && len(rec.Keywords()) > 0 {
		values["keywords"] = s.keywordLabels(rec.Keywords())
	}
	data, err := s.editData(ctx, form, id, values, nil, currentSelections(ctx, s, rec))
	if err != nil {
		return nil, err
	}
	return s.views.RenderEdit(ctx, data)
}

// editData assembles the edit page context: current values, relation and
// data-type choices, and the serialized prior relations the pipeline diffs
// against.
func (s *Server) editData(ctx context.Context, form model.FormModel, id record.ID, values map[string]any, fieldErrors map[string][]string, selections map[string][]string) (views.EditData, error) {
	choices, err := s.editChoices(ctx, form, id, selections)
	if err != nil {
		return views.EditData{}, err
	}

	oldRelations, err := forms.OldRelationsValue(ctx, s.store, id, id.Series)
	if err != nil {
		return views.EditData{}, err
	}

	title := fmt.Sprintf("Edit %s %s", seriesTitles[id.Series], id)
	cancel := views.DisplayPath(id)
	if id.DocID == 0 {
		title = fmt.Sprintf("Add new %s", seriesTitles[id.Series])
		cancel = "/"
	}

	return views.EditData{
		Form:       form,
		PageTitle:  title,
		Action:     views.EditPath(id),
		Method:     "POST",
		Values:     values,
		Errors:     fieldErrors,
		Hidden:     map[string]string{"old_relations": oldRelations},
		Choices:    choices,
		CancelPath: cancel,
	}, nil
}

// editChoices builds the checkbox options for relation selectors and the
// data-type picker. selections marks which options start ticked.
func (s *Server) editChoices(ctx context.Context, form model.FormModel, id record.ID, selections map[string][]string) (map[string][]render.Choice, error) {
	choices := make(map[string][]render.Choice)
	for _, field := range form.Fields {
		var target record.Series
		if binding, ok := relation.BindingFor(id.Series, field.Name); ok {
			target = binding.Target
		} else if field.Name == "dataTypes" {
			target = record.SeriesDatatype
		} else {
			continue
		}

		candidates, err := s.store.All(ctx, target)
		if err != nil {
			return nil, err
		}
		selected := map[string]bool{}
		for _, value := range selections[field.Name] {
			selected[value] = true
		}
		options := make([]render.Choice, 0, len(candidates))
		for _, candidate := range candidates {
			// A record cannot relate to itself.
			if candidate.Series == id.Series && candidate.DocID == id.DocID {
				continue
			}
			mscid := candidate.ID().String()
			options = append(options, render.Choice{
				Value:    mscid,
				Label:    candidate.Name(),
				Selected: selected[mscid],
			})
		}
		choices[field.Name] = options
	}
	return choices, nil
}

// currentSelections reads the record's stored relations so edit forms start
// with the right boxes ticked. Data types are stored on the record itself.
func currentSelections(ctx context.Context, s *Server, rec record.Record) map[string][]string {
	selections := map[string][]string{"dataTypes": rec.DataTypes()}
	if !rec.Exists() {
		return selections
	}
	for _, binding := range relation.Bindings(rec.Series) {
		ids, err := relation.Related(ctx, s.store, rec.ID(), binding)
		if err != nil {
			continue
		}
		selections[binding.Field] = ids
	}
	return selections
}

// collapseErrors folds dotted row paths ("locations.0.url") onto their
// top-level field so inline messages land next to the right control.
func collapseErrors(errs forms.Errors) map[string][]string {
	out := make(map[string][]string, len(errs))
	for path, messages := range errs {
		field := path
		prefix := ""
		if head, rest, found := strings.Cut(path, "."); found {
			field = head
			if index, tail, _ := strings.Cut(rest, "."); index != "" {
				if n, err := strconv.Atoi(index); err == nil {
					prefix = fmt.Sprintf("Entry %d", n+1)
					if tail != "" {
						prefix += ", " + tail
					}
					prefix += ": "
				}
			}
		}
		for _, message := range messages {
			out[field] = append(out[field], prefix+message)
		}
	}
	return out
}
