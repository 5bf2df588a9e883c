package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	chirender "github.com/go-chi/render"
	"go.uber.org/zap"

	"github.com/goliatone/go-catalog/internal/store"
	"github.com/goliatone/go-catalog/pkg/record"
	"github.com/goliatone/go-catalog/pkg/relation"
)

const (
	apiVersion      = "2.0.0"
	defaultPageSize = 10
	maxPageSize     = 100
)

// roleNames translate binding fields into the role strings the API reports
// on relatedEntities.
var roleNames = map[string]string{
	"maintainers":          "maintainer",
	"funders":              "funder",
	"users":                "user",
	"parent_schemes":       "parent scheme",
	"child_schemes":        "child scheme",
	"input_to_mappings":    "input to mapping",
	"output_from_mappings": "output from mapping",
	"tools":                "tool",
	"endorsements":         "endorsement",
	"maintained_schemes":   "maintained scheme",
	"funded_schemes":       "funded scheme",
	"used_schemes":         "used scheme",
	"supported_schemes":    "supported scheme",
	"input_schemes":        "input scheme",
	"output_schemes":       "output scheme",
	"endorsed_schemes":     "endorsed scheme",
	"originators":          "originator",
}

type pageData struct {
	ItemsPerPage int    `json:"itemsPerPage"`
	StartIndex   int    `json:"startIndex"`
	PageIndex    int    `json:"pageIndex"`
	TotalItems   int    `json:"totalItems"`
	TotalPages   int    `json:"totalPages"`
	PreviousLink string `json:"previousLink,omitempty"`
	NextLink     string `json:"nextLink,omitempty"`
	Items        []any  `json:"items"`
}

type pageEnvelope struct {
	APIVersion string   `json:"apiVersion"`
	Data       pageData `json:"data"`
}

type itemEnvelope struct {
	APIVersion string `json:"apiVersion"`
	Data       any    `json:"data"`
}

// paginate slices items according to the start/page/pageSize query params
// and builds the navigation envelope.
func paginate(r *http.Request, items []any) pageData {
	query := r.URL.Query()

	pageSize := defaultPageSize
	if raw := query.Get("pageSize"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			pageSize = n
		}
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	start := 1
	if raw := query.Get("start"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			start = n
		}
	} else if raw := query.Get("page"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			start = (n-1)*pageSize + 1
		}
	}

	total := len(items)
	totalPages := (total + pageSize - 1) / pageSize
	if start > total {
		start = total + 1
	}
	end := start - 1 + pageSize
	if end > total {
		end = total
	}

	page := pageData{
		ItemsPerPage: pageSize,
		StartIndex:   start,
		PageIndex:    (start-1)/pageSize + 1,
		TotalItems:   total,
		TotalPages:   totalPages,
		Items:        items[start-1 : end],
	}
	if page.Items == nil {
		page.Items = []any{}
	}
	if page.PageIndex > 1 {
		page.PreviousLink = fmt.Sprintf("%s?page=%d&pageSize=%d", r.URL.Path, page.PageIndex-1, pageSize)
	}
	if end < total {
		page.NextLink = fmt.Sprintf("%s?page=%d&pageSize=%d", r.URL.Path, page.PageIndex+1, pageSize)
	}
	return page
}

func apiNotFound(w http.ResponseWriter, r *http.Request) {
	chirender.Status(r, http.StatusNotFound)
	chirender.JSON(w, r, map[string]string{"error": "not found"})
}

func (s *Server) handleAPIItem(w http.ResponseWriter, r *http.Request) {
	item := chi.URLParam(r, "item")

	if series, err := record.ParseSeries(item); err == nil {
		s.apiList(w, r, series)
		return
	}

	id, err := parseItem(item)
	if err != nil {
		apiNotFound(w, r)
		return
	}
	rec, err := s.store.Load(r.Context(), id.Series, id.DocID)
	if errors.Is(err, store.ErrNotFound) {
		apiNotFound(w, r)
		return
	}
	if err != nil {
		s.apiError(w, r, err)
		return
	}
	body, err := s.apiRecord(r.Context(), rec)
	if err != nil {
		s.apiError(w, r, err)
		return
	}
	chirender.JSON(w, r, itemEnvelope{APIVersion: apiVersion, Data: body})
}

func (s *Server) apiList(w http.ResponseWriter, r *http.Request, series record.Series) {
	records, err := s.store.All(r.Context(), series)
	if err != nil {
		s.apiError(w, r, err)
		return
	}
	items := make([]any, 0, len(records))
	for _, rec := range records {
		body, err := s.apiRecord(r.Context(), rec)
		if err != nil {
			s.apiError(w, r, err)
			return
		}
		items = append(items, body)
	}
	chirender.JSON(w, r, pageEnvelope{APIVersion: apiVersion, Data: paginate(r, items)})
}

func (s *Server) handleAPIRelationList(w http.ResponseWriter, r *http.Request) {
	subjects, err := s.store.RelationSubjects(r.Context())
	if err != nil {
		s.apiError(w, r, err)
		return
	}
	record.SortIDs(subjects)
	items := make([]any, 0, len(subjects))
	for _, subject := range subjects {
		id, err := record.ParseID(subject)
		if err != nil {
			continue
		}
		body, err := s.relationBody(r.Context(), id)
		if err != nil {
			s.apiError(w, r, err)
			return
		}
		items = append(items, body)
	}
	chirender.JSON(w, r, pageEnvelope{APIVersion: apiVersion, Data: paginate(r, items)})
}

func (s *Server) handleAPIRelationItem(w http.ResponseWriter, r *http.Request) {
	id, err := parseItem(chi.URLParam(r, "item"))
	if err != nil {
		apiNotFound(w, r)
		return
	}
	body, err := s.relationBody(r.Context(), id)
	if err != nil {
		s.apiError(w, r, err)
		return
	}
	chirender.JSON(w, r, itemEnvelope{APIVersion: apiVersion, Data: body})
}

// relationBody maps a record's bindings to sorted id lists, keyed the way the
// edit forms name their selectors.
func (s *Server) relationBody(ctx context.Context, id record.ID) (map[string]any, error) {
	body := map[string]any{"mscid": id.String()}
	for _, binding := range relation.Bindings(id.Series) {
		ids, err := relation.Related(ctx, s.store, id, binding)
		if err != nil {
			return nil, err
		}
		if len(ids) == 0 {
			continue
		}
		record.SortIDs(ids)
		body[binding.Field] = ids
	}
	return body, nil
}

// apiRecord embellishes stored fields with the catalog id, the API URI, and
// the record's related entities.
func (s *Server) apiRecord(ctx context.Context, rec record.Record) (map[string]any, error) {
	body := make(map[string]any, len(rec.Fields)+3)
	for key, value := range rec.Fields {
		body[key] = value
	}
	id := rec.ID()
	body["mscid"] = id.String()
	body["uri"] = "/api2/" + string(id.Series) + strconv.Itoa(id.DocID)

	var related []map[string]string
	for _, binding := range relation.Bindings(rec.Series) {
		ids, err := relation.Related(ctx, s.store, id, binding)
		if err != nil {
			return nil, err
		}
		record.SortIDs(ids)
		role := roleNames[binding.Field]
		for _, other := range ids {
			related = append(related, map[string]string{"id": other, "role": role})
		}
	}
	if len(related) > 0 {
		body["relatedEntities"] = related
	}
	return body, nil
}

func (s *Server) apiError(w http.ResponseWriter, r *http.Request, err error) {
	s.logger.Error("api request failed", zap.Error(err))
	chirender.Status(r, http.StatusInternalServerError)
	chirender.JSON(w, r, map[string]string{"error": "internal server error"})
}
