package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/kotakitamaru/FinanceManager-v2/src/util"
)

// parsePagination reads page/limit query params, defaulting to page 1 and
// limit 10. Zero or negative values are rejected before any query runs.
func parsePagination(r *http.Request) (int, int, error) {
	page, limit := 1, 10
	if v := r.URL.Query().Get("page"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			return 0, 0, util.ValidationError("page must be a number")
		}
		page = p
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		l, err := strconv.Atoi(v)
		if err != nil {
			return 0, 0, util.ValidationError("limit must be a number")
		}
		limit = l
	}
	if page < 1 {
		return 0, 0, util.ValidationError("Page number must be greater than 0")
	}
	if limit < 1 {
		return 0, 0, util.ValidationError("Limit must be greater than 0")
	}
	return page, limit, nil
}

func parseIDParam(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, util.ValidationError("invalid " + name)
	}
	return id, nil
}

var dateLayouts = []string{time.RFC3339, "2006-01-02"}

// parseDate accepts an RFC 3339 timestamp or a plain date.
func parseDate(value string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, util.ValidationError("invalid date: " + value)
}

func optionalInt64Query(r *http.Request, name string) (*int64, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return nil, nil
	}
	id, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return nil, util.ValidationError(name + " must be a number")
	}
	return &id, nil
}

func optionalBoolQuery(r *http.Request, name string) (*bool, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return nil, util.ValidationError(name + " must be true or false")
	}
	return &b, nil
}

func optionalDateQuery(r *http.Request, name string) (*time.Time, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return nil, nil
	}
	t, err := parseDate(v)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func authUserID(r *http.Request) int64 {
	return r.Context().Value("user_id").(int64)
}

// isDuplicateKey reports whether a database error is a unique constraint
// violation.
func isDuplicateKey(err error) bool {
	return err != nil && strings.Contains(err.Error(), "duplicate key")
}
