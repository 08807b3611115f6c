package utils

import (
	"net/http"
	"strconv"
	"strings"
)

const (
	defaultPage  = 1
	defaultLimit = 20
	maxLimit     = 100
)

func GetPaginationParams(r *http.Request) (int, int) {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		page = defaultPage
	}

	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return page, limit
}

var sortableColumns = map[string]bool{
	"date":     true,
	"amount":   true,
	"category": true,
}

// GetSortParams reads sortBy and sortOrder. Only whitelisted columns are
// accepted; ok reports whether a valid sort was requested.
func GetSortParams(r *http.Request) (column string, desc, ok bool) {
	column = r.URL.Query().Get("sortBy")
	if !sortableColumns[column] {
		return "", false, false
	}
	desc = strings.EqualFold(r.URL.Query().Get("sortOrder"), "desc")
	return column, desc, true
}
