package dto

import (
	"net/http"
	"net/url"
	"parking/shared/constant"
	"strconv"
	"strings"
)

const (
	SortDirAsc  = "ASC"
	SortDirDesc = "DESC"
)

// MaxLimit caps the page size a client may request.
const MaxLimit = 100

// QueryParams are the paging and sorting options of list endpoints. SortBy is checked against the
// repository's columns before it reaches SQL.
type QueryParams struct {
	Page    int    `json:"page"     validate:"omitempty"`
	Limit   int    `json:"limit"    validate:"omitempty"`
	SortBy  string `json:"sort_by"  validate:"omitempty"`
	SortDir string `json:"sort_dir" validate:"omitempty,oneof=ASC DESC"`
}

// FromRequest reads page, limit, sort_by and sort_dir from the query string, ignoring malformed values.
// withDefaults fills page and limit when the request leaves them out.
func (q *QueryParams) FromRequest(r *http.Request, withDefaults bool) {
	values := r.URL.Query()

	if page, ok := positiveInt(values, constant.RequestParamPage); ok {
		q.Page = page
	}

	if limit, ok := positiveInt(values, constant.RequestParamLimit); ok {
		q.Limit = min(limit, MaxLimit)
	}

	if sortBy := values.Get(constant.RequestParamSortBy); sortBy != "" {
		q.SortBy = sortBy
	}

	switch dir := strings.ToUpper(values.Get(constant.RequestParamSortDir)); dir {
	case SortDirAsc, SortDirDesc:
		q.SortDir = dir
	}

	if !withDefaults {
		return
	}

	if q.Page == 0 {
		q.Page = constant.DefaultValuePage
	}

	if q.Limit == 0 {
		q.Limit = constant.DefaultValueLimit
	}
}

func positiveInt(values url.Values, key string) (int, bool) {
	n, err := strconv.Atoi(values.Get(key))
	if err != nil || n <= 0 {
		return 0, false
	}

	return n, true
}

type Pagination struct {
	Page      int `json:"page"`
	Limit     int `json:"limit"`
	Total     int `json:"total"`
	TotalPage int `json:"total_page"`
}

func NewPagination(params QueryParams, total, totalPage int) Pagination {
	return Pagination{Page: params.Page, Limit: params.Limit, Total: total, TotalPage: totalPage}
}
