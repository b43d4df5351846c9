package pagination

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	DefaultPage  = 1
	DefaultLimit = 20
	MaxLimit     = 100
	MinLimit     = 1
)

// Params holds validated pagination parameters on the serving side
type Params struct {
	Page   int
	Limit  int
	Offset int
}

// Parse extracts and validates page/limit from query parameters
func Parse(c *gin.Context) Params {
	page, _ := strconv.Atoi(c.DefaultQuery("page", strconv.Itoa(DefaultPage)))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(DefaultLimit)))

	if page < 1 {
		page = DefaultPage
	}
	if limit < MinLimit {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	return Params{
		Page:   page,
		Limit:  limit,
		Offset: (page - 1) * limit,
	}
}

// Query holds the filter parameters a client attaches to list requests
type Query struct {
	Page   int
	Limit  int
	Search string
	Status string
	From   *time.Time
	To     *time.Time
}

// Values serializes the query into URL parameters, omitting zero values
func (q Query) Values() url.Values {
	v := url.Values{}
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.Search != "" {
		v.Set("search", q.Search)
	}
	if q.Status != "" {
		v.Set("status", q.Status)
	}
	if q.From != nil {
		v.Set("from", q.From.Format(time.RFC3339))
	}
	if q.To != nil {
		v.Set("to", q.To.Format(time.RFC3339))
	}
	return v
}

// Pagination describes a page of a larger result set
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// NewPagination computes page metadata for a total row count
func NewPagination(p Params, total int64) Pagination {
	pages := int((total + int64(p.Limit) - 1) / int64(p.Limit))
	return Pagination{
		Page:       p.Page,
		Limit:      p.Limit,
		Total:      total,
		TotalPages: pages,
	}
}

// List is the normalized shape every list endpoint resolves to on the client
type List[T any] struct {
	Items      []T
	Pagination *Pagination
}

// listBody matches the flat list payload: {"data":[...],"pagination":{...}}
type listBody struct {
	Data       json.RawMessage `json:"data"`
	Pagination *Pagination     `json:"pagination"`
}

// NormalizeList decodes a list payload into one shape regardless of which of
// the two historical nestings the endpoint used: {data,pagination} or
// {data:{data,pagination}}. A bare JSON array is accepted as well.
func NormalizeList[T any](raw json.RawMessage) (List[T], error) {
	var out List[T]
	if len(raw) == 0 {
		return out, nil
	}

	// Bare array payload
	if raw[0] == '[' {
		if err := json.Unmarshal(raw, &out.Items); err != nil {
			return out, fmt.Errorf("decode list payload: %w", err)
		}
		return out, nil
	}

	var body listBody
	if err := json.Unmarshal(raw, &body); err != nil {
		return out, fmt.Errorf("decode list payload: %w", err)
	}

	// Double-nested variant: data is itself {data, pagination}
	if len(body.Data) > 0 && body.Data[0] == '{' {
		var inner listBody
		if err := json.Unmarshal(body.Data, &inner); err != nil {
			return out, fmt.Errorf("decode nested list payload: %w", err)
		}
		body = inner
	}

	if len(body.Data) > 0 {
		if err := json.Unmarshal(body.Data, &out.Items); err != nil {
			return out, fmt.Errorf("decode list items: %w", err)
		}
	}
	out.Pagination = body.Pagination
	return out, nil
}
