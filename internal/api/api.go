// Package api holds the thin domain modules: one function per backend
// operation, serializing typed input and delegating to the HTTP client. No
// state, no reshaping beyond list normalization.
package api

import (
	"context"
	"encoding/json"

	"rotierp/internal/apiclient"
	"rotierp/pkg/pagination"
)

// API bundles every domain module behind one constructor
type API struct {
	Auth          *Auth
	Manufacturing *Manufacturing
	Sales         *Sales
	Finance       *Finance
	HR            *HR
	Counters      *Counters
	Hotels        *Hotels
	Hostels       *Hostels
	Franchises    *Franchises
	Settings      *Settings
	Reports       *Reports

	client *apiclient.Client
}

func New(c *apiclient.Client) *API {
	return &API{
		Auth:          &Auth{c: c},
		Manufacturing: &Manufacturing{c: c},
		Sales:         &Sales{c: c},
		Finance:       &Finance{c: c},
		HR:            &HR{c: c},
		Counters:      &Counters{c: c},
		Hotels:        &Hotels{c: c},
		Hostels:       &Hostels{c: c},
		Franchises:    &Franchises{c: c},
		Settings:      &Settings{c: c},
		Reports:       &Reports{c: c},
		client:        c,
	}
}

// Health checks the public /db-status endpoint
func (a *API) Health(ctx context.Context) (map[string]interface{}, error) {
	return a.client.Health(ctx)
}

// list fetches a paginated collection and normalizes whichever envelope
// nesting the endpoint used
func list[T any](ctx context.Context, c *apiclient.Client, path string, q pagination.Query) (pagination.List[T], error) {
	var raw json.RawMessage
	if err := c.Get(ctx, path, q.Values(), &raw); err != nil {
		return pagination.List[T]{}, err
	}
	return pagination.NormalizeList[T](raw)
}

// listAll walks every page of a collection. The server caps page size at its
// own maximum, so a single request over a large window would drop records;
// aggregation callers need the complete set.
func listAll[T any](ctx context.Context, c *apiclient.Client, path string, q pagination.Query) ([]T, error) {
	q.Page = 1
	q.Limit = pagination.MaxLimit

	var items []T
	for {
		page, err := list[T](ctx, c, path, q)
		if err != nil {
			return nil, err
		}
		items = append(items, page.Items...)
		if len(page.Items) == 0 || page.Pagination == nil || int64(len(items)) >= page.Pagination.Total {
			return items, nil
		}
		q.Page++
	}
}
