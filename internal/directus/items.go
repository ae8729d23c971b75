package directus

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Query expresses the subset of the CMS item-listing parameters the site uses.
// A zero Limit means "no limit" (sent as -1, the CMS convention).
type Query struct {
	Filter map[string]any
	Sort   []string
	Limit  int
	Offset int
	Fields []string
}

func (q Query) values() (url.Values, error) {
	v := url.Values{}

	if q.Filter != nil {
		filterJSON, err := json.Marshal(q.Filter)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal filter: %w", err)
		}
		v.Set("filter", string(filterJSON))
	}
	if len(q.Sort) > 0 {
		v.Set("sort", strings.Join(q.Sort, ","))
	}
	if q.Limit != 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	} else {
		v.Set("limit", "-1")
	}
	if q.Offset > 0 {
		v.Set("offset", strconv.Itoa(q.Offset))
	}
	if len(q.Fields) > 0 {
		v.Set("fields", strings.Join(q.Fields, ","))
	}
	return v, nil
}

// Eq builds the CMS's {"field": {"_eq": value}} filter clause.
func Eq(field string, value any) map[string]any {
	return map[string]any{field: map[string]any{"_eq": value}}
}

// And merges filter clauses into a single conjunction.
func And(clauses ...map[string]any) map[string]any {
	merged := map[string]any{}
	for _, clause := range clauses {
		for k, v := range clause {
			merged[k] = v
		}
	}
	return merged
}

// ListItems fetches records from a collection into out (a pointer to a slice).
func (c *Client) ListItems(ctx context.Context, collection string, q Query, out any) error {
	query, err := q.values()
	if err != nil {
		return err
	}

	resp, err := c.do(ctx, "GET", "/items/"+collection, query, nil, "")
	if err != nil {
		return err
	}
	return decodeData(resp, out)
}

// GetItem fetches a single record by primary key.
func (c *Client) GetItem(ctx context.Context, collection, id string, out any) error {
	resp, err := c.do(ctx, "GET", "/items/"+collection+"/"+url.PathEscape(id), nil, nil, "")
	if err != nil {
		return err
	}
	return decodeData(resp, out)
}

// GetSingleton fetches a singleton collection's single row.
func (c *Client) GetSingleton(ctx context.Context, collection string, out any) error {
	resp, err := c.do(ctx, "GET", "/items/"+collection, nil, nil, "")
	if err != nil {
		return err
	}
	return decodeData(resp, out)
}

// CountItems returns the number of records matching the filter, using the
// CMS's filter_count metadata so no rows are transferred.
func (c *Client) CountItems(ctx context.Context, collection string, filter map[string]any) (int, error) {
	v := url.Values{}
	if filter != nil {
		filterJSON, err := json.Marshal(filter)
		if err != nil {
			return 0, fmt.Errorf("failed to marshal filter: %w", err)
		}
		v.Set("filter", string(filterJSON))
	}
	v.Set("limit", "0")
	v.Set("meta", "filter_count")

	resp, err := c.do(ctx, "GET", "/items/"+collection, v, nil, "")
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return 0, apiErrorFromBody(resp)
	}

	var envelope struct {
		Meta struct {
			FilterCount int `json:"filter_count"`
		} `json:"meta"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return 0, fmt.Errorf("failed to decode CMS response: %w", err)
	}
	return envelope.Meta.FilterCount, nil
}

// CreateItem writes a new record and decodes the created row into out
// (pass nil to discard it).
func (c *Client) CreateItem(ctx context.Context, collection string, item any, out any) error {
	body, err := json.Marshal(item)
	if err != nil {
		return fmt.Errorf("failed to marshal item: %w", err)
	}

	resp, err := c.do(ctx, "POST", "/items/"+collection, nil, bytes.NewReader(body), "application/json")
	if err != nil {
		return err
	}
	return decodeData(resp, out)
}

// UpdateItem patches an existing record by primary key.
func (c *Client) UpdateItem(ctx context.Context, collection, id string, patch any) error {
	body, err := json.Marshal(patch)
	if err != nil {
		return fmt.Errorf("failed to marshal patch: %w", err)
	}

	resp, err := c.do(ctx, "PATCH", "/items/"+collection+"/"+url.PathEscape(id), nil, bytes.NewReader(body), "application/json")
	if err != nil {
		return err
	}
	return decodeData(resp, nil)
}
