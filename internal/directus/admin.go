package directus

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"
)

// Admin/schema endpoints. Only the operator CLI uses these; the running
// application never mutates CMS schema.

// FieldSpec mirrors the CMS field-creation payload.
type FieldSpec struct {
	Field  string         `json:"field"`
	Type   string         `json:"type"`
	Meta   map[string]any `json:"meta,omitempty"`
	Schema map[string]any `json:"schema,omitempty"`
}

// CollectionSpec mirrors the CMS collection-creation payload.
type CollectionSpec struct {
	Collection string         `json:"collection"`
	Meta       map[string]any `json:"meta,omitempty"`
	Schema     map[string]any `json:"schema,omitempty"`
	Fields     []FieldSpec    `json:"fields,omitempty"`
}

// Permission is a role's grant on a collection. A nil Role means the public role.
type Permission struct {
	Id         int64    `json:"id,omitempty"`
	Role       *string  `json:"role"`
	Collection string   `json:"collection"`
	Action     string   `json:"action"`
	Fields     []string `json:"fields,omitempty"`
}

func (c *Client) CollectionExists(ctx context.Context, collection string) (bool, error) {
	resp, err := c.do(ctx, "GET", "/collections/"+url.PathEscape(collection), nil, nil, "")
	if err != nil {
		return false, err
	}
	err = decodeData(resp, nil)
	if err == nil {
		return true, nil
	}
	if IsNotFound(err) {
		return false, nil
	}
	return false, err
}

func (c *Client) CreateCollection(ctx context.Context, spec CollectionSpec) error {
	return c.postJSON(ctx, "/collections", spec)
}

func (c *Client) FieldExists(ctx context.Context, collection, field string) (bool, error) {
	resp, err := c.do(ctx, "GET", "/fields/"+url.PathEscape(collection)+"/"+url.PathEscape(field), nil, nil, "")
	if err != nil {
		return false, err
	}
	err = decodeData(resp, nil)
	if err == nil {
		return true, nil
	}
	if IsNotFound(err) {
		return false, nil
	}
	return false, err
}

func (c *Client) CreateField(ctx context.Context, collection string, spec FieldSpec) error {
	return c.postJSON(ctx, "/fields/"+url.PathEscape(collection), spec)
}

// ListPermissions returns existing grants for a collection so callers can
// compute the missing ones.
func (c *Client) ListPermissions(ctx context.Context, collection string) ([]Permission, error) {
	q := Query{Filter: Eq("collection", collection)}
	query, err := q.values()
	if err != nil {
		return nil, err
	}

	resp, err := c.do(ctx, "GET", "/permissions", query, nil, "")
	if err != nil {
		return nil, err
	}

	var perms []Permission
	if err := decodeData(resp, &perms); err != nil {
		return nil, err
	}
	return perms, nil
}

func (c *Client) CreatePermission(ctx context.Context, perm Permission) error {
	return c.postJSON(ctx, "/permissions", perm)
}

func (c *Client) postJSON(ctx context.Context, path string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	resp, err := c.do(ctx, "POST", path, nil, bytes.NewReader(body), "application/json")
	if err != nil {
		return err
	}
	return decodeData(resp, nil)
}
