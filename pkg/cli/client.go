package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"mesh-demo/internal/api"
	"mesh-demo/internal/domain"
)

// APIError is an error response from the server.
type APIError struct {
	HTTPStatus int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("server returned %d: %s", e.HTTPStatus, e.Message)
}

// Client is a thin HTTP client for the lineage API.
type Client struct {
	BaseURL string
	http    *http.Client
}

// NewClient creates a Client for the given base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: baseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var apiErr api.Error
		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err != nil || apiErr.Message == "" {
			apiErr.Message = resp.Status
		}
		return &APIError{HTTPStatus: resp.StatusCode, Message: apiErr.Message}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// ListNodes fetches one page of nodes.
func (c *Client) ListNodes(ctx context.Context, pageToken string) (*api.NodeListResponse, error) {
	path := "/v1/nodes"
	if pageToken != "" {
		path += "?page_token=" + url.QueryEscape(pageToken)
	}
	var out api.NodeListResponse
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetNode fetches a single node.
func (c *Client) GetNode(ctx context.Context, nodeID string) (*api.NodePayload, error) {
	var out api.NodePayload
	if err := c.do(ctx, http.MethodGet, "/v1/nodes/"+url.PathEscape(nodeID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateNode registers a node.
func (c *Client) CreateNode(ctx context.Context, node api.NodePayload) (*api.NodePayload, error) {
	var out api.NodePayload
	if err := c.do(ctx, http.MethodPost, "/v1/nodes", node, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteNode removes a node.
func (c *Client) DeleteNode(ctx context.Context, nodeID string) error {
	return c.do(ctx, http.MethodDelete, "/v1/nodes/"+url.PathEscape(nodeID), nil, nil)
}

// ListRelationships fetches one page of relationships.
func (c *Client) ListRelationships(ctx context.Context, pageToken string) (*api.RelationshipListResponse, error) {
	path := "/v1/relationships"
	if pageToken != "" {
		path += "?page_token=" + url.QueryEscape(pageToken)
	}
	var out api.RelationshipListResponse
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateRelationship registers a relationship.
func (c *Client) CreateRelationship(ctx context.Context, rel api.RelationshipPayload) (*api.RelationshipPayload, error) {
	var out api.RelationshipPayload
	if err := c.do(ctx, http.MethodPost, "/v1/relationships", rel, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteRelationship removes a relationship.
func (c *Client) DeleteRelationship(ctx context.Context, relID string) error {
	return c.do(ctx, http.MethodDelete, "/v1/relationships/"+url.PathEscape(relID), nil, nil)
}

// ReplaceColumnRelationships swaps the full column-relationship list.
func (c *Client) ReplaceColumnRelationships(ctx context.Context, rels []api.ColumnRelationshipPayload) error {
	return c.do(ctx, http.MethodPut, "/v1/column-relationships", rels, nil)
}

// PortLineage fetches the complete lineage of a port.
func (c *Client) PortLineage(ctx context.Context, portID string) (*domain.CompleteLineage, error) {
	var out domain.CompleteLineage
	if err := c.do(ctx, http.MethodGet, "/v1/lineage/ports/"+url.PathEscape(portID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// NodeLineage fetches collapsed-node lineage.
func (c *Client) NodeLineage(ctx context.Context, nodeID string) (*domain.NodeLineageResult, error) {
	var out domain.NodeLineageResult
	if err := c.do(ctx, http.MethodGet, "/v1/lineage/nodes/"+url.PathEscape(nodeID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ColumnLineage fetches the complete lineage of a column.
func (c *Client) ColumnLineage(ctx context.Context, columnID string) (*domain.CompleteColumnLineage, error) {
	var out domain.CompleteColumnLineage
	if err := c.do(ctx, http.MethodGet, "/v1/lineage/columns/"+url.PathEscape(columnID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
