package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// SummaryData mirrors the backend's summary payload.
type SummaryData struct {
	Saldo         float64 `json:"saldo"`
	TotalReceitas float64 `json:"totalReceitas"`
	TotalDespesas float64 `json:"totalDespesas"`
	Categorias    []struct {
		Name  string  `json:"name"`
		Total float64 `json:"total"`
	} `json:"categorias"`
}

// APIClient communicates with the Fintrack backend API.
type APIClient struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewAPIClient creates a new backend API client.
func NewAPIClient(baseURL string, httpClient *http.Client) *APIClient {
	return &APIClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// SetToken sets the bearer token used on authenticated calls.
func (c *APIClient) SetToken(token string) { c.token = token }

// Register creates a new user account.
func (c *APIClient) Register(ctx context.Context, email, password string) error {
	body := map[string]string{"email": email, "password": password}
	return c.do(ctx, http.MethodPost, "/api/auth/register", body, http.StatusCreated, nil)
}

// Login authenticates and stores the returned session token on the client.
func (c *APIClient) Login(ctx context.Context, email, password string) (string, error) {
	body := map[string]string{"email": email, "password": password}
	var result struct {
		Token string `json:"token"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", body, http.StatusOK, &result); err != nil {
		return "", err
	}
	c.token = result.Token
	return result.Token, nil
}

// ListEntries fetches all of the user's transactions.
func (c *APIClient) ListEntries(ctx context.Context) ([]Entry, error) {
	var entries []Entry
	if err := c.do(ctx, http.MethodGet, "/api/transactions", nil, http.StatusOK, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// CreateEntry persists a transaction on the backend and returns it with its
// server-assigned id.
func (c *APIClient) CreateEntry(ctx context.Context, e Entry) (Entry, error) {
	body := map[string]any{
		"description": e.Description,
		"amount":      e.Amount,
		"type":        e.Type,
		"categoryId":  e.CategoryID,
		"date":        e.Date.Format(time.RFC3339),
	}
	var created Entry
	if err := c.do(ctx, http.MethodPost, "/api/transactions", body, http.StatusCreated, &created); err != nil {
		return Entry{}, err
	}
	return created, nil
}

// DeleteEntry removes a transaction on the backend.
func (c *APIClient) DeleteEntry(ctx context.Context, id uint) error {
	path := fmt.Sprintf("/api/transactions/%d", id)
	return c.do(ctx, http.MethodDelete, path, nil, http.StatusOK, nil)
}

// Summary fetches the aggregate view.
func (c *APIClient) Summary(ctx context.Context) (SummaryData, error) {
	var summary SummaryData
	if err := c.do(ctx, http.MethodGet, "/api/transactions/summary", nil, http.StatusOK, &summary); err != nil {
		return SummaryData{}, err
	}
	return summary, nil
}

// do performs one JSON request/response round trip.
func (c *APIClient) do(ctx context.Context, method, path string, body any, wantStatus int, out any) error {
	var reader *strings.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshaling request: %w", err)
		}
		reader = strings.NewReader(string(jsonBody))
	} else {
		reader = strings.NewReader("")
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != wantStatus {
		var apiErr struct {
			Error struct {
				Message string `json:"message"`
			} `json:"error"`
		}
		if decodeErr := json.NewDecoder(resp.Body).Decode(&apiErr); decodeErr == nil && apiErr.Error.Message != "" {
			return fmt.Errorf("%s %s: %s (status %d)", method, path, apiErr.Error.Message, resp.StatusCode)
		}
		return fmt.Errorf("%s %s: unexpected status %d", method, path, resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

// Refresh replaces the store's entry list with the backend's authoritative
// copy. On failure the list is left unchanged and the error is recorded and
// returned; the store never retries.
func (s *Store) Refresh(ctx context.Context) error {
	if s.opts.API == nil {
		return nil
	}

	s.loading = true
	defer func() { s.loading = false }()

	entries, err := s.opts.API.ListEntries(ctx)
	if err != nil {
		s.err = err
		return err
	}

	s.entries = entries
	s.dataLoaded = true
	s.err = nil
	return nil
}
