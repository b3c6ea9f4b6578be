// Package linechat is the Go client for the LineChat backend. A Client is an
// explicit handle constructed by the caller; there is no package-level
// connection state.
package linechat

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// Message mirrors the server's wire representation.
type Message struct {
	ID          int64   `json:"id"`
	SenderID    int64   `json:"sender_id"`
	ReceiverID  int64   `json:"receiver_id"`
	TextContent *string `json:"text_content"`
	MediaIDRef  *int64  `json:"media_id_ref"`
	Timestamp   int64   `json:"timestamp"`
}

// Stats is the admin user-count report.
type Stats struct {
	UserCount int64 `json:"userCount"`
}

// APIError is a non-2xx response from the backend.
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("linechat: http %d: %s", e.Status, e.Body)
}

// Client talks to one LineChat backend.
type Client struct {
	baseURL string
	http    *http.Client
}

// New builds a client for the backend at baseURL. Pass nil to use a default
// http.Client with a 30s timeout.
func New(baseURL string, hc *http.Client) *Client {
	if hc == nil {
		hc = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), http: hc}
}

// Register redeems an invitation key and returns the new user id.
func (c *Client) Register(ctx context.Context, key, username, password string) (int64, error) {
	body := map[string]string{"key": key, "username": username, "password": password}
	var out struct {
		Success bool  `json:"success"`
		UserID  int64 `json:"userId"`
	}
	if err := c.postJSON(ctx, "/register", body, &out); err != nil {
		return 0, err
	}
	return out.UserID, nil
}

// Send appends a message.
func (c *Client) Send(ctx context.Context, senderID, receiverID int64, text *string, mediaID *int64) error {
	body := map[string]any{
		"sender_id":    senderID,
		"receiver_id":  receiverID,
		"text_content": text,
		"media_id_ref": mediaID,
	}
	var out struct {
		Success bool `json:"success"`
	}
	return c.postJSON(ctx, "/send", body, &out)
}

// Sync returns messages for userID with timestamps strictly after the cursor.
func (c *Client) Sync(ctx context.Context, userID, after int64) ([]Message, error) {
	path := "/sync?userId=" + strconv.FormatInt(userID, 10) +
		"&after=" + strconv.FormatInt(after, 10)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	var msgs []Message
	if err := c.do(req, &msgs); err != nil {
		return nil, err
	}
	return msgs, nil
}

// Upload stores raw bytes and returns the media id.
func (c *Client) Upload(ctx context.Context, data []byte, mimeType string) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/upload", bytes.NewReader(data))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", mimeType)
	var out struct {
		MediaID int64 `json:"mediaId"`
	}
	if err := c.do(req, &out); err != nil {
		return 0, err
	}
	return out.MediaID, nil
}

// Download fetches the stored bytes and their mime type.
func (c *Client) Download(ctx context.Context, mediaID int64) ([]byte, string, error) {
	url := c.baseURL + "/media/" + strconv.FormatInt(mediaID, 10)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, "", &APIError{Status: resp.StatusCode, Body: string(data)}
	}
	return data, resp.Header.Get("Content-Type"), nil
}

// GenerateKey asks the backend to mint a fresh invitation key.
func (c *Client) GenerateKey(ctx context.Context) (string, error) {
	var out struct {
		Key string `json:"key"`
	}
	if err := c.postJSON(ctx, "/admin/generate-key", nil, &out); err != nil {
		return "", err
	}
	return out.Key, nil
}

// GetStats returns the aggregate user count.
func (c *Client) GetStats(ctx context.Context) (*Stats, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/admin/stats", nil)
	if err != nil {
		return nil, err
	}
	var out Stats
	if err := c.do(req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) postJSON(ctx context.Context, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{Status: resp.StatusCode, Body: string(data)}
	}
	if out == nil {
		return nil
	}
	return json.Unmarshal(data, out)
}
