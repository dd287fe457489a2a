package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/crucial707/dayplan/cmd/cli/config"
)

// Client talks JSON to the dayplan API.
type Client struct {
	BaseURL string
	Token   string
	HTTP    *http.Client
}

// New returns an anonymous client for the configured API.
func New() *Client {
	return &Client{
		BaseURL: config.APIURL(),
		HTTP:    &http.Client{Timeout: 30 * time.Second},
	}
}

// Authed returns a client carrying the saved token.
func Authed() (*Client, error) {
	token, err := config.LoadToken()
	if err != nil {
		return nil, err
	}
	c := New()
	c.Token = token
	return c, nil
}

// APIError is a non-2xx answer from the API.
type APIError struct {
	Status  int
	Message string
	Fields  map[string]string
}

func (e *APIError) Error() string {
	if len(e.Fields) == 0 {
		return fmt.Sprintf("status %d: %s", e.Status, e.Message)
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return fmt.Sprintf("status %d: %s (%s)", e.Status, e.Message, strings.Join(parts, ", "))
}

func (c *Client) Get(path string, out interface{}) error {
	return c.Do(http.MethodGet, path, nil, out)
}

func (c *Client) Post(path string, payload, out interface{}) error {
	return c.Do(http.MethodPost, path, payload, out)
}

func (c *Client) Put(path string, payload, out interface{}) error {
	return c.Do(http.MethodPut, path, payload, out)
}

func (c *Client) Delete(path string) error {
	return c.Do(http.MethodDelete, path, nil, nil)
}

// Do sends payload as JSON and decodes the response into out when out is non-nil.
func (c *Client) Do(method, path string, payload, out interface{}) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, strings.TrimRight(c.BaseURL, "/")+path, body)
	if err != nil {
		return err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		apiErr := &APIError{Status: resp.StatusCode}
		var parsed struct {
			Error  string            `json:"error"`
			Fields map[string]string `json:"fields"`
		}
		if json.Unmarshal(data, &parsed) == nil && parsed.Error != "" {
			apiErr.Message, apiErr.Fields = parsed.Error, parsed.Fields
		} else {
			apiErr.Message = strings.TrimSpace(string(data))
		}
		return apiErr
	}

	if out != nil && len(data) > 0 {
		return json.Unmarshal(data, out)
	}
	return nil
}
