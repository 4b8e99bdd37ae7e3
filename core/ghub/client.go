// Package ghub is a minimal GitHub contents-API client. It covers the two
// collaborator roles this app needs: conditional update of a published JSON
// snapshot and hosting of per-item images under stable raw URLs.
package ghub

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

// Client talks to the contents API of a single repo/branch.
type Client struct {
	APIBase string // override in tests; default https://api.github.com
	RawBase string // override in tests; default https://raw.githubusercontent.com
	Owner   string
	Repo    string
	Branch  string
	Token   string

	HTTP *http.Client
}

// NewFromEnv builds a client from GITHUB_OWNER, GITHUB_REPO, GITHUB_BRANCH
// (default "main") and GITHUB_TOKEN.
func NewFromEnv() *Client {
	branch := os.Getenv("GITHUB_BRANCH")
	if branch == "" {
		branch = "main"
	}
	return &Client{
		APIBase: "https://api.github.com",
		RawBase: "https://raw.githubusercontent.com",
		Owner:   os.Getenv("GITHUB_OWNER"),
		Repo:    os.Getenv("GITHUB_REPO"),
		Branch:  branch,
		Token:   os.Getenv("GITHUB_TOKEN"),
		HTTP:    &http.Client{Timeout: 30 * time.Second},
	}
}

// Configured reports whether the client has enough settings to be used.
func (c *Client) Configured() bool {
	return c.Owner != "" && c.Repo != "" && c.Token != ""
}

func (c *Client) contentsURL(path string) string {
	return fmt.Sprintf("%s/repos/%s/%s/contents/%s", c.APIBase, c.Owner, c.Repo, path)
}

// RawURL returns the stable raw URL a pushed file is served from.
func (c *Client) RawURL(path string) string {
	return fmt.Sprintf("%s/%s/%s/%s/%s", c.RawBase, c.Owner, c.Repo, c.Branch, path)
}

func (c *Client) do(req *http.Request) (*http.Response, error) {
	req.Header.Set("Authorization", "token "+c.Token)
	req.Header.Set("Accept", "application/vnd.github+json")
	client := c.HTTP
	if client == nil {
		client = http.DefaultClient
	}
	return client.Do(req)
}

// GetSHA returns the current blob sha for path on the branch, or "" when the
// file does not exist yet.
func (c *Client) GetSHA(ctx context.Context, path string) (string, error) {
	url := c.contentsURL(path) + "?ref=" + c.Branch
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	resp, err := c.do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return "", nil
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("get %s: status %d: %s", path, resp.StatusCode, body)
	}
	var out struct {
		SHA string `json:"sha"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	return out.SHA, nil
}

// PutFile creates or updates path with content, using the current sha as the
// conditional-update token so concurrent external edits are not clobbered.
// Returns the raw URL of the pushed file.
func (c *Client) PutFile(ctx context.Context, path string, content []byte, message string) (string, error) {
	sha, err := c.GetSHA(ctx, path)
	if err != nil {
		return "", err
	}

	payload := map[string]string{
		"message": message,
		"content": base64.StdEncoding.EncodeToString(content),
		"branch":  c.Branch,
	}
	if sha != "" {
		payload["sha"] = sha
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.contentsURL(path), bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		respBody, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("put %s: status %d: %s", path, resp.StatusCode, respBody)
	}
	return c.RawURL(path), nil
}
