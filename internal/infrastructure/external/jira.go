package external

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"helpdesk/internal/shared/utils"
)

// JiraClient posts comments to JIRA issues through the v2 REST API
// using basic auth with an API token.
type JiraClient struct {
	baseURL    string
	username   string
	token      string
	httpClient *http.Client
}

var _ CommentPoster = (*JiraClient)(nil)

func NewJiraClient(baseURL, username, token string) (*JiraClient, error) {
	if err := utils.ValidateExternalBaseURL(baseURL); err != nil {
		return nil, err
	}
	if username == "" || token == "" {
		return nil, fmt.Errorf("jira credentials are required")
	}

	return &JiraClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		username:   username,
		token:      token,
		httpClient: newHTTPClient(),
	}, nil
}

func (c *JiraClient) Platform() string {
	return "jira"
}

// PostComment adds a comment to the issue identified by its key,
// e.g. "PROJ-123".
func (c *JiraClient) PostComment(ctx context.Context, issueKey, body string) error {
	payload, err := json.Marshal(map[string]string{"body": body})
	if err != nil {
		return fmt.Errorf("failed to marshal jira comment: %w", err)
	}

	url := fmt.Sprintf("%s/rest/api/2/issue/%s/comment", c.baseURL, issueKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create jira request: %w", err)
	}

	req.SetBasicAuth(c.username, c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("jira request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return &APIError{
			Platform:   c.Platform(),
			StatusCode: resp.StatusCode,
			Body:       string(respBody),
		}
	}

	return nil
}
