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

// ServiceNowClient appends comments to incidents through the Table API
// using basic auth.
type ServiceNowClient struct {
	baseURL    string
	username   string
	password   string
	httpClient *http.Client
}

var _ CommentPoster = (*ServiceNowClient)(nil)

func NewServiceNowClient(baseURL, username, password string) (*ServiceNowClient, error) {
	if err := utils.ValidateExternalBaseURL(baseURL); err != nil {
		return nil, err
	}
	if username == "" || password == "" {
		return nil, fmt.Errorf("servicenow credentials are required")
	}

	return &ServiceNowClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		username:   username,
		password:   password,
		httpClient: newHTTPClient(),
	}, nil
}

func (c *ServiceNowClient) Platform() string {
	return "servicenow"
}

// PostComment appends to the incident's customer-visible comment stream.
// The external key is the incident sys_id.
func (c *ServiceNowClient) PostComment(ctx context.Context, sysID, body string) error {
	payload, err := json.Marshal(map[string]string{"comments": body})
	if err != nil {
		return fmt.Errorf("failed to marshal servicenow comment: %w", err)
	}

	url := fmt.Sprintf("%s/api/now/table/incident/%s", c.baseURL, sysID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create servicenow request: %w", err)
	}

	req.SetBasicAuth(c.username, c.password)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("servicenow request failed: %w", err)
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
