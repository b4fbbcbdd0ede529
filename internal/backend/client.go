package backend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"dq-report-service/internal/models"
)

var ErrNotFound = errors.New("upload not found")

// UploadStatus is the portal API's view of an upload while checks run.
type UploadStatus struct {
	UploadID   string `json:"id"`
	Dataset    string `json:"dataset"`
	Country    string `json:"country"`
	UploadDate string `json:"created"`
	DQStatus   string `json:"dq_status"`
}

func (s UploadStatus) Meta() models.UploadMeta {
	return models.UploadMeta{
		UploadID:   s.UploadID,
		Dataset:    s.Dataset,
		Country:    s.Country,
		UploadDate: s.UploadDate,
	}
}

// Client talks to the ingestion portal API that owns uploads and runs the checks.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

func NewClient(baseURL, token string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *Client) GetUploadStatus(ctx context.Context, uploadID string) (UploadStatus, error) {
	var out UploadStatus
	err := c.getJSON(ctx, "/upload/"+url.PathEscape(uploadID), &out)
	if out.UploadID == "" {
		out.UploadID = uploadID
	}
	return out, err
}

func (c *Client) GetDataQualityCheck(ctx context.Context, uploadID string) (*models.DataQualityCheck, error) {
	var out models.DataQualityCheck
	if err := c.getJSON(ctx, "/upload/data_quality_check/"+url.PathEscape(uploadID), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) getJSON(ctx context.Context, path string, dst any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("build request %s: %w", path, err)
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("GET %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("GET %s: status %d: %s", path, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}
