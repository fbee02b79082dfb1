// Package workflowexe is the HTTP client for the external workflow-exe
// ranking service. It is the only collaborator performing real work: resume
// parsing, scoring and ranking all happen upstream.
package workflowexe

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go-talent-sift-backend/internal/domain"
)

// resumeField is the repeated multipart field name for every resume blob.
const resumeField = "resumes"

type Client struct {
	endpoint   string
	httpClient *http.Client
}

func NewClient(endpoint string, timeout time.Duration) *Client {
	return &Client{
		endpoint: endpoint,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// rankPayload is the JSON-encoded "data" part of the multipart body.
type rankPayload struct {
	OrgID          *int64 `json:"org_id,omitempty"`
	ExeName        string `json:"exe_name"`
	WorkflowID     string `json:"workflow_id"`
	JobDescription string `json:"job_description"`
}

type submitResponse struct {
	Message string `json:"message"`
	Data    struct {
		ID     any                 `json:"id"`
		Result []domain.RawRanking `json:"result"`
	} `json:"data"`
}

type lookupResponse struct {
	Message string `json:"message"`
	Data    []struct {
		ID      any                 `json:"id"`
		ExeName string              `json:"exe_name"`
		Result  []domain.RawRanking `json:"result"`
	} `json:"data"`
}

// Rank submits the job description and resume batch for ranking.
// The response is validated at the boundary: a non-2xx status or a body
// lacking the result array fails closed.
func (c *Client) Rank(ctx context.Context, req *domain.RankRequest) (*domain.RankResult, error) {
	payload := rankPayload{
		ExeName:        req.ExeName,
		WorkflowID:     req.WorkflowID,
		JobDescription: req.JobDescription,
	}
	if req.OrgID != "" {
		// The upstream expects a numeric org id; a stale non-numeric value is
		// dropped so the service assigns a fresh one
		if id, err := strconv.ParseInt(req.OrgID, 10, 64); err == nil {
			payload.OrgID = &id
		}
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("workflowexe: encode payload: %w", err)
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	if err := writer.WriteField("data", string(data)); err != nil {
		return nil, fmt.Errorf("workflowexe: write data part: %w", err)
	}
	for _, file := range req.Resumes {
		part, err := writer.CreateFormFile(resumeField, file.Filename)
		if err != nil {
			return nil, fmt.Errorf("workflowexe: create resume part: %w", err)
		}
		if _, err := part.Write(file.Content); err != nil {
			return nil, fmt.Errorf("workflowexe: write resume part: %w", err)
		}
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("workflowexe: close multipart body: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, &body)
	if err != nil {
		return nil, fmt.Errorf("workflowexe: build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("workflowexe: request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("workflowexe: read response: %w", err)
	}

	var decoded submitResponse
	decodeErr := json.Unmarshal(raw, &decoded)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if decodeErr == nil && decoded.Message != "" {
			return nil, fmt.Errorf("workflowexe: %s", decoded.Message)
		}
		return nil, fmt.Errorf("workflowexe: upload failed with status %d", resp.StatusCode)
	}
	if decodeErr != nil {
		return nil, fmt.Errorf("workflowexe: decode response: %w", decodeErr)
	}
	if decoded.Data.Result == nil {
		return nil, fmt.Errorf("workflowexe: response missing result array")
	}

	return &domain.RankResult{
		CaseID:   coerceID(decoded.Data.ID),
		Rankings: decoded.Data.Result,
	}, nil
}

// FetchByCase retrieves a prior submission's ranking list by its case id.
func (c *Client) FetchByCase(ctx context.Context, orgID, workflowID string) (*domain.RankResult, error) {
	query := url.Values{}
	query.Set("org_id", orgID)
	query.Set("workflow_id", workflowID)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("workflowexe: build request: %w", err)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("workflowexe: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("workflowexe: lookup failed with status %d", resp.StatusCode)
	}

	var decoded lookupResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("workflowexe: decode response: %w", err)
	}
	if len(decoded.Data) == 0 || decoded.Data[0].Result == nil {
		return nil, fmt.Errorf("workflowexe: no rankings for case %s: %w", orgID, domain.ErrCaseNotFound)
	}

	return &domain.RankResult{
		CaseID:   coerceID(decoded.Data[0].ID),
		ExeName:  decoded.Data[0].ExeName,
		Rankings: decoded.Data[0].Result,
	}, nil
}

// coerceID renders the upstream id (number or string) as a display string.
func coerceID(v any) string {
	switch id := v.(type) {
	case string:
		return id
	case float64:
		return strconv.FormatInt(int64(id), 10)
	case json.Number:
		return id.String()
	default:
		return ""
	}
}
