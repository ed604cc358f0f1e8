package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const maxResponseBytes = 32 << 20

var ErrAnalysisFailed = errors.New("analysis failed")

// APIError is a non-success answer from the question endpoint.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

type Answer struct {
	Answer  string
	VideoID string
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type analyzeRequest struct {
	VideoURL string `json:"video_url"`
}

type questionRequest struct {
	VideoURL string `json:"video_url"`
	Question string `json:"question"`
}

type questionResponse struct {
	Answer  json.RawMessage `json:"answer"`
	VideoID string          `json:"video_id"`
	Error   string          `json:"error"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (c *Client) Analyze(ctx context.Context, videoURL string) (*Result, error) {
	status, body, err := c.post(ctx, "/api/analyze", analyzeRequest{VideoURL: videoURL})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAnalysisFailed, err)
	}

	if status < 200 || status > 299 {
		var e errorResponse
		if json.Unmarshal(body, &e) == nil && e.Error != "" {
			return nil, fmt.Errorf("%w: %s", ErrAnalysisFailed, e.Error)
		}
		return nil, fmt.Errorf("%w: backend returned status %d", ErrAnalysisFailed, status)
	}

	result, err := DecodeResult(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAnalysisFailed, err)
	}
	return result, nil
}

func (c *Client) Ask(ctx context.Context, videoURL, question string) (*Answer, error) {
	status, body, err := c.post(ctx, "/api/question", questionRequest{VideoURL: videoURL, Question: question})
	if err != nil {
		return nil, err
	}

	var resp questionResponse
	decodeErr := json.Unmarshal(body, &resp)

	if status < 200 || status > 299 {
		msg := "Failed to get answer"
		if decodeErr == nil && resp.Error != "" {
			msg = resp.Error
		}
		return nil, &APIError{Status: status, Message: msg}
	}
	if decodeErr != nil {
		return nil, fmt.Errorf("decode answer: %w", decodeErr)
	}
	if resp.Error != "" {
		return nil, &APIError{Status: status, Message: resp.Error}
	}

	return &Answer{Answer: answerText(resp.Answer), VideoID: resp.VideoID}, nil
}

func answerText(raw json.RawMessage) string {
	if !present(raw) {
		return ""
	}
	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		return text
	}
	var compact bytes.Buffer
	if err := json.Compact(&compact, raw); err != nil {
		return string(raw)
	}
	return compact.String()
}

func (c *Client) post(ctx context.Context, path string, payload any) (int, []byte, error) {
	reqBody, err := json.Marshal(payload)
	if err != nil {
		return 0, nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(reqBody))
	if err != nil {
		return 0, nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return 0, nil, fmt.Errorf("read response: %w", err)
	}
	return resp.StatusCode, respBody, nil
}
