// Package remote implements the question-bank and session system-of-record
// contracts against an upstream HTTP/JSON service.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/prepstack/prepstack-backend/internal/assessment"
)

const defaultTimeout = 15 * time.Second

// Client talks to an upstream prep API. It satisfies assessment.Backend,
// assessment.QuestionSource and assessment.CategorySource, so a deployment
// can run entirely against the upstream service instead of local storage.
type Client struct {
	baseURL string
	http    *http.Client
	log     zerolog.Logger
}

// NewClient creates a Client for the given base URL.
func NewClient(baseURL string, log zerolog.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: defaultTimeout},
		log:     log.With().Str("component", "remote_client").Logger(),
	}
}

// FetchQuestions requests count questions for a category. The upstream may
// return fewer when its bank is exhausted.
func (c *Client) FetchQuestions(ctx context.Context, category string, count int) ([]assessment.Question, error) {
	endpoint := fmt.Sprintf("%s/questions?category=%s&count=%s",
		c.baseURL, url.QueryEscape(category), strconv.Itoa(count))

	body, err := c.get(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	raw, err := normalizeList(body)
	if err != nil {
		return nil, fmt.Errorf("questions payload: %w", err)
	}

	var questions []assessment.Question
	if err := json.Unmarshal(raw, &questions); err != nil {
		return nil, fmt.Errorf("decode questions: %w", err)
	}
	if len(questions) > count {
		questions = questions[:count]
	}
	return questions, nil
}

// ListCategories returns the upstream category catalogue.
func (c *Client) ListCategories(ctx context.Context) ([]string, error) {
	body, err := c.get(ctx, c.baseURL+"/categories")
	if err != nil {
		return nil, err
	}

	raw, err := normalizeList(body)
	if err != nil {
		return nil, fmt.Errorf("categories payload: %w", err)
	}

	var categories []string
	if err := json.Unmarshal(raw, &categories); err != nil {
		return nil, fmt.Errorf("decode categories: %w", err)
	}
	return categories, nil
}

// RegisterSession creates a session upstream and returns its ID.
func (c *Client) RegisterSession(ctx context.Context, cfg assessment.SessionConfig) (string, error) {
	var out struct {
		SessionID string `json:"session_id"`
	}
	if err := c.post(ctx, c.baseURL+"/sessions", cfg, &out); err != nil {
		return "", err
	}
	if out.SessionID == "" {
		return "", fmt.Errorf("upstream returned no session id")
	}
	return out.SessionID, nil
}

// SubmitAnswer mirrors one answer upstream. PUT for upsert semantics.
func (c *Client) SubmitAnswer(ctx context.Context, sessionID, questionID, answer string, elapsedSeconds int) error {
	payload := map[string]interface{}{
		"answer":          answer,
		"elapsed_seconds": elapsedSeconds,
	}
	endpoint := fmt.Sprintf("%s/sessions/%s/answers/%s",
		c.baseURL, url.PathEscape(sessionID), url.PathEscape(questionID))
	return c.send(ctx, http.MethodPut, endpoint, payload, nil)
}

// CompleteSession pushes the final summary upstream.
func (c *Client) CompleteSession(ctx context.Context, sessionID string, summary assessment.Summary) error {
	endpoint := fmt.Sprintf("%s/sessions/%s/complete", c.baseURL, url.PathEscape(sessionID))
	return c.post(ctx, endpoint, summary, nil)
}

func (c *Client) get(ctx context.Context, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("upstream returned status %d", resp.StatusCode)
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(resp.Body); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (c *Client) post(ctx context.Context, endpoint string, in, out interface{}) error {
	return c.send(ctx, http.MethodPost, endpoint, in, out)
}

func (c *Client) send(ctx context.Context, method, endpoint string, in, out interface{}) error {
	raw, err := json.Marshal(in)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, bytes.NewReader(raw))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("upstream returned status %d", resp.StatusCode)
	}
	if out == nil {
		return nil
	}

	body, err := normalizeObject(resp.Body)
	if err != nil {
		return err
	}
	return json.Unmarshal(body, out)
}
