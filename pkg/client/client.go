package client

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
)

// Client is a Go SDK for the content-engine query API
type Client struct {
	baseURL    string
	httpClient *http.Client
	userAgent  string
}

// Option configures the client
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithTimeout sets the client timeout
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithUserAgent sets the User-Agent header sent with every request
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// NewClient creates a new content-engine client
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		userAgent: "content-engine-go-client",
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Problem is a practice problem with its derived taxonomy
type Problem struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Category      string   `json:"category"`
	Categories    []string `json:"categories,omitempty"`
	Difficulty    string   `json:"difficulty"`
	Description   string   `json:"description"`
	EffectiveTags []string `json:"effectiveTags"`
	RouteTags     []string `json:"routeTags"`
	IsDSA         bool     `json:"isDsa"`
	HasConcept    bool     `json:"hasConcept"`
	Href          string   `json:"href"`
}

// Category is a browsable topic with its problem count
type Category struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	DSA          bool   `json:"dsa"`
	ProblemCount int    `json:"problemCount"`
}

// Step is one stage of a concept walkthrough
type Step struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// ConceptAnalysis is the stepwise explanation of one problem
type ConceptAnalysis struct {
	Title      string `json:"title"`
	KeyInsight string `json:"keyInsight"`
	Pattern    string `json:"pattern"`
	Steps      []Step `json:"steps"`
}

// CrossLink points at a related problem or pattern page
type CrossLink struct {
	Type        string `json:"type"`
	ID          string `json:"id"`
	Name        string `json:"name"`
	Href        string `json:"href"`
	Description string `json:"description"`
}

// StageProblem is a problem listed in a learning path stage
type StageProblem struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Difficulty string `json:"difficulty"`
	Href       string `json:"href"`
	HasConcept bool   `json:"hasConcept"`
}

// Stage is one learning path stage
type Stage struct {
	Stage    string         `json:"stage"`
	Problems []StageProblem `json:"problems"`
}

// CoverageMetrics mirrors the baseline counters
type CoverageMetrics struct {
	DSAProblemCount         int      `json:"dsaProblemCount"`
	ProblemConceptCount     int      `json:"problemConceptCount"`
	MappedDSAProblemCount   int      `json:"mappedDsaProblemCount"`
	UnmappedDSAProblemCount int      `json:"unmappedDsaProblemCount"`
	UnmappedDSAProblemIDs   []string `json:"unmappedDsaProblemIds,omitempty"`
}

// Violation is one failed baseline rule
type Violation struct {
	Metric   string `json:"metric"`
	Live     int    `json:"live"`
	Baseline int    `json:"baseline"`
	Rule     string `json:"rule"`
}

// CoverageReport compares live coverage with the baseline
type CoverageReport struct {
	Live       CoverageMetrics `json:"live"`
	Baseline   CoverageMetrics `json:"baseline"`
	Passed     bool            `json:"passed"`
	Violations []Violation     `json:"violations"`
}

// Route is one reachable site page
type Route struct {
	Kind      string `json:"kind"`
	Category  string `json:"category"`
	ProblemID string `json:"problemId"`
	Path      string `json:"path"`
}

// ListOptions contains options for listing problems
type ListOptions struct {
	Tag        string
	Difficulty string
}

// APIError is returned for non-2xx responses
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error: %d %s - %s", e.StatusCode, e.Code, e.Message)
}

// IsNotFound reports whether err is a 404 from the API
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// ListProblems lists problems, optionally filtered by category tag and difficulty
func (c *Client) ListProblems(ctx context.Context, opts ListOptions) ([]Problem, error) {
	query := url.Values{}
	if opts.Tag != "" {
		query.Set("tag", opts.Tag)
	}
	if opts.Difficulty != "" {
		query.Set("difficulty", opts.Difficulty)
	}

	path := "/api/v1/problems"
	if len(query) > 0 {
		path += "?" + query.Encode()
	}

	var data struct {
		Problems []Problem `json:"problems"`
	}
	if err := c.get(ctx, path, &data); err != nil {
		return nil, err
	}
	return data.Problems, nil
}

// GetProblem retrieves a problem by ID
func (c *Client) GetProblem(ctx context.Context, id string) (*Problem, error) {
	var p Problem
	if err := c.get(ctx, "/api/v1/problems/"+url.PathEscape(id), &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// GetConcept retrieves the concept analysis of a problem
func (c *Client) GetConcept(ctx context.Context, problemID string) (*ConceptAnalysis, error) {
	var a ConceptAnalysis
	if err := c.get(ctx, "/api/v1/problems/"+url.PathEscape(problemID)+"/concept", &a); err != nil {
		return nil, err
	}
	return &a, nil
}

// RelatedPatterns lists the pattern pages linked from a problem
func (c *Client) RelatedPatterns(ctx context.Context, problemID string) ([]CrossLink, error) {
	return c.links(ctx, "/api/v1/problems/"+url.PathEscape(problemID)+"/related-patterns")
}

// RelatedProblems lists problems related to a pattern or DSA concept id
func (c *Client) RelatedProblems(ctx context.Context, key string) ([]CrossLink, error) {
	return c.links(ctx, "/api/v1/patterns/"+url.PathEscape(key)+"/related-problems")
}

// ListCategories lists every category with its problem count
func (c *Client) ListCategories(ctx context.Context) ([]Category, error) {
	var data struct {
		Categories []Category `json:"categories"`
	}
	if err := c.get(ctx, "/api/v1/categories", &data); err != nil {
		return nil, err
	}
	return data.Categories, nil
}

// LearningPath retrieves the ordered stages of a DSA concept
func (c *Client) LearningPath(ctx context.Context, conceptID string) ([]Stage, error) {
	var data struct {
		Stages []Stage `json:"stages"`
	}
	if err := c.get(ctx, "/api/v1/dsa-concepts/"+url.PathEscape(conceptID)+"/learning-path", &data); err != nil {
		return nil, err
	}
	return data.Stages, nil
}

// Coverage retrieves live coverage metrics and the baseline check result
func (c *Client) Coverage(ctx context.Context) (*CoverageReport, error) {
	var report CoverageReport
	if err := c.get(ctx, "/api/v1/coverage", &report); err != nil {
		return nil, err
	}
	return &report, nil
}

// Routes lists site routes; kind is "", "problem" or "concept"
func (c *Client) Routes(ctx context.Context, kind string) ([]Route, error) {
	path := "/api/v1/routes"
	if kind != "" {
		path += "?kind=" + url.QueryEscape(kind)
	}

	var data struct {
		Routes []Route `json:"routes"`
	}
	if err := c.get(ctx, path, &data); err != nil {
		return nil, err
	}
	return data.Routes, nil
}

// Health checks if the service is healthy
func (c *Client) Health(ctx context.Context) error {
	return c.get(ctx, "/health", nil)
}

func (c *Client) links(ctx context.Context, path string) ([]CrossLink, error) {
	var data struct {
		Links []CrossLink `json:"links"`
	}
	if err := c.get(ctx, path, &data); err != nil {
		return nil, err
	}
	return data.Links, nil
}

// envelope is the API response wrapper
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// get performs a GET request and decodes the envelope's data into out
func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	resp, status, err := c.doRequest(ctx, http.MethodGet, path)
	if err != nil {
		return err
	}

	var result envelope
	if err := json.Unmarshal(resp, &result); err != nil {
		return fmt.Errorf("failed to unmarshal response: %w", err)
	}

	if !result.Success {
		apiErr := &APIError{StatusCode: status}
		if result.Error != nil {
			apiErr.Code = result.Error.Code
			apiErr.Message = result.Error.Message
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(result.Data, out); err != nil {
		return fmt.Errorf("failed to unmarshal response data: %w", err)
	}
	return nil
}

// doRequest performs an HTTP request and returns the body and status code
func (c *Client) doRequest(ctx context.Context, method, path string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode >= 400 && !strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json") {
		return nil, resp.StatusCode, &APIError{
			StatusCode: resp.StatusCode,
			Code:       "http_error",
			Message:    strings.TrimSpace(string(respBody)),
		}
	}

	return respBody, resp.StatusCode, nil
}
