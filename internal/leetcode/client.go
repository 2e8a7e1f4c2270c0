// Package leetcode fetches problem details from the public LeetCode GraphQL endpoint.
package leetcode

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
)

const DefaultEndpoint = "https://leetcode.com/graphql"

// ErrNotFound is returned when LeetCode knows no question with the slug.
var ErrNotFound = errors.New("leetcode question not found")

const questionQuery = `query questionData($titleSlug: String!) { question(titleSlug: $titleSlug) { questionFrontendId title titleSlug difficulty isPaidOnly content topicTags { name slug } } }`

// Question holds the fields used to scaffold a problem
type Question struct {
	Number     int
	Title      string
	TitleSlug  string
	Difficulty string
	PaidOnly   bool
	Tags       []string // topic slugs, e.g. "hash-table"
	Statement  string   // plain text
	URL        string
}

// Client talks to the GraphQL endpoint
type Client struct {
	Endpoint   string
	httpClient *http.Client
}

// New creates a client with the given request timeout.
func New(timeout time.Duration) *Client {
	return &Client{
		Endpoint:   DefaultEndpoint,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// GetQuestion retrieves one question by its title slug.
func (c *Client) GetQuestion(ctx context.Context, titleSlug string) (*Question, error) {
	titleSlug = strings.TrimSpace(titleSlug)
	if titleSlug == "" {
		return nil, fmt.Errorf("empty title slug")
	}
	payload := map[string]any{
		"operationName": "questionData",
		"query":         questionQuery,
		"variables":     map[string]string{"titleSlug": titleSlug},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal graphql payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Referer", "https://leetcode.com/problems/"+titleSlug+"/")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("perform request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(data))
	}

	var gqlResp struct {
		Data struct {
			Question *struct {
				QuestionFrontendID string `json:"questionFrontendId"`
				Title              string `json:"title"`
				TitleSlug          string `json:"titleSlug"`
				Difficulty         string `json:"difficulty"`
				IsPaidOnly         bool   `json:"isPaidOnly"`
				Content            string `json:"content"`
				TopicTags          []struct {
					Name string `json:"name"`
					Slug string `json:"slug"`
				} `json:"topicTags"`
			} `json:"question"`
		} `json:"data"`
		Errors []struct {
			Message string `json:"message"`
		} `json:"errors"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&gqlResp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if len(gqlResp.Errors) > 0 && gqlResp.Data.Question == nil {
		return nil, fmt.Errorf("graphql: %s", gqlResp.Errors[0].Message)
	}
	q := gqlResp.Data.Question
	if q == nil || q.TitleSlug == "" {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, titleSlug)
	}

	tags := make([]string, 0, len(q.TopicTags))
	for _, tag := range q.TopicTags {
		if tag.Slug != "" {
			tags = append(tags, tag.Slug)
		} else {
			tags = append(tags, strings.ToLower(strings.ReplaceAll(tag.Name, " ", "-")))
		}
	}

	return &Question{
		Number:     parseInt(q.QuestionFrontendID),
		Title:      q.Title,
		TitleSlug:  q.TitleSlug,
		Difficulty: q.Difficulty,
		PaidOnly:   q.IsPaidOnly,
		Tags:       tags,
		Statement:  HTMLToText(q.Content),
		URL:        fmt.Sprintf("https://leetcode.com/problems/%s/", q.TitleSlug),
	}, nil
}

func parseInt(val string) int {
	n, err := strconv.Atoi(val)
	if err != nil {
		return 0
	}
	return n
}
