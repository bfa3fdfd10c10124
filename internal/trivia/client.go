// Package trivia pulls multiple-choice questions from the Open Trivia DB
// and normalizes them into the question shape author-created quizzes use.
package trivia

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const defaultBaseURL = "https://opentdb.com/api.php"

// ErrUnavailable indicates the trivia source answered with a non-zero
// response code (no questions for the requested parameters, rate limiting,
// and so on).
var ErrUnavailable = errors.New("trivia source unavailable")

// RawQuestion is one item as the source returns it: HTML-entity-encoded
// text with the correct answer separated from the three incorrect ones.
type RawQuestion struct {
	Question         string   `json:"question"`
	CorrectAnswer    string   `json:"correct_answer"`
	IncorrectAnswers []string `json:"incorrect_answers"`
}

type apiResponse struct {
	ResponseCode int           `json:"response_code"`
	Results      []RawQuestion `json:"results"`
}

type Client struct {
	HTTPClient *http.Client
	BaseURL    string
}

func NewClient() *Client {
	return &Client{
		HTTPClient: &http.Client{Timeout: 15 * time.Second},
		BaseURL:    defaultBaseURL,
	}
}

// Fetch requests amount multiple-choice questions. Category and difficulty
// are optional; empty or "any" leaves them unconstrained.
func (c *Client) Fetch(ctx context.Context, amount int, category, difficulty string) ([]RawQuestion, error) {
	params := url.Values{}
	params.Set("amount", strconv.Itoa(amount))
	params.Set("type", "multiple")
	if category != "" && category != "any" {
		params.Set("category", category)
	}
	if difficulty != "" && difficulty != "any" {
		params.Set("difficulty", difficulty)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	var payload apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if payload.ResponseCode != 0 {
		return nil, fmt.Errorf("%w: response code %d", ErrUnavailable, payload.ResponseCode)
	}
	return payload.Results, nil
}
