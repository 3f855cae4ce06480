// Package syllabus calls the AI gateway to pull assignments out of raw
// syllabus text. The caller reviews the extracted rows before any of
// them become real assignments.
package syllabus

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/classtrack/classtrack-back/internal/models"
	"github.com/classtrack/classtrack-back/internal/store"
)

const systemPrompt = `You are a syllabus parser. Extract all assignments from the syllabus text and return them as a JSON object with an "assignments" array. Each assignment should have:
- title (string): assignment name
- type (string): one of: "Homework", "Reading", "Quiz", "Project", "Exam", "Coding", "Recitation", "Other"
- dueDate (string): YYYY-MM-DD format
- dueTime (string): optional, HH:MM AM/PM format (e.g., "02:30 PM")
- weight (number): optional, points or percentage
- notes (string): optional, any additional details

Look for keywords like: Assignment, Homework, HW, Quiz, Exam, Midterm, Final, Project, Reading, Lab, Recitation, Due, Submit, Deadline

IMPORTANT: Return ONLY a valid JSON object with this structure:
{
  "assignments": [
    {
      "title": "Homework 1",
      "type": "Homework",
      "dueDate": "2025-11-15",
      "dueTime": "11:59 PM",
      "weight": 10,
      "notes": "Chapter 1-3"
    }
  ]
}

If no assignments found, return: {"assignments": []}`

// ErrorKind distinguishes the failure modes the review UI cares about.
type ErrorKind string

const (
	ErrRateLimited ErrorKind = "rate_limited"
	ErrNoCredits   ErrorKind = "no_credits"
	ErrGeneric     ErrorKind = "generic"
)

// ExtractionError is any failure of the AI call. Never fatal; the
// review flow falls back to manual entry.
type ExtractionError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *ExtractionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("extraction failed (%s): %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("extraction failed (%s): %s", e.Kind, e.Message)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// Request is the extraction call input.
type Request struct {
	SyllabusText string `json:"syllabusText"`
	CourseCode   string `json:"courseCode"`
	CourseTitle  string `json:"courseTitle"`
}

// Client talks to an OpenAI-compatible chat-completions gateway.
type Client struct {
	gatewayURL string
	apiKey     string
	httpClient *http.Client
}

func NewClient(gatewayURL, apiKey string) *Client {
	return &Client{
		gatewayURL: gatewayURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Extract sends the syllabus text to the gateway and parses the
// returned assignment list. An empty list is a valid result meaning
// "nothing found", not an error. Missing syllabus text is rejected as
// a validation failure before the gateway is called.
func (c *Client) Extract(ctx context.Context, req Request) ([]models.ExtractedAssignment, error) {
	if strings.TrimSpace(req.SyllabusText) == "" {
		return nil, &store.ValidationError{Field: "syllabusText", Reason: "must not be empty"}
	}
	if c.apiKey == "" {
		return nil, &ExtractionError{Kind: ErrGeneric, Message: "AI service not configured"}
	}

	userPrompt := fmt.Sprintf("Course: %s - %s\n\nSyllabus text:\n%s",
		req.CourseCode, req.CourseTitle, req.SyllabusText)

	body, err := json.Marshal(chatRequest{
		Model: "google/gemini-2.5-flash",
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
		Temperature: 0.3,
	})
	if err != nil {
		return nil, &ExtractionError{Kind: ErrGeneric, Message: "failed to encode request", Err: err}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.gatewayURL, bytes.NewReader(body))
	if err != nil {
		return nil, &ExtractionError{Kind: ErrGeneric, Message: "failed to build request", Err: err}
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, &ExtractionError{Kind: ErrGeneric, Message: "AI gateway unreachable", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		switch resp.StatusCode {
		case http.StatusTooManyRequests:
			return nil, &ExtractionError{Kind: ErrRateLimited, Message: "rate limit exceeded, please try again later"}
		case http.StatusPaymentRequired:
			return nil, &ExtractionError{Kind: ErrNoCredits, Message: "AI service credits exhausted"}
		}
		return nil, &ExtractionError{
			Kind:    ErrGeneric,
			Message: fmt.Sprintf("AI gateway returned %d: %s", resp.StatusCode, string(detail)),
		}
	}

	var chat chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chat); err != nil {
		return nil, &ExtractionError{Kind: ErrGeneric, Message: "unreadable AI response", Err: err}
	}
	if len(chat.Choices) == 0 || chat.Choices[0].Message.Content == "" {
		return nil, &ExtractionError{Kind: ErrGeneric, Message: "no response from AI"}
	}

	return ParseContent(chat.Choices[0].Message.Content)
}

// ParseContent pulls the assignments array out of the model output,
// tolerating markdown code fences around the JSON.
func ParseContent(content string) ([]models.ExtractedAssignment, error) {
	clean := strings.ReplaceAll(content, "```json", "")
	clean = strings.ReplaceAll(clean, "```", "")
	clean = strings.TrimSpace(clean)

	var parsed struct {
		Assignments []models.ExtractedAssignment `json:"assignments"`
	}
	if err := json.Unmarshal([]byte(clean), &parsed); err != nil {
		return nil, &ExtractionError{Kind: ErrGeneric, Message: "failed to parse AI response", Err: err}
	}
	if parsed.Assignments == nil {
		return []models.ExtractedAssignment{}, nil
	}
	return parsed.Assignments, nil
}
