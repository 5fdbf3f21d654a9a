// Package gemini implements the stacker collaborators backed by Google's Gemini
// models: a natural language parser for holdings and a grounded spot price
// quoter.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// DefaultModel is the model used when none is configured.
const DefaultModel = "gemini-3-flash-preview"

// ErrUnparsable is returned when the model output cannot be used.
var ErrUnparsable = errors.New("unparsable model response")

// Generator is the part of the genai client used by this package.
// *genai.Models implements it.
type Generator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// NewGenerator creates a Gemini client using the environment credentials
// (GOOGLE_API_KEY or GEMINI_API_KEY) and returns its models service.
func NewGenerator(ctx context.Context) (Generator, error) {
	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("cannot create gemini client: %w", err)
	}
	return client.Models, nil
}

// expert is a single purpose model call: a name for error messages, a model
// and its configuration.
type expert struct {
	name   string
	model  string
	config *genai.GenerateContentConfig
}

// ask sends prompt and returns the first candidate of the response.
func (e *expert) ask(ctx context.Context, gen Generator, prompt string) (*genai.GenerateContentResponse, *genai.Candidate, error) {
	resp, err := gen.GenerateContent(ctx, e.model, genai.Text(prompt), e.config)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", e.name, err)
	}
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, nil, fmt.Errorf("%s: no response: %w", e.name, ErrUnparsable)
	}
	return resp, resp.Candidates[0], nil
}

// text concatenates the text parts of a candidate.
func text(c *genai.Candidate) string {
	var b strings.Builder
	for _, p := range c.Content.Parts {
		if p != nil {
			b.WriteString(p.Text)
		}
	}
	return strings.TrimSpace(b.String())
}

// unfence removes a markdown code fence around a JSON answer.
func unfence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimPrefix(s, "json")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

func ptr[T any](v T) *T { return &v }
