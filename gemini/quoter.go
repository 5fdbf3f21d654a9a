package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/etnz/stacker"
	"github.com/sirupsen/logrus"
	"google.golang.org/genai"
)

// Quoter fetches spot prices with a Google Search grounded model call, then
// extracts the price with a structured call.
type Quoter struct {
	gen       Generator
	searcher  expert
	extractor expert
	Log       logrus.FieldLogger
	Now       func() time.Time
}

// NewQuoter returns a quoter using model, DefaultModel when empty.
func NewQuoter(gen Generator, model string) *Quoter {
	if model == "" {
		model = DefaultModel
	}
	return &Quoter{
		gen: gen,
		searcher: expert{
			name:  "price search",
			model: model,
			config: &genai.GenerateContentConfig{
				Tools: []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}},
			},
		},
		extractor: expert{
			name:  "price extraction",
			model: model,
			config: &genai.GenerateContentConfig{
				ResponseMIMEType: "application/json",
				ResponseSchema: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"price": {Type: genai.TypeNumber, Description: "Spot price per troy ounce in USD."},
					},
					Required: []string{"price"},
				},
				Temperature: ptr[float32](0),
			},
		},
		Log: logrus.StandardLogger(),
		Now: time.Now,
	}
}

const (
	searchPrompt  = "What is the current live spot price of %s per troy ounce in USD? Provide the exact numeric value."
	extractPrompt = "Extract the numeric %s spot price per troy ounce in USD from this text:\n\n%s"
)

// Quote returns the current spot price of metal, in USD.
func (q *Quoter) Quote(ctx context.Context, metal stacker.Metal) (stacker.Quote, error) {
	_, cand, err := q.searcher.ask(ctx, q.gen, fmt.Sprintf(searchPrompt, metal))
	if err != nil {
		return stacker.Quote{}, err
	}
	answer := text(cand)
	sources := groundingSources(cand)

	_, cand, err = q.extractor.ask(ctx, q.gen, fmt.Sprintf(extractPrompt, metal, answer))
	if err != nil {
		return stacker.Quote{}, err
	}
	var out struct {
		Price float64 `json:"price"`
	}
	if err := json.Unmarshal([]byte(unfence(text(cand))), &out); err != nil {
		return stacker.Quote{}, fmt.Errorf("%s price: %w: %v", metal, ErrUnparsable, err)
	}
	if out.Price <= 0 {
		return stacker.Quote{}, fmt.Errorf("%s price %v: %w", metal, out.Price, ErrUnparsable)
	}

	q.Log.WithFields(logrus.Fields{
		"metal":   metal,
		"price":   out.Price,
		"sources": len(sources),
	}).Debug("spot price fetched")

	return stacker.Quote{
		Price:       out.Price,
		Currency:    stacker.DefaultCurrency,
		LastUpdated: q.Now(),
		Sources:     sources,
	}, nil
}

// groundingSources lists the web pages the answer was grounded on. Chunks
// without an URI are dropped.
func groundingSources(c *genai.Candidate) []stacker.Source {
	sources := []stacker.Source{}
	if c.GroundingMetadata == nil {
		return sources
	}
	for _, chunk := range c.GroundingMetadata.GroundingChunks {
		if chunk == nil || chunk.Web == nil || chunk.Web.URI == "" {
			continue
		}
		title := chunk.Web.Title
		if title == "" {
			title = "Search Source"
		}
		sources = append(sources, stacker.Source{Title: title, URI: chunk.Web.URI})
	}
	return sources
}
