package gemini

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/etnz/stacker"
	"google.golang.org/genai"
)

// Entry is a parsed description: the item and the metal it is made of.
type Entry struct {
	stacker.ParsedItem
	Metal stacker.Metal
}

// Parser turns a free text description like "10 Silver Eagles" into a
// structured item.
type Parser struct {
	gen    Generator
	expert expert
}

// NewParser returns a parser using model, DefaultModel when empty.
func NewParser(gen Generator, model string) *Parser {
	if model == "" {
		model = DefaultModel
	}
	return &Parser{
		gen: gen,
		expert: expert{
			name:  "parser",
			model: model,
			config: &genai.GenerateContentConfig{
				ResponseMIMEType: "application/json",
				ResponseSchema:   itemSchema,
			},
		},
	}
}

var itemSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"name":      {Type: genai.TypeString, Description: "Official name of the coin, bar or item."},
		"ozPerUnit": {Type: genai.TypeNumber, Description: "Nominal troy ounces of a single unit."},
		"quantity":  {Type: genai.TypeNumber, Description: "Number of units."},
		"purity":    {Type: genai.TypeNumber, Description: "Fine metal fraction, e.g. 0.999 or 0.9."},
		"category":  {Type: genai.TypeString, Description: "coin, bar, round or junk."},
		"metal":     {Type: genai.TypeString, Enum: []string{string(stacker.Silver), string(stacker.Gold)}},
	},
	Required: []string{"name", "ozPerUnit", "quantity", "purity", "category"},
}

const parsePrompt = `Parse this precious metals stack entry: %q.
Identify the specific coin, bar or item, and whether it is silver or gold.
Estimate the nominal troy ounces per unit and the purity, using standard values
for known bullion (American Silver Eagle is 1 oz at 0.999, a pre-1965 US dime is
0.0723 oz at 0.9, a Gold Maple Leaf is 1 oz at 0.9999).
Return the quantity, the name, the category (coin, bar, round or junk) and the metal.`

// ParseEntry parses description into an item and its metal. The metal
// defaults to silver.
func (p *Parser) ParseEntry(ctx context.Context, description string) (Entry, error) {
	_, cand, err := p.expert.ask(ctx, p.gen, fmt.Sprintf(parsePrompt, description))
	if err != nil {
		return Entry{}, err
	}
	var out struct {
		stacker.ParsedItem
		Metal string `json:"metal"`
	}
	if err := json.Unmarshal([]byte(unfence(text(cand))), &out); err != nil {
		return Entry{}, fmt.Errorf("parsing %q: %w: %v", description, ErrUnparsable, err)
	}
	if out.Name == "" {
		return Entry{}, fmt.Errorf("parsing %q: missing name: %w", description, ErrUnparsable)
	}
	metal, err := stacker.ParseMetal(out.Metal)
	if err != nil {
		metal = stacker.Silver
	}
	return Entry{ParsedItem: out.ParsedItem, Metal: metal}, nil
}

// Parse parses description into an item.
func (p *Parser) Parse(ctx context.Context, description string) (stacker.ParsedItem, error) {
	e, err := p.ParseEntry(ctx, description)
	return e.ParsedItem, err
}
