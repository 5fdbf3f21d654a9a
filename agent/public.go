package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/etnz/stacker"
	"github.com/etnz/stacker/docs"
	"github.com/etnz/stacker/quote"
	"github.com/etnz/stacker/renderer"
	"github.com/etnz/stacker/store"
	"google.golang.org/genai"
)

// Model is the default model of the experts.
const Model = "gemini-2.5-pro"

// creates the facilitator
func newFacilitator(experts ...*Expert) *Expert {
	return &Expert{
		Name:      "Facilitator",
		ModelName: Model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(experts)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			As a facilitator you are in charge of the conversation and solving the user's request.

			Learn about the expert's skill that you can get from the Tools to ask them questions.
			They are at your service and 100% dedicated to you, they keep context of your previous questions.

			The user is a precious metals stacker. He is here primarily to learn about his stack
			of silver and gold, or about the bullion market.

			Devise a plan of questions to ask to each experts and come up with the best reponse to the user's request.
			Answer in markdown.
		`}}},
		},
		Library: NewLibrary(experts),
	}
}

// NewDealer returns the expert of the bullion market.
func NewDealer(model string) *Expert {
	return &Expert{
		Name: "Dealer",
		Description: `This is an expert bullion dealer,
		very well aware of coins, bars and rounds, of mints and of premiums over spot,
		and of the latest news of the silver and gold markets.
		Ask the Dealer whenever you need recent or grounding information.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{GoogleSearch: &genai.GoogleSearch{}},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			You are a bullion dealer, you can search and find about anything related to
			precious metals: spot prices, mints, products, premiums and market news. You leverage Google Search to
			ground your assertions in a solid truth.
				`}}},
		},
	}
}

// NewKeeper returns the expert of the user's stack.
func NewKeeper(model string, s *Stack) *Expert {
	lib := []Function{s.listHoldings(), s.portfolioMetrics(), s.distribution()}
	return &Expert{
		Name: "Keeper",
		Description: `This is the Keeper of the user's stack. He reads the stack of silver and gold
		and computes its weight, cost, value and distribution.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(lib)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
				You are the keeper of the user's stack of precious metals.
				You know how to use the Tools to extract relevant information about the stack.
				You are part of a team of experts, yours is everything about the user's stack. They might ask
				you questions with approximative language, figure out what they meant.

				This is how the figures are computed:

				` + must(docs.GetTopic("valuation"))}}},
		},
		Library: NewLibrary(lib),
	}
}

// Stack gives the experts read access to the stack of a user.
type Stack struct {
	User   string
	Store  store.Store
	Quoter quote.Quoter
	Now    func() time.Time
}

func (s *Stack) load(ctx context.Context) (stacker.Document, stacker.Quotes, error) {
	doc, err := s.Store.Load(ctx, s.User)
	if err != nil {
		return doc, nil, fmt.Errorf("could not load stack: %w", err)
	}
	// Metals without a quote are left out of the valuation.
	quotes, _ := quote.FetchAll(ctx, s.Quoter, stacker.NewStack(doc.Stack...).Metals())
	return doc, quotes, nil
}

func (s *Stack) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

func (s *Stack) listHoldings() *Func {
	const name = "list_holdings"
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name:        name,
			Description: `list_holdings lists every entry of the stack, newest first, with its metal, category, quantity, weights, purity and purchase.`,
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown table of the holdings.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			doc, err := s.Store.Load(ctx, s.User)
			if err != nil {
				return errorResponse(id, name, err)
			}
			return outputResponse(id, name, renderer.HoldingsMarkdown(doc.Stack))
		},
	}
}

func (s *Stack) portfolioMetrics() *Func {
	const name = "portfolio_metrics"
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name: name,
			Description: `portfolio_metrics values the stack at the current spot prices.
			It returns the total weight, the market value, the change since the last session
			and, per metal, the cost basis, fine weight, current value, unrealized gain or loss, average cost per ounce and return.`,
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"metal": {
						Type:        genai.TypeString,
						Description: "Restrict the metrics to one metal.",
						Enum:        []string{string(stacker.Silver), string(stacker.Gold)},
					},
				},
			},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "The metrics as JSON.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			doc, quotes, err := s.load(ctx)
			if err != nil {
				return errorResponse(id, name, err)
			}
			sum := stacker.NewSummary(s.User, doc, quotes, stacker.ByCategory, s.now())
			if m, ok := args["metal"].(string); ok && m != "" {
				metal, err := stacker.ParseMetal(m)
				if err != nil {
					return errorResponse(id, name, err)
				}
				metrics, ok := sum.Performance[metal]
				if !ok {
					return errorResponse(id, name, fmt.Errorf("no %s price available", metal))
				}
				return jsonResponse(id, name, metrics)
			}
			return jsonResponse(id, name, sum)
		},
	}
}

func (s *Stack) distribution() *Func {
	const name = "distribution"
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name:        name,
			Description: `distribution splits the nominal weight of the stack by category or by metal, in ounces and percent.`,
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"by": {
						Type:        genai.TypeString,
						Description: "The grouping, category by default.",
						Enum:        []string{"category", "type"},
					},
				},
			},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "The shares as JSON, largest first.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			by, _ := args["by"].(string)
			key, ok := stacker.KeyFuncOf(by)
			if !ok {
				return errorResponse(id, name, fmt.Errorf("invalid grouping %q, want category or type", by))
			}
			doc, err := s.Store.Load(ctx, s.User)
			if err != nil {
				return errorResponse(id, name, err)
			}
			return jsonResponse(id, name, stacker.Distribution(doc.Stack, key))
		},
	}
}

func jsonResponse(id, name string, v any) *genai.FunctionResponse {
	data, err := json.Marshal(v)
	if err != nil {
		return errorResponse(id, name, err)
	}
	return outputResponse(id, name, string(data))
}

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}
