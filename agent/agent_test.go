package agent

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/etnz/stacker"
	"github.com/etnz/stacker/quote"
	"github.com/etnz/stacker/store"
	"google.golang.org/genai"
)

// fakeChat replies with queued contents, and records what it was sent.
type fakeChat struct {
	replies []*genai.Content
	sent    [][]*genai.Part
}

func (f *fakeChat) Send(_ context.Context, parts ...*genai.Part) (*genai.GenerateContentResponse, error) {
	f.sent = append(f.sent, parts)
	if len(f.replies) == 0 {
		return nil, errors.New("no more replies")
	}
	c := f.replies[0]
	f.replies = f.replies[1:]
	return &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{Content: c}}}, nil
}

func chatsOf(chats map[string]*fakeChat) ChatFactory {
	return func(_ context.Context, model string, config *genai.GenerateContentConfig) (Chat, error) {
		// experts are told apart by their system instruction.
		for k, c := range chats {
			if strings.Contains(config.SystemInstruction.Parts[0].Text, k) {
				return c, nil
			}
		}
		return nil, errors.New("unexpected chat")
	}
}

func text(s string) *genai.Content { return genai.NewContentFromText(s, genai.RoleModel) }

func call(name string, args map[string]any) *genai.Content {
	return &genai.Content{Role: genai.RoleModel, Parts: []*genai.Part{{FunctionCall: &genai.FunctionCall{ID: "1", Name: name, Args: args}}}}
}

func testStack(t *testing.T) *Stack {
	t.Helper()
	st, err := store.NewFile(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	now := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	s := stacker.NewStack(
		stacker.NewHolding(stacker.ParsedItem{Name: "American Silver Eagle", OzPerUnit: 1, Quantity: 10, Purity: 1, Category: "coin"}, stacker.Silver, stacker.Purchase{Price: 320}, now),
		stacker.NewHolding(stacker.ParsedItem{Name: "Generic Bar", OzPerUnit: 10, Quantity: 1, Purity: 1, Category: "bar"}, stacker.Silver, stacker.Purchase{}, now),
	)
	if err := st.Save(context.Background(), "joe@example.com", stacker.NewDocument(s, stacker.USD(0), now)); err != nil {
		t.Fatal(err)
	}
	return &Stack{
		User:   "joe@example.com",
		Store:  st,
		Quoter: quote.Fixed{stacker.Silver: {Price: 30, Currency: "USD"}},
		Now:    func() time.Time { return now },
	}
}

func output(t *testing.T, r *genai.FunctionResponse) string {
	t.Helper()
	if e, ok := r.Response["error"]; ok {
		t.Fatalf("%s() error = %v", r.Name, e)
	}
	s, ok := r.Response["output"].(string)
	if !ok {
		t.Fatalf("%s() output is %T, want string", r.Name, r.Response["output"])
	}
	return s
}

func TestKeeperFunctions(t *testing.T) {
	s := testStack(t)
	lib := NewLibrary([]Function{s.listHoldings(), s.portfolioMetrics(), s.distribution()})
	ctx := context.Background()

	list := output(t, lib(ctx, &genai.FunctionCall{Name: "list_holdings"}))
	if !strings.Contains(list, "American Silver Eagle") || !strings.Contains(list, "Generic Bar") {
		t.Errorf("list_holdings() = %q, want both holdings", list)
	}

	var m map[string]any
	if err := json.Unmarshal([]byte(output(t, lib(ctx, &genai.FunctionCall{Name: "portfolio_metrics", Args: map[string]any{"metal": "silver"}}))), &m); err != nil {
		t.Fatal(err)
	}
	if got := m["currentValue"]; got != 600.0 {
		t.Errorf("portfolio_metrics(silver) currentValue = %v, want 600", got)
	}

	if r := lib(ctx, &genai.FunctionCall{Name: "portfolio_metrics", Args: map[string]any{"metal": "gold"}}); r.Response["error"] == nil {
		t.Errorf("portfolio_metrics(gold) = %v, want an error without gold price", r.Response)
	}

	var shares []map[string]any
	if err := json.Unmarshal([]byte(output(t, lib(ctx, &genai.FunctionCall{Name: "distribution", Args: map[string]any{"by": "category"}}))), &shares); err != nil {
		t.Fatal(err)
	}
	if len(shares) != 2 {
		t.Fatalf("distribution() = %v, want 2 shares", shares)
	}

	if r := lib(ctx, &genai.FunctionCall{Name: "distribution", Args: map[string]any{"by": "mint"}}); r.Response["error"] == nil {
		t.Errorf("distribution(mint) = %v, want an error", r.Response)
	}
	if r := lib(ctx, &genai.FunctionCall{Name: "nope"}); r.Response["error"] == nil {
		t.Errorf("nope() = %v, want an error", r.Response)
	}
}

func TestAgent_Run(t *testing.T) {
	s := testStack(t)
	facilitator := &fakeChat{replies: []*genai.Content{
		call("Keeper", map[string]any{"question": "what is in the stack?"}),
		text("You hold eagles and a bar."),
	}}
	keeper := &fakeChat{replies: []*genai.Content{
		call("list_holdings", nil),
		text("10 eagles and 1 bar"),
	}}
	chats := chatsOf(map[string]*fakeChat{
		"As a facilitator":         facilitator,
		"You are the keeper":       keeper,
		"You are a bullion dealer": {},
	})

	var out bytes.Buffer
	a := New(&out, strings.NewReader("what do I have?\nbye\nnever asked\n"), NewDealer(Model), NewKeeper(Model, s))
	if err := a.Run(context.Background(), chats); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if !strings.Contains(out.String(), "You hold eagles and a bar.") {
		t.Errorf("Run() output = %q, want the facilitator answer", out.String())
	}
	if len(facilitator.sent) != 2 {
		t.Fatalf("facilitator received %d messages, want 2", len(facilitator.sent))
	}
	resp := facilitator.sent[1][0].FunctionResponse
	if resp == nil || resp.Response["output"] != "10 eagles and 1 bar" {
		t.Errorf("facilitator got %+v, want the keeper answer", resp)
	}
	if len(keeper.sent) != 2 || keeper.sent[1][0].FunctionResponse == nil || keeper.sent[1][0].FunctionResponse.Name != "list_holdings" {
		t.Errorf("keeper received %v, want the question then the holdings", keeper.sent)
	}
}

func TestAgent_RunEOF(t *testing.T) {
	facilitator := &fakeChat{replies: []*genai.Content{text("Hello stacker.")}}
	chats := chatsOf(map[string]*fakeChat{"As a facilitator": facilitator})

	var out bytes.Buffer
	a := New(&out, strings.NewReader("hi"))
	if err := a.Run(context.Background(), chats); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !strings.Contains(out.String(), "Hello stacker.") {
		t.Errorf("Run() output = %q, want the answer to the last line", out.String())
	}
}

func TestAgent_RunPrompts(t *testing.T) {
	facilitator := &fakeChat{replies: []*genai.Content{text("Silver is up.")}}
	chats := chatsOf(map[string]*fakeChat{"As a facilitator": facilitator})

	var out bytes.Buffer
	a := New(&out, strings.NewReader(""))
	if err := a.Run(context.Background(), chats, "how is silver?", "bye"); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !strings.Contains(out.String(), prompt+"how is silver?\n") {
		t.Errorf("Run() output = %q, want the prompt echoed", out.String())
	}
}

func TestExpert_NotStarted(t *testing.T) {
	e := NewDealer(Model)
	if _, err := e.Ask(context.Background(), genai.NewPartFromText("hi")); err == nil {
		t.Error("Ask() on a stopped expert succeeded, want an error")
	}
}

func TestExpert_CallWithoutQuestion(t *testing.T) {
	e := NewDealer(Model)
	r := e.Call(context.Background(), "1", map[string]any{"question": 3})
	if r.Response["error"] == nil {
		t.Errorf("Call() = %v, want an error", r.Response)
	}
}
