// Package agent implements the stack assistant, a team of Gemini experts
// answering questions about the user's stack and the bullion market.
package agent

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"google.golang.org/genai"
)

// Agent is the assistant session: the user talks to a facilitator that asks
// the experts.
type Agent struct {
	w           io.Writer
	in          *bufio.Scanner
	Facilitator *Expert
	Experts     []*Expert
	// Print writes an answer, the raw text by default.
	Print func(w io.Writer, answer string)
}

// New creates an Agent reading questions from r and writing answers to w.
func New(w io.Writer, r io.Reader, experts ...*Expert) *Agent {
	return &Agent{
		w:           w,
		in:          bufio.NewScanner(r),
		Experts:     experts,
		Facilitator: newFacilitator(experts...),
		Print:       func(w io.Writer, answer string) { fmt.Fprintln(w, answer) },
	}
}

// Start opens the chats of the experts and the facilitator.
func (a *Agent) Start(ctx context.Context, chats ChatFactory) error {
	for _, e := range a.Experts {
		if err := e.Start(ctx, chats); err != nil {
			return err
		}
	}
	return a.Facilitator.Start(ctx, chats)
}

const prompt = "assist> "

// Run answers questions until "bye" or the end of the input. prompts are
// asked first, as if typed by the user.
func (a *Agent) Run(ctx context.Context, chats ChatFactory, prompts ...string) error {
	if a.Facilitator.chat == nil {
		if err := a.Start(ctx, chats); err != nil {
			return err
		}
	}
	fmt.Fprintln(a.w, "Welcome to the stacker assistant. Type 'bye' to exit.")

	for {
		fmt.Fprint(a.w, prompt)
		question, ok := a.next(&prompts)
		if !ok {
			fmt.Fprintln(a.w)
			return a.in.Err()
		}
		switch question {
		case "":
			continue
		case "bye":
			return nil
		}

		answer, err := a.Facilitator.Ask(ctx, genai.NewPartFromText(question))
		if err != nil {
			return err
		}
		a.Print(a.w, Text(answer))
	}
}

// next returns the next question, from prompts first, then from the input.
// Questions taken from prompts are echoed.
func (a *Agent) next(prompts *[]string) (string, bool) {
	if len(*prompts) > 0 {
		q := strings.TrimSpace((*prompts)[0])
		*prompts = (*prompts)[1:]
		if q != "" {
			fmt.Fprintln(a.w, q)
		}
		return q, true
	}
	if !a.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(a.in.Text()), true
}
