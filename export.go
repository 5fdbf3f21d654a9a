package stacker

import (
	"time"
)

// GuestUser is the user name of exports made without a signed in user.
const GuestUser = "guest"

// Export is the user facing download of a stack.
type Export struct {
	User              string
	ExportedAt        time.Time
	Stack             []Holding
	CurrentSpotPrices Quotes
}

// NewExport creates an export of the stack for user.
func NewExport(user string, s *Stack, quotes Quotes, now time.Time) Export {
	if user == "" {
		user = GuestUser
	}
	return Export{
		User:              user,
		ExportedAt:        now.UTC(),
		Stack:             s.Holdings(),
		CurrentSpotPrices: quotes,
	}
}

// Filename returns the suggested download file name.
func (e Export) Filename() string {
	return "stacker_pro_portfolio_" + e.User + ".json"
}

// MarshalJSON writes {user, exportedAt, stack, currentSpotPrices}.
func (e Export) MarshalJSON() ([]byte, error) {
	stack := e.Stack
	if stack == nil {
		stack = []Holding{}
	}
	var w jsonObjectWriter
	w.Append("user", e.User)
	w.Append("exportedAt", e.ExportedAt.Format(time.RFC3339Nano))
	w.Append("stack", stack)
	w.Append("currentSpotPrices", e.CurrentSpotPrices)
	return w.MarshalJSON()
}
