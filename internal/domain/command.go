package domain

// CommandAction tags the interpretation of a free-text command, either by the
// backend or by the local fallback parser.
type CommandAction string

const (
	ActionTransfer CommandAction = "transfer"
	ActionExpense  CommandAction = "expense"
	ActionInsights CommandAction = "insights"
)

// CommandResult is the outcome of processing a free-text command. Exactly one
// of the action payloads is populated for a recognized command; an empty
// Action with a Message is the soft fallback for unrecognized input.
type CommandResult struct {
	Action          CommandAction `json:"action,omitempty"`
	Details         string        `json:"details,omitempty"`
	UpdatedBalances *AIBalances   `json:"updatedBalances,omitempty"`
	Expense         *Expense      `json:"expense,omitempty"`
	Insights        string        `json:"insights,omitempty"`
	Message         string        `json:"message,omitempty"`
}

// Recognized reports whether the input matched a known command.
func (r CommandResult) Recognized() bool {
	return r.Action != ""
}
