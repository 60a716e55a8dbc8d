package domain

// Intent identifies which routing rule handled a turn.
type Intent string

const (
	IntentGreeting      Intent = "greeting"
	IntentResetFocus    Intent = "reset_focus"
	IntentAttribute     Intent = "attribute"
	IntentIdentify      Intent = "identify"
	IntentListPrompt    Intent = "list_prompt"
	IntentListAnswer    Intent = "list_answer"
	IntentComparePrompt Intent = "compare_prompt"
	IntentCompareAnswer Intent = "compare_answer"
	IntentUnknown       Intent = "unknown"
)

// Turn is the outcome of resolving one utterance.
type Turn struct {
	Response string `json:"response"`
	Intent   Intent `json:"intent"`
}
