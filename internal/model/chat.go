package model

// Intent is the closed set of recognized chat intents.
type Intent string

const (
	IntentAskItemInfo     Intent = "ASK_ITEM_INFO"
	IntentSearch          Intent = "SEARCH"
	IntentRecommendBudget Intent = "RECOMMEND_BUDGET"
	IntentBundleRecommend Intent = "BUNDLE_RECOMMEND"
	IntentAskKantinInfo   Intent = "ASK_KANTIN_INFO"
	IntentOutOfScope      Intent = "OUT_OF_SCOPE"
)

// ExtractedIntent is the structured result of rule-based intent extraction.
// All fields except Intent and Limit are optional.
type ExtractedIntent struct {
	Intent     Intent   `json:"intent"`
	KantinID   string   `json:"kantin_id,omitempty"` // empty = across all kantins
	MenuName   string   `json:"menu_name,omitempty"`
	Keyword    string   `json:"keyword,omitempty"`
	Budget     *int64   `json:"budget,omitempty"`
	Categories []string `json:"categories,omitempty"`
	Limit      int      `json:"limit"`
}

// Machine-readable error codes returned on request validation failures.
const (
	CodeInvalidBody     = "body_invalid"
	CodeMissingMessage  = "message_missing"
	CodeEmptyMessage    = "message_empty"
	CodeInvalidKantinID = "kantin_id_invalid"
)

// ChatRequest represents an incoming chat message.
// Message is a pointer so a missing field can be told apart from a blank one.
type ChatRequest struct {
	Message  *string `json:"message"`
	KantinID *string `json:"kantin_id,omitempty"`
}

// ChatDebug carries non-sensitive diagnostics for the caller's UI.
type ChatDebug struct {
	ResultCount int    `json:"result_count"`
	KantinID    string `json:"kantin_id,omitempty"`
	Took        int64  `json:"took_ms"`
}

// ChatResponse is the reply to a chat message. Items and Bundles let the
// caller render cards alongside the natural-language reply.
type ChatResponse struct {
	Reply   string     `json:"reply"`
	Intent  Intent     `json:"intent"`
	Items   []MenuItem `json:"items,omitempty"`
	Bundles []Bundle   `json:"bundles,omitempty"`
	Kantin  *Kantin    `json:"kantin,omitempty"`
	Debug   ChatDebug  `json:"debug"`
}

// ErrorResponse is the body of every 4xx/5xx reply.
type ErrorResponse struct {
	Code  string `json:"code"`
	Error string `json:"error"`
}
