package core

// EntryContext carries ambient metadata alongside a published entry.
type EntryContext struct {
	Weather   string `json:"weather,omitempty"`
	Location  string `json:"location,omitempty"`
	Mood      string `json:"mood,omitempty"`
	Date      string `json:"date"`
	TimeOfDay string `json:"timeOfDay"`
}

// Entry is a journal entry prepared for the content-publishing API.
type Entry struct {
	ID           string        `json:"id,omitempty"`
	Author       string        `json:"author"`
	Content      string        `json:"content"`
	Intent       string        `json:"intent"`
	Title        string        `json:"title,omitempty"`
	Tags         []string      `json:"tags,omitempty"`
	Monetization string        `json:"monetization"`
	Price        float64       `json:"price,omitempty"`
	Visibility   string        `json:"visibility"`
	Context      *EntryContext `json:"context,omitempty"`
	CreatedAt    string        `json:"createdAt"`
	Hash         string        `json:"hash,omitempty"`
}

// ValidationResult is the pre-publish audit verdict.
type ValidationResult struct {
	Valid          bool     `json:"valid"`
	ClarityScore   float64  `json:"clarity_score"`
	IntentDetected string   `json:"intent_detected"`
	Suggestions    []string `json:"suggestions,omitempty"`
	Warnings       []string `json:"warnings,omitempty"`
}

// PublishResult is the outcome of a publish call.
type PublishResult struct {
	Success        bool   `json:"success"`
	EntryID        string `json:"entryId,omitempty"`
	BlockHash      string `json:"blockHash,omitempty"`
	Error          string `json:"error,omitempty"`
	TransactionURL string `json:"transactionUrl,omitempty"`
}

// ChainStats summarizes an author's published entries.
type ChainStats struct {
	TotalEntries  int     `json:"totalEntries"`
	TotalEarnings float64 `json:"totalEarnings"`
	Subscribers   int     `json:"subscribers"`
	Views         int     `json:"views"`
}
