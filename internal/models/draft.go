package models

import "time"

// Draft is one generated email. It is derived from a session's recipients
// and its template pick and is never stored beyond the session.
type Draft struct {
	TemplateIndex  int    `json:"template_index"`
	Subject        string `json:"subject"`
	Body           string `json:"body"`
	Link           string `json:"link"`
	RecipientCount int    `json:"recipient_count"`

	CreatedAt time.Time `json:"created_at"`
}
