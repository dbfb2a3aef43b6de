package internal

import "time"

// SessionRecord identifies one improvement run for the history store.
type SessionRecord struct {
	ID         string    `json:"id"`
	SourceText string    `json:"source_text"`
	SourceLang string    `json:"source_lang"`
	TargetLang string    `json:"target_lang"`
	Service    string    `json:"service"`
	Timestamp  time.Time `json:"timestamp"`
}
