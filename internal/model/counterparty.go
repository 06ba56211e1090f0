package model

// LocalizedText holds one string per supported locale.
type LocalizedText struct {
	Arabic  string `json:"ar"`
	English string `json:"en"`
	Urdu    string `json:"ur"`
}

// In returns the text for the given locale, falling back to English.
func (t LocalizedText) In(locale Locale) string {
	switch locale {
	case LocaleArabic:
		if t.Arabic != "" {
			return t.Arabic
		}
	case LocaleUrdu:
		if t.Urdu != "" {
			return t.Urdu
		}
	}
	return t.English
}

// Counterparty is a human the user can open a one-to-one thread with,
// e.g. a teacher from a student's perspective.
type Counterparty struct {
	ID      string        `json:"id"`
	Name    LocalizedText `json:"name"`
	Subject LocalizedText `json:"subject"`

	// Presentation hints. IsOnline reflects the counterparty's own
	// connectivity, not ours; UnreadCount mirrors the counter store
	// entry for this thread and is never the source of truth.
	IsOnline    bool `json:"is_online"`
	UnreadCount int  `json:"unread_count"`
}

// ListCounterpartiesResponse is the response for listing counterparties.
type ListCounterpartiesResponse struct {
	Counterparties []Counterparty `json:"counterparties"`
	Total          int            `json:"total"`
}
