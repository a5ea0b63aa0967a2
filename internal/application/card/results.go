package card

import (
	"time"

	domaincard "github.com/whiteakyloff/metis-back-v2/internal/domain/card"
)

// View is the card shape returned to clients.
type View struct {
	ID             string    `json:"id"`
	DeckID         string    `json:"deckId"`
	OriginalWord   string    `json:"originalWord"`
	TranslatedWord string    `json:"translatedWord"`
	Transcription  string    `json:"transcription,omitempty"`
	Note           *string   `json:"note,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// NewView builds a View from a domain card.
func NewView(c *domaincard.Card) View {
	return View{
		ID:             c.ID().String(),
		DeckID:         c.DeckID().String(),
		OriginalWord:   c.OriginalWord(),
		TranslatedWord: c.TranslatedWord(),
		Transcription:  c.Transcription(),
		Note:           c.Note(),
		CreatedAt:      c.CreatedAt(),
		UpdatedAt:      c.UpdatedAt(),
	}
}

// NewViews maps a card list to views, keeping an empty slice for JSON.
func NewViews(cards []*domaincard.Card) []View {
	views := make([]View, 0, len(cards))
	for _, c := range cards {
		views = append(views, NewView(c))
	}
	return views
}
