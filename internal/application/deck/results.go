package deck

import (
	"time"

	domaindeck "github.com/whiteakyloff/metis-back-v2/internal/domain/deck"
)

// View is the deck shape returned to clients.
type View struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Language  string    `json:"language"`
	OwnerID   string    `json:"ownerId"`
	IsPublic  bool      `json:"isPublic"`
	Favourite bool      `json:"favourite"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewView builds a View from a domain deck.
func NewView(d *domaindeck.Deck) View {
	return View{
		ID:        d.ID().String(),
		Name:      d.Name(),
		Language:  d.Language(),
		OwnerID:   d.OwnerID().String(),
		IsPublic:  d.IsPublic(),
		Favourite: d.Favourite(),
		CreatedAt: d.CreatedAt(),
		UpdatedAt: d.UpdatedAt(),
	}
}

// NewViews maps a deck list to views. An empty list stays an empty slice so
// JSON renders [] instead of null.
func NewViews(decks []*domaindeck.Deck) []View {
	views := make([]View, 0, len(decks))
	for _, d := range decks {
		views = append(views, NewView(d))
	}
	return views
}
