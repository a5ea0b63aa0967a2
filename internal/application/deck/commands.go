package deck

import (
	"github.com/whiteakyloff/metis-back-v2/internal/domain/uuid"
)

// CreateDeckCommand creates a flashcard deck for the authenticated user.
type CreateDeckCommand struct {
	OwnerID  uuid.UUID
	Name     string
	Language string
	IsPublic bool
}

func (c CreateDeckCommand) CommandName() string { return "CreateDeck" }

// UpdateDeckCommand changes a deck's details and visibility. Only the owner
// may update a deck.
type UpdateDeckCommand struct {
	DeckID   uuid.UUID
	UserID   uuid.UUID
	Name     string
	Language string
	IsPublic bool
}

func (c UpdateDeckCommand) CommandName() string { return "UpdateDeck" }

// DeleteDeckCommand removes a deck together with all its cards.
type DeleteDeckCommand struct {
	DeckID uuid.UUID
	UserID uuid.UUID
}

func (c DeleteDeckCommand) CommandName() string { return "DeleteDeck" }

// ToggleFavouriteCommand flips the deck's favourite flag for its owner.
type ToggleFavouriteCommand struct {
	DeckID uuid.UUID
	UserID uuid.UUID
}

func (c ToggleFavouriteCommand) CommandName() string { return "ToggleFavourite" }

// GetDeckQuery fetches one deck the user may see.
type GetDeckQuery struct {
	DeckID uuid.UUID
	UserID uuid.UUID
}

func (q GetDeckQuery) QueryName() string { return "GetDeck" }

// ListUserDecksQuery lists all decks owned by the user.
type ListUserDecksQuery struct {
	UserID uuid.UUID
}

func (q ListUserDecksQuery) QueryName() string { return "ListUserDecks" }

// ListPublicDecksQuery lists public decks, optionally narrowed by language.
type ListPublicDecksQuery struct {
	Language string
	Limit    int
	Offset   int
}

func (q ListPublicDecksQuery) QueryName() string { return "ListPublicDecks" }

// SearchDecksQuery finds decks by name among those the user may see.
type SearchDecksQuery struct {
	UserID uuid.UUID
	Term   string
}

func (q SearchDecksQuery) QueryName() string { return "SearchDecks" }
