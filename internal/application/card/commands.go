package card

import (
	"github.com/whiteakyloff/metis-back-v2/internal/domain/uuid"
)

// CreateCardCommand adds a card to a deck owned by the user.
type CreateCardCommand struct {
	DeckID         uuid.UUID
	UserID         uuid.UUID
	OriginalWord   string
	TranslatedWord string
	Transcription  string
	Note           *string
}

func (c CreateCardCommand) CommandName() string { return "CreateCard" }

// UpdateCardCommand changes a card's content. Only the deck owner may update
// its cards.
type UpdateCardCommand struct {
	CardID         uuid.UUID
	UserID         uuid.UUID
	OriginalWord   string
	TranslatedWord string
	Transcription  string
	Note           *string
}

func (c UpdateCardCommand) CommandName() string { return "UpdateCard" }

// DeleteCardCommand removes a card from its deck.
type DeleteCardCommand struct {
	CardID uuid.UUID
	UserID uuid.UUID
}

func (c DeleteCardCommand) CommandName() string { return "DeleteCard" }

// GetCardQuery fetches one card from a deck the user may see.
type GetCardQuery struct {
	CardID uuid.UUID
	UserID uuid.UUID
}

func (q GetCardQuery) QueryName() string { return "GetCard" }

// ListDeckCardsQuery lists all cards in a deck the user may see.
type ListDeckCardsQuery struct {
	DeckID uuid.UUID
	UserID uuid.UUID
}

func (q ListDeckCardsQuery) QueryName() string { return "ListDeckCards" }

// SearchCardsQuery finds cards in a deck by original or translated word.
type SearchCardsQuery struct {
	DeckID uuid.UUID
	UserID uuid.UUID
	Term   string
}

func (q SearchCardsQuery) QueryName() string { return "SearchCards" }
