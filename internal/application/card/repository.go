package card

import (
	"context"

	domaincard "github.com/whiteakyloff/metis-back-v2/internal/domain/card"
	domaindeck "github.com/whiteakyloff/metis-back-v2/internal/domain/deck"
	"github.com/whiteakyloff/metis-back-v2/internal/domain/uuid"
)

// SearchFilter is a word search scoped to one deck.
type SearchFilter struct {
	DeckID uuid.UUID
	Term   string
}

// Repository persists cards.
// Declared on the consumer side per project guidelines.
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*domaincard.Card, error)
	FindByDeck(ctx context.Context, deckID uuid.UUID) ([]*domaincard.Card, error)
	Search(ctx context.Context, filter SearchFilter) ([]*domaincard.Card, error)
	Save(ctx context.Context, c *domaincard.Card) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// DeckReader resolves the deck a card operation targets, for access checks.
type DeckReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*domaindeck.Deck, error)
}

// Localizer resolves failure codes to user-facing text.
type Localizer interface {
	TextByID(ctx context.Context, id string, params map[string]string) string
}
