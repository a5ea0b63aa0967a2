package deck

import (
	"context"

	domaindeck "github.com/whiteakyloff/metis-back-v2/internal/domain/deck"
	"github.com/whiteakyloff/metis-back-v2/internal/domain/uuid"
)

// PublicDecksFilter narrows a public deck listing.
type PublicDecksFilter struct {
	// Language filters by deck language when non-empty.
	Language string
	Limit    int
	Offset   int
}

// SearchFilter is a name search over decks visible to a user, covering their
// own decks and public ones.
type SearchFilter struct {
	UserID uuid.UUID
	Term   string
}

// Repository persists decks.
// Declared on the consumer side per project guidelines.
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*domaindeck.Deck, error)
	FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domaindeck.Deck, error)
	FindPublic(ctx context.Context, filter PublicDecksFilter) ([]*domaindeck.Deck, error)
	Search(ctx context.Context, filter SearchFilter) ([]*domaindeck.Deck, error)
	Save(ctx context.Context, d *domaindeck.Deck) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// CardRemover cascades a deck deletion to its cards.
type CardRemover interface {
	DeleteByDeck(ctx context.Context, deckID uuid.UUID) error
}

// Localizer resolves failure codes to user-facing text.
type Localizer interface {
	TextByID(ctx context.Context, id string, params map[string]string) string
}
