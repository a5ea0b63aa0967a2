package deck

import (
	"time"

	"github.com/whiteakyloff/metis-back-v2/internal/domain/errs"
	"github.com/whiteakyloff/metis-back-v2/internal/domain/uuid"
)

// Deck is a named collection of flashcards owned by a user.
type Deck struct {
	id        uuid.UUID
	name      string
	language  string
	ownerID   uuid.UUID
	isPublic  bool
	favourite bool
	createdAt time.Time
	updatedAt time.Time
}

// NewDeck creates a new private deck.
func NewDeck(name, language string, ownerID uuid.UUID) (*Deck, error) {
	if name == "" {
		return nil, errs.ErrInvalidInput
	}
	if language == "" {
		return nil, errs.ErrInvalidInput
	}
	if ownerID.IsZero() {
		return nil, errs.ErrInvalidInput
	}

	now := time.Now()
	return &Deck{
		id:        uuid.NewUUID(),
		name:      name,
		language:  language,
		ownerID:   ownerID,
		isPublic:  false,
		favourite: false,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// Reconstruct restores a deck from storage.
func Reconstruct(
	id uuid.UUID,
	name, language string,
	ownerID uuid.UUID,
	isPublic, favourite bool,
	createdAt, updatedAt time.Time,
) *Deck {
	return &Deck{
		id:        id,
		name:      name,
		language:  language,
		ownerID:   ownerID,
		isPublic:  isPublic,
		favourite: favourite,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

// ID returns the deck ID.
func (d *Deck) ID() uuid.UUID { return d.id }

// Name returns the deck name.
func (d *Deck) Name() string { return d.name }

// Language returns the language the deck teaches.
func (d *Deck) Language() string { return d.language }

// OwnerID returns the owning user's ID.
func (d *Deck) OwnerID() uuid.UUID { return d.ownerID }

// IsPublic reports whether other users may read the deck.
func (d *Deck) IsPublic() bool { return d.isPublic }

// Favourite reports whether the owner marked the deck as favourite.
func (d *Deck) Favourite() bool { return d.favourite }

// CreatedAt returns the creation time.
func (d *Deck) CreatedAt() time.Time { return d.createdAt }

// UpdatedAt returns the last update time.
func (d *Deck) UpdatedAt() time.Time { return d.updatedAt }

// IsOwnedBy reports whether the given user owns the deck.
func (d *Deck) IsOwnedBy(userID uuid.UUID) bool {
	return d.ownerID == userID
}

// AccessibleBy reports whether the given user may read the deck.
func (d *Deck) AccessibleBy(userID uuid.UUID) bool {
	return d.isPublic || d.IsOwnedBy(userID)
}

// WithDetails returns a copy with a replaced name and language.
func (d *Deck) WithDetails(name, language string) (*Deck, error) {
	if name == "" || language == "" {
		return nil, errs.ErrInvalidInput
	}
	clone := *d
	clone.name = name
	clone.language = language
	clone.updatedAt = time.Now()
	return &clone, nil
}

// WithVisibility returns a copy with a replaced public flag.
func (d *Deck) WithVisibility(isPublic bool) *Deck {
	clone := *d
	clone.isPublic = isPublic
	clone.updatedAt = time.Now()
	return &clone
}

// WithFavourite returns a copy with a replaced favourite flag.
func (d *Deck) WithFavourite(favourite bool) *Deck {
	clone := *d
	clone.favourite = favourite
	clone.updatedAt = time.Now()
	return &clone
}
