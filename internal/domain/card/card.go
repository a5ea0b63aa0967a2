package card

import (
	"time"

	"github.com/whiteakyloff/metis-back-v2/internal/domain/errs"
	"github.com/whiteakyloff/metis-back-v2/internal/domain/uuid"
)

// Card is a single flashcard belonging to a deck.
type Card struct {
	id             uuid.UUID
	deckID         uuid.UUID
	originalWord   string
	translatedWord string
	transcription  string
	note           *string
	createdAt      time.Time
	updatedAt      time.Time
}

// NewCard creates a new flashcard in the given deck.
func NewCard(deckID uuid.UUID, originalWord, translatedWord, transcription string, note *string) (*Card, error) {
	if deckID.IsZero() {
		return nil, errs.ErrInvalidInput
	}
	if originalWord == "" || translatedWord == "" {
		return nil, errs.ErrInvalidInput
	}

	now := time.Now()
	return &Card{
		id:             uuid.NewUUID(),
		deckID:         deckID,
		originalWord:   originalWord,
		translatedWord: translatedWord,
		transcription:  transcription,
		note:           note,
		createdAt:      now,
		updatedAt:      now,
	}, nil
}

// Reconstruct restores a card from storage.
func Reconstruct(
	id, deckID uuid.UUID,
	originalWord, translatedWord, transcription string,
	note *string,
	createdAt, updatedAt time.Time,
) *Card {
	return &Card{
		id:             id,
		deckID:         deckID,
		originalWord:   originalWord,
		translatedWord: translatedWord,
		transcription:  transcription,
		note:           note,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
	}
}

// ID returns the card ID.
func (c *Card) ID() uuid.UUID { return c.id }

// DeckID returns the owning deck's ID.
func (c *Card) DeckID() uuid.UUID { return c.deckID }

// OriginalWord returns the word in the source language.
func (c *Card) OriginalWord() string { return c.originalWord }

// TranslatedWord returns the translation.
func (c *Card) TranslatedWord() string { return c.translatedWord }

// Transcription returns the phonetic transcription, may be empty.
func (c *Card) Transcription() string { return c.transcription }

// Note returns the optional study note.
func (c *Card) Note() *string { return c.note }

// CreatedAt returns the creation time.
func (c *Card) CreatedAt() time.Time { return c.createdAt }

// UpdatedAt returns the last update time.
func (c *Card) UpdatedAt() time.Time { return c.updatedAt }

// WithContent returns a copy with replaced words and transcription.
func (c *Card) WithContent(originalWord, translatedWord, transcription string) (*Card, error) {
	if originalWord == "" || translatedWord == "" {
		return nil, errs.ErrInvalidInput
	}
	clone := *c
	clone.originalWord = originalWord
	clone.translatedWord = translatedWord
	clone.transcription = transcription
	clone.updatedAt = time.Now()
	return &clone, nil
}

// WithNote returns a copy with a replaced note.
func (c *Card) WithNote(note *string) *Card {
	clone := *c
	clone.note = note
	clone.updatedAt = time.Now()
	return &clone
}
