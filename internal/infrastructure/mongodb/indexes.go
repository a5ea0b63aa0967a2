package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// Collection names as constants for consistency.
const (
	CollectionUsers             = "users"
	CollectionVerificationCodes = "verification_codes"
	CollectionRecoveries        = "recoveries"
	CollectionDecks             = "decks"
	CollectionCards             = "cards"
)

// IndexDefinition describes a MongoDB index to be created.
type IndexDefinition struct {
	Collection string
	Keys       bson.D
	Options    *options.IndexOptionsBuilder
}

// EnsureIndexes creates all indexes for the application.
// This function is idempotent - calling it multiple times is safe.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	for _, idx := range GetAllIndexDefinitions() {
		coll := db.Collection(idx.Collection)
		model := mongo.IndexModel{
			Keys:    idx.Keys,
			Options: idx.Options,
		}

		if _, err := coll.Indexes().CreateOne(ctx, model); err != nil {
			return fmt.Errorf("failed to create index on collection %s: %w", idx.Collection, err)
		}
	}

	return nil
}

// GetAllIndexDefinitions returns all index definitions for all collections.
func GetAllIndexDefinitions() []IndexDefinition {
	var indexes []IndexDefinition

	indexes = append(indexes, GetUserIndexes()...)
	indexes = append(indexes, GetVerificationCodeIndexes()...)
	indexes = append(indexes, GetRecoveryIndexes()...)
	indexes = append(indexes, GetDeckIndexes()...)
	indexes = append(indexes, GetCardIndexes()...)

	return indexes
}

// GetUserIndexes returns index definitions for the users collection.
func GetUserIndexes() []IndexDefinition {
	return []IndexDefinition{
		{
			// Primary key - unique user ID
			Collection: CollectionUsers,
			Keys:       bson.D{{Key: "user_id", Value: 1}},
			Options:    options.Index().SetUnique(true).SetName("idx_users_id_unique"),
		},
		{
			// Unique index for email, the lookup key for login and verification
			Collection: CollectionUsers,
			Keys:       bson.D{{Key: "email", Value: 1}},
			Options:    options.Index().SetUnique(true).SetName("idx_users_email_unique"),
		},
		{
			// Index for username search
			Collection: CollectionUsers,
			Keys:       bson.D{{Key: "username", Value: 1}},
			Options:    options.Index().SetName("idx_users_username"),
		},
	}
}

// GetVerificationCodeIndexes returns index definitions for the
// verification_codes collection.
func GetVerificationCodeIndexes() []IndexDefinition {
	return []IndexDefinition{
		{
			// One pending verification per email
			Collection: CollectionVerificationCodes,
			Keys:       bson.D{{Key: "email", Value: 1}},
			Options:    options.Index().SetUnique(true).SetName("idx_verification_codes_email_unique"),
		},
		{
			// TTL cleanup of expired codes. Lock state is still decided in the
			// domain against code_expires_at, the TTL only garbage-collects.
			Collection: CollectionVerificationCodes,
			Keys:       bson.D{{Key: "code_expires_at", Value: 1}},
			Options:    options.Index().SetExpireAfterSeconds(0).SetName("idx_verification_codes_ttl"),
		},
	}
}

// GetRecoveryIndexes returns index definitions for the recoveries collection.
func GetRecoveryIndexes() []IndexDefinition {
	return []IndexDefinition{
		{
			// Unique recovery key
			Collection: CollectionRecoveries,
			Keys:       bson.D{{Key: "recovery_key", Value: 1}},
			Options:    options.Index().SetUnique(true).SetName("idx_recoveries_key_unique"),
		},
		{
			// Latest grant lookup by email
			Collection: CollectionRecoveries,
			Keys:       bson.D{{Key: "email", Value: 1}, {Key: "created_at", Value: -1}},
			Options:    options.Index().SetName("idx_recoveries_email_time"),
		},
		{
			// TTL cleanup of expired grants
			Collection: CollectionRecoveries,
			Keys:       bson.D{{Key: "expires_at", Value: 1}},
			Options:    options.Index().SetExpireAfterSeconds(0).SetName("idx_recoveries_ttl"),
		},
	}
}

// GetDeckIndexes returns index definitions for the decks collection.
func GetDeckIndexes() []IndexDefinition {
	return []IndexDefinition{
		{
			// Primary key - unique deck ID
			Collection: CollectionDecks,
			Keys:       bson.D{{Key: "deck_id", Value: 1}},
			Options:    options.Index().SetUnique(true).SetName("idx_decks_id_unique"),
		},
		{
			// Main index for loading a user's decks
			Collection: CollectionDecks,
			Keys:       bson.D{{Key: "owner_id", Value: 1}, {Key: "created_at", Value: -1}},
			Options:    options.Index().SetName("idx_decks_owner_time"),
		},
		{
			// Index for browsing public decks by language
			Collection: CollectionDecks,
			Keys:       bson.D{{Key: "is_public", Value: 1}, {Key: "language", Value: 1}, {Key: "created_at", Value: -1}},
			Options:    options.Index().SetName("idx_decks_public_language"),
		},
		{
			// Text index for deck name search
			Collection: CollectionDecks,
			Keys:       bson.D{{Key: "name", Value: "text"}},
			Options:    options.Index().SetName("idx_decks_name_text"),
		},
	}
}

// GetCardIndexes returns index definitions for the cards collection.
func GetCardIndexes() []IndexDefinition {
	return []IndexDefinition{
		{
			// Primary key - unique card ID
			Collection: CollectionCards,
			Keys:       bson.D{{Key: "card_id", Value: 1}},
			Options:    options.Index().SetUnique(true).SetName("idx_cards_id_unique"),
		},
		{
			// Main index for loading deck cards (most common query)
			Collection: CollectionCards,
			Keys:       bson.D{{Key: "deck_id", Value: 1}, {Key: "created_at", Value: 1}},
			Options:    options.Index().SetName("idx_cards_deck_time"),
		},
		{
			// Text index for word search within a deck
			Collection: CollectionCards,
			Keys:       bson.D{{Key: "original_word", Value: "text"}, {Key: "translated_word", Value: "text"}},
			Options:    options.Index().SetName("idx_cards_words_text"),
		},
	}
}
