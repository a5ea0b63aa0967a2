package mongodb_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/mongo"

	mongodbinfra "github.com/whiteakyloff/metis-back-v2/internal/infrastructure/mongodb"
	"github.com/whiteakyloff/metis-back-v2/tests/testutil"
)

// setupTestCollection returns a collection in a database isolated to the
// calling test, with the application indexes in place. Text search tests
// depend on the text indexes existing.
func setupTestCollection(t *testing.T, name string) *mongo.Collection {
	t.Helper()

	db := testutil.SetupTestMongoDB(t)

	require.NoError(t, mongodbinfra.EnsureIndexes(context.Background(), db))

	return db.Collection(name)
}
