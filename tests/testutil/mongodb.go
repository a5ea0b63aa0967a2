// Package testutil provides shared helpers for integration tests backed
// by throwaway MongoDB and Redis containers.
package testutil

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// MongoDB test configuration constants.
const (
	mongoCtxTimeout                = 10 * time.Second
	mongoPingTimeout               = 2 * time.Second
	mongoPingRetryDelay            = 500 * time.Millisecond
	mongoPingMaxRetries            = 5
	mongoContainerStartupTimeout   = 60 * time.Second
	mongoContainerTerminateTimeout = 5 * time.Second

	// MongoDB caps database names at 63 bytes.
	maxTestDBNameLength = 63
)

var (
	sharedMongo     *MongoContainer
	sharedMongoOnce sync.Once
	sharedMongoErr  error
)

// MongoContainer is a MongoDB container shared by all tests in a binary.
// Each test gets its own database inside it, so a single container is
// enough for the whole run.
type MongoContainer struct {
	Container testcontainers.Container
	URI       string
}

// SharedMongoContainer starts the shared MongoDB container on first use
// and returns it for every subsequent call.
func SharedMongoContainer(ctx context.Context) (*MongoContainer, error) {
	sharedMongoOnce.Do(func() {
		sharedMongo, sharedMongoErr = startMongoContainer(ctx)
	})

	return sharedMongo, sharedMongoErr
}

func startMongoContainer(ctx context.Context) (*MongoContainer, error) {
	req := testcontainers.ContainerRequest{
		Image:        "mongo:8",
		Name:         "metis-test-mongodb", // Required for Reuse mode
		ExposedPorts: []string{"27017/tcp"},
		Env: map[string]string{
			"MONGO_INITDB_ROOT_USERNAME": "admin",
			"MONGO_INITDB_ROOT_PASSWORD": "admin123",
		},
		WaitingFor: wait.ForLog("Waiting for connections").WithStartupTimeout(mongoContainerStartupTimeout),
	}

	cont, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
		Reuse:            true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start MongoDB container: %w", err)
	}

	host, err := cont.Host(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get container host: %w", err)
	}

	port, err := cont.MappedPort(ctx, "27017")
	if err != nil {
		return nil, fmt.Errorf("failed to get container port: %w", err)
	}

	return &MongoContainer{
		Container: cont,
		URI:       fmt.Sprintf("mongodb://admin:admin123@%s", net.JoinHostPort(host, port.Port())),
	}, nil
}

// SetupTestMongoDB returns a database isolated to the calling test.
// The database is dropped and the client disconnected when the test ends.
func SetupTestMongoDB(t *testing.T) *mongo.Database {
	t.Helper()

	_, db := SetupTestMongoDBWithClient(t)
	return db
}

// SetupTestMongoDBWithClient is like SetupTestMongoDB but also returns
// the client, for tests that need session or transaction control.
func SetupTestMongoDBWithClient(t *testing.T) (*mongo.Client, *mongo.Database) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), mongoCtxTimeout)
	defer cancel()

	cont, err := SharedMongoContainer(ctx)
	if err != nil {
		t.Fatalf("failed to get shared MongoDB container: %v", err)
	}

	client, err := mongo.Connect(options.Client().ApplyURI(cont.URI))
	if err != nil {
		t.Fatalf("failed to connect to MongoDB: %v", err)
	}

	if err := pingMongo(client); err != nil {
		t.Fatalf("failed to ping MongoDB: %v", err)
	}

	db := client.Database(testDBName(t.Name()))

	t.Cleanup(func() {
		cleanupCtx, cleanupCancel := context.WithTimeout(context.Background(), mongoCtxTimeout)
		defer cleanupCancel()
		_ = db.Drop(cleanupCtx)
		_ = client.Disconnect(cleanupCtx)
	})

	return client, db
}

func pingMongo(client *mongo.Client) error {
	var err error
	for i := range mongoPingMaxRetries {
		pingCtx, cancel := context.WithTimeout(context.Background(), mongoPingTimeout)
		err = client.Ping(pingCtx, nil)
		cancel()
		if err == nil {
			return nil
		}
		if i < mongoPingMaxRetries-1 {
			time.Sleep(mongoPingRetryDelay)
		}
	}

	return fmt.Errorf("ping failed after %d retries: %w", mongoPingMaxRetries, err)
}

// testDBName derives a per-test database name, hashing names that would
// exceed the MongoDB limit.
func testDBName(testName string) string {
	name := "metis_test_" + testName
	if len(name) > maxTestDBNameLength {
		hash := sha256.Sum256([]byte(testName))
		name = "metis_test_" + testName[:20] + "_" + hex.EncodeToString(hash[:])[:12]
	}

	return name
}

// TerminateSharedMongoContainer stops the shared container. Usually
// called from TestMain; with Reuse enabled the container may be kept
// alive for faster subsequent runs.
func TerminateSharedMongoContainer() {
	if sharedMongo != nil && sharedMongo.Container != nil {
		ctx, cancel := context.WithTimeout(context.Background(), mongoContainerTerminateTimeout)
		defer cancel()
		_ = sharedMongo.Container.Terminate(ctx)
	}
}
