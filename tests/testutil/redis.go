package testutil

import (
	"context"
	"fmt"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/docker/docker/api/types/container"
	"github.com/redis/go-redis/v9"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// Redis test configuration constants.
const (
	redisCtxTimeout                = 10 * time.Second
	redisPingTimeout               = 2 * time.Second
	redisPingRetryDelay            = 500 * time.Millisecond
	redisPingMaxRetries            = 5
	redisContainerStartupTimeout   = 60 * time.Second
	redisContainerTerminateTimeout = 5 * time.Second
	redisContainerMemoryLimit      = 128 * 1024 * 1024
	redisTestPoolSize              = 10
)

var (
	sharedRedis   *RedisContainer
	sharedRedisMu sync.Mutex
)

// RedisContainer is a Redis container shared by all tests in a binary.
// Tests isolate themselves with per-test key prefixes or a FlushDB in
// cleanup, so one container serves the whole run.
type RedisContainer struct {
	Container testcontainers.Container
	Addr      string
}

// SharedRedisContainer starts the shared Redis container on first use.
// A crashed container is detected and replaced on the next call.
func SharedRedisContainer(ctx context.Context) (*RedisContainer, error) {
	sharedRedisMu.Lock()
	defer sharedRedisMu.Unlock()

	if sharedRedis != nil && sharedRedisRunning(ctx) {
		return sharedRedis, nil
	}

	if sharedRedis != nil {
		terminateCtx, cancel := context.WithTimeout(context.Background(), redisContainerTerminateTimeout)
		_ = sharedRedis.Container.Terminate(terminateCtx)
		cancel()
		sharedRedis = nil
	}

	startupCtx, cancel := context.WithTimeout(context.Background(), redisContainerStartupTimeout)
	defer cancel()

	cont, err := startRedisContainer(startupCtx)
	if err != nil {
		return nil, fmt.Errorf("failed to start Redis container: %w", err)
	}
	sharedRedis = cont

	return sharedRedis, nil
}

func sharedRedisRunning(ctx context.Context) bool {
	if sharedRedis == nil || sharedRedis.Container == nil {
		return false
	}

	state, err := sharedRedis.Container.State(ctx)
	return err == nil && state.Running
}

func startRedisContainer(ctx context.Context) (*RedisContainer, error) {
	req := testcontainers.ContainerRequest{
		Image:        "redis:7-alpine",
		ExposedPorts: []string{"6379/tcp"},
		HostConfigModifier: func(hc *container.HostConfig) {
			hc.Memory = redisContainerMemoryLimit
			hc.MemorySwap = redisContainerMemoryLimit
		},
		WaitingFor: wait.ForAll(
			wait.ForLog("Ready to accept connections").WithStartupTimeout(redisContainerStartupTimeout),
			wait.ForListeningPort("6379/tcp").WithStartupTimeout(redisContainerStartupTimeout),
		),
	}

	cont, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start Redis container: %w", err)
	}

	host, err := cont.Host(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get container host: %w", err)
	}

	port, err := cont.MappedPort(ctx, "6379")
	if err != nil {
		return nil, fmt.Errorf("failed to get container port: %w", err)
	}

	return &RedisContainer{
		Container: cont,
		Addr:      net.JoinHostPort(host, port.Port()),
	}, nil
}

// SetupTestRedis returns a Redis client backed by the shared container.
// The database is flushed and the client closed when the test ends.
func SetupTestRedis(t *testing.T) *redis.Client {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), redisCtxTimeout)
	defer cancel()

	cont, err := SharedRedisContainer(ctx)
	if err != nil {
		t.Fatalf("failed to get shared Redis container: %v", err)
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cont.Addr,
		PoolSize: redisTestPoolSize,
	})

	if err := pingRedis(client); err != nil {
		_ = client.Close()
		t.Fatalf("failed to ping Redis: %v", err)
	}

	t.Cleanup(func() {
		cleanupCtx, cleanupCancel := context.WithTimeout(context.Background(), redisCtxTimeout)
		defer cleanupCancel()
		_ = client.FlushDB(cleanupCtx).Err()
		_ = client.Close()
	})

	return client
}

// SetupTestRedisWithPrefix also returns a unique key prefix so parallel
// tests sharing the database do not collide.
func SetupTestRedisWithPrefix(t *testing.T) (*redis.Client, string) {
	t.Helper()

	return SetupTestRedis(t), fmt.Sprintf("test:%s:", t.Name())
}

func pingRedis(client *redis.Client) error {
	var err error
	for i := range redisPingMaxRetries {
		pingCtx, cancel := context.WithTimeout(context.Background(), redisPingTimeout)
		err = client.Ping(pingCtx).Err()
		cancel()
		if err == nil {
			return nil
		}
		if i < redisPingMaxRetries-1 {
			time.Sleep(redisPingRetryDelay)
		}
	}

	return fmt.Errorf("ping failed after %d retries: %w", redisPingMaxRetries, err)
}

// TerminateSharedRedisContainer stops the shared container. Usually
// called from TestMain.
func TerminateSharedRedisContainer() {
	sharedRedisMu.Lock()
	defer sharedRedisMu.Unlock()

	if sharedRedis != nil && sharedRedis.Container != nil {
		ctx, cancel := context.WithTimeout(context.Background(), redisContainerTerminateTimeout)
		defer cancel()
		_ = sharedRedis.Container.Terminate(ctx)
	}
	sharedRedis = nil
}
