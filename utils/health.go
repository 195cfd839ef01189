package utils

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/mongo"
)

// HealthStatus represents current status of external services.
// Mongo is "up", "down" or "disabled" when the in-memory store is used.
type HealthStatus struct {
	Mongo     string    `json:"mongo"`
	Redis     []bool    `json:"redis"`
	CheckedAt time.Time `json:"checkedAt"`
}

var (
	currentHealth HealthStatus
	mu            sync.RWMutex
)

const (
	probeUp       = "up"
	probeDown     = "down"
	probeDisabled = "disabled"
)

// Healthy reports whether the document store answered the last probe.
// Redis state is informational only.
func (h HealthStatus) Healthy() bool {
	return h.Mongo != probeDown
}

// GetHealthStatus returns latest stored health snapshot.
func GetHealthStatus() HealthStatus {
	mu.RLock()
	defer mu.RUnlock()
	return currentHealth
}

func checkHealth(ctx context.Context, redisClients []*redis.Client, mongoClient *mongo.Client) {
	var redisHealth []bool
	for _, client := range redisClients {
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		redisHealth = append(redisHealth, client.Ping(pingCtx).Err() == nil)
		cancel()
	}

	mongoHealth := probeDisabled
	if mongoClient != nil {
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		mongoHealth = probeUp
		if mongoClient.Ping(pingCtx, nil) != nil {
			mongoHealth = probeDown
		}
		cancel()
	}

	mu.Lock()
	currentHealth = HealthStatus{
		Mongo:     mongoHealth,
		Redis:     redisHealth,
		CheckedAt: time.Now(),
	}
	mu.Unlock()
}

// StartHealthMonitor performs periodic health checks and updates in-memory
// state until ctx is cancelled.
func StartHealthMonitor(ctx context.Context, redisClients []*redis.Client, mongoClient *mongo.Client) {
	checkHealth(ctx, redisClients, mongoClient)
	go func() {
		ticker := time.NewTicker(60 * time.Second)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				checkHealth(ctx, redisClients, mongoClient)
			}
		}
	}()
}
