package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jwebster45206/legacy-engine/pkg/storage"
	"github.com/jwebster45206/legacy-engine/pkg/world"
	"github.com/redis/go-redis/v9"
)

// RedisStorage implements storage.Storage on Redis. Each record is a JSON
// string under its own key; player history is a list that only grows.
type RedisStorage struct {
	client *redis.Client
	logger *slog.Logger
}

// Ensure RedisStorage implements Storage interface
var _ storage.Storage = (*RedisStorage)(nil)

// NewRedisStorage creates a new Redis storage instance. redisURL may be a
// redis:// URL or a bare host:port address.
func NewRedisStorage(redisURL string, logger *slog.Logger) (*RedisStorage, error) {
	var opts *redis.Options
	if strings.Contains(redisURL, "://") {
		parsed, err := redis.ParseURL(redisURL)
		if err != nil {
			return nil, fmt.Errorf("failed to parse redis URL: %w", err)
		}
		opts = parsed
	} else {
		opts = &redis.Options{Addr: redisURL}
	}

	return &RedisStorage{
		client: redis.NewClient(opts),
		logger: logger,
	}, nil
}

func playerKey(name string) string {
	return "player:" + world.Key(name)
}

func historyKey(name string) string {
	return playerKey(name) + ":history"
}

func placeKey(c world.Coordinates) string {
	return "place:" + c.Key()
}

func npcKey(name string) string {
	return "npc:" + world.Key(name)
}

func itemKey(name string) string {
	return "item:" + world.Key(name)
}

// Health and lifecycle methods

func (r *RedisStorage) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

func (r *RedisStorage) Close() error {
	if err := r.client.Close(); err != nil {
		r.logger.Error("Failed to close Redis connection", "error", err)
		return err
	}
	r.logger.Info("Redis connection closed")
	return nil
}

// WaitForConnection waits for Redis to become available (used during startup)
func (r *RedisStorage) WaitForConnection(ctx context.Context) error {
	maxRetries := 30
	retryDelay := 2 * time.Second

	for i := 0; i < maxRetries; i++ {
		if err := r.Ping(ctx); err != nil {
			r.logger.Debug("Redis not ready yet", "error", err, "attempt", i+1)

			select {
			case <-ctx.Done():
				return fmt.Errorf("context cancelled while waiting for redis: %w", ctx.Err())
			case <-time.After(retryDelay):
				continue
			}
		}

		r.logger.Info("Redis connection established")
		return nil
	}

	return fmt.Errorf("redis did not become available after %d attempts", maxRetries)
}

// Player operations

func (r *RedisStorage) GetPlayer(ctx context.Context, name string) (*world.Player, error) {
	var p world.Player
	found, err := r.getJSON(ctx, playerKey(name), &p)
	if err != nil || !found {
		return nil, err
	}

	history, err := r.client.LRange(ctx, historyKey(name), 0, -1).Result()
	if err != nil {
		r.logger.Error("Failed to load player history", "player", name, "error", err)
		return nil, fmt.Errorf("failed to load player history: %w", err)
	}
	p.History = history
	return &p, nil
}

// SavePlayer writes the player profile. History is seeded from p only when
// the stored list is empty; afterwards it changes only via AppendToHistory.
func (r *RedisStorage) SavePlayer(ctx context.Context, p *world.Player) error {
	if p == nil {
		return errors.New("player cannot be nil")
	}

	profile := *p
	profile.History = nil
	data, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("failed to marshal player: %w", err)
	}

	if err := r.client.Set(ctx, playerKey(p.Name), data, 0).Err(); err != nil {
		r.logger.Error("Failed to save player", "player", p.Name, "error", err)
		return fmt.Errorf("failed to save player: %w", err)
	}

	if len(p.History) == 0 {
		return nil
	}
	n, err := r.client.LLen(ctx, historyKey(p.Name)).Result()
	if err != nil {
		return fmt.Errorf("failed to check player history: %w", err)
	}
	if n > 0 {
		return nil
	}
	if err := r.client.RPush(ctx, historyKey(p.Name), toArgs(p.History)...).Err(); err != nil {
		return fmt.Errorf("failed to seed player history: %w", err)
	}
	return nil
}

func (r *RedisStorage) AppendToHistory(ctx context.Context, name string, entries ...string) error {
	if len(entries) == 0 {
		return nil
	}

	exists, err := r.client.Exists(ctx, playerKey(name)).Result()
	if err != nil {
		return fmt.Errorf("failed to check player: %w", err)
	}
	if exists == 0 {
		return fmt.Errorf("player %q: %w", name, storage.ErrNotFound)
	}

	if err := r.client.RPush(ctx, historyKey(name), toArgs(entries)...).Err(); err != nil {
		r.logger.Error("Failed to append player history", "player", name, "error", err)
		return fmt.Errorf("failed to append player history: %w", err)
	}
	return nil
}

// Place operations

func (r *RedisStorage) GetPlace(ctx context.Context, c world.Coordinates) (*world.Place, error) {
	var p world.Place
	found, err := r.getJSON(ctx, placeKey(c), &p)
	if err != nil || !found {
		return nil, err
	}
	return &p, nil
}

func (r *RedisStorage) SavePlace(ctx context.Context, p *world.Place) error {
	if p == nil {
		return errors.New("place cannot be nil")
	}
	return r.setJSON(ctx, placeKey(p.Coordinates), p)
}

// NPC operations

func (r *RedisStorage) GetNPC(ctx context.Context, name string) (*world.NPC, error) {
	var n world.NPC
	found, err := r.getJSON(ctx, npcKey(name), &n)
	if err != nil || !found {
		return nil, err
	}
	return &n, nil
}

func (r *RedisStorage) SaveNPC(ctx context.Context, n *world.NPC) error {
	if n == nil {
		return errors.New("npc cannot be nil")
	}
	return r.setJSON(ctx, npcKey(n.Name), n)
}

// Item operations

func (r *RedisStorage) GetItem(ctx context.Context, name string) (*world.GameItem, error) {
	var i world.GameItem
	found, err := r.getJSON(ctx, itemKey(name), &i)
	if err != nil || !found {
		return nil, err
	}
	return &i, nil
}

func (r *RedisStorage) SaveItem(ctx context.Context, i *world.GameItem) error {
	if i == nil {
		return errors.New("item cannot be nil")
	}
	return r.setJSON(ctx, itemKey(i.Name), i)
}

func (r *RedisStorage) getJSON(ctx context.Context, key string, v any) (bool, error) {
	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		r.logger.Error("Failed to load record", "key", key, "error", err)
		return false, fmt.Errorf("failed to load %s: %w", key, err)
	}

	if err := json.Unmarshal(data, v); err != nil {
		r.logger.Error("Failed to unmarshal record", "key", key, "error", err)
		return false, fmt.Errorf("failed to unmarshal %s: %w", key, err)
	}
	return true, nil
}

func (r *RedisStorage) setJSON(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", key, err)
	}
	if err := r.client.Set(ctx, key, data, 0).Err(); err != nil {
		r.logger.Error("Failed to save record", "key", key, "error", err)
		return fmt.Errorf("failed to save %s: %w", key, err)
	}
	return nil
}

func toArgs(entries []string) []any {
	args := make([]any, len(entries))
	for i, e := range entries {
		args[i] = e
	}
	return args
}
