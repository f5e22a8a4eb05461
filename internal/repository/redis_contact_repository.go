package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/folio/backend/internal/model"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// NewRedisClient parses a redis:// URL. Connections are opened on demand.
func NewRedisClient(url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	return redis.NewClient(opts), nil
}

// RedisContactRepository appends JSON documents to a Redis list.
// The list preserves insertion order.
type RedisContactRepository struct {
	client redis.UniversalClient
	key    string
}

// NewRedisContactRepository stores documents under the list key.
func NewRedisContactRepository(client redis.UniversalClient, key string) *RedisContactRepository {
	return &RedisContactRepository{client: client, key: key}
}

var _ ContactRepository = (*RedisContactRepository)(nil)

// redisContact is the stored JSON value. The id lives inside the value
// because a list has no keys of its own.
type redisContact struct {
	ID string `json:"id"`
	model.ContactDocument
}

// Insert assigns a uuid and RPUSHes the document.
func (r *RedisContactRepository) Insert(ctx context.Context, doc *model.ContactDocument) (string, error) {
	id := uuid.NewString()
	body, err := json.Marshal(redisContact{ID: id, ContactDocument: *doc})
	if err != nil {
		return "", fmt.Errorf("encoding contact document: %w", err)
	}
	if err := r.client.RPush(ctx, r.key, body).Err(); err != nil {
		return "", err
	}
	return id, nil
}

// FindAll reads the whole list. The embedded id is dropped on decode.
func (r *RedisContactRepository) FindAll(ctx context.Context) ([]*model.ContactDocument, error) {
	values, err := r.client.LRange(ctx, r.key, 0, -1).Result()
	if err != nil {
		return nil, err
	}
	docs := make([]*model.ContactDocument, 0, len(values))
	for _, v := range values {
		var d model.ContactDocument
		if err := json.Unmarshal([]byte(v), &d); err != nil {
			return nil, fmt.Errorf("decoding contact document: %w", err)
		}
		docs = append(docs, &d)
	}
	return docs, nil
}

// Ping checks that the server answers.
func (r *RedisContactRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
