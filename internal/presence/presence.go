package presence

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store caches liveness in Redis with a TTL so the contact list can show
// online/offline without hitting the users table on every poll. The users
// table stays the durable record; this cache only answers "recently seen".
type Store struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

type Entry struct {
	Status   string `json:"status"`
	LastSeen int64  `json:"last_seen"`
}

func NewStore(client *redis.Client, prefix string, ttl time.Duration) *Store {
	return &Store{client: client, prefix: prefix, ttl: ttl}
}

func (s *Store) key(userID int64) string {
	return fmt.Sprintf("%s:presence:%d", s.prefix, userID)
}

// Touch marks a user online. Called on login and on every authenticated
// request that polls a conversation.
func (s *Store) Touch(ctx context.Context, userID int64) error {
	entry := Entry{Status: "online", LastSeen: time.Now().Unix()}
	b, _ := json.Marshal(entry)
	return s.client.Set(ctx, s.key(userID), b, s.ttl).Err()
}

// SetOffline overwrites the entry without a TTL so logout is immediate.
func (s *Store) SetOffline(ctx context.Context, userID int64) error {
	entry := Entry{Status: "offline", LastSeen: time.Now().Unix()}
	b, _ := json.Marshal(entry)
	return s.client.Set(ctx, s.key(userID), b, 0).Err()
}

// Get returns the cached entry, or nil when the key expired or was never
// set (treat as offline).
func (s *Store) Get(ctx context.Context, userID int64) (*Entry, error) {
	b, err := s.client.Get(ctx, s.key(userID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}
	var entry Entry
	if err := json.Unmarshal(b, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}
