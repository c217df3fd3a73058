package lookup

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// SetMembership is the part of a redis client RedisSet needs.
// *redis.Client and redis.UniversalClient satisfy it.
type SetMembership interface {
	SIsMember(ctx context.Context, key string, member any) *redis.BoolCmd
}

// RedisSet checks values against the members of a redis set.
type RedisSet struct {
	client SetMembership
	key    string
}

// NewRedisSet creates a checker backed by the set stored at key.
func NewRedisSet(client SetMembership, key string) *RedisSet {
	return &RedisSet{client: client, key: key}
}

// Exists reports whether value is a member of the set.
func (s *RedisSet) Exists(ctx context.Context, value string) (bool, error) {
	return s.client.SIsMember(ctx, s.key, value).Result()
}
