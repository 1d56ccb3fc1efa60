package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"clinic-portal/internal/domain/entity"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// ErrSessionNotFound is returned when a session expired or was logged out.
var ErrSessionNotFound = errors.New("session not found")

const (
	RedisSessionKeyPrefix = "session:"

	// Timeout for individual Redis operations
	redisSessionTimeout = 5 * time.Second

	sessionScanCount = 100
)

// SessionStore keeps authenticated sessions server-side. The signed token
// handed to the client only carries the session ID. A session lives for a
// fixed TTL from login, the same lifetime as the token and the cookie.
type SessionStore interface {
	Create(ctx context.Context, sessionID string, principal entity.Principal) error
	Get(ctx context.Context, kind entity.PrincipalKind, principalID int64, sessionID string) (*entity.Principal, error)
	Delete(ctx context.Context, kind entity.PrincipalKind, principalID int64, sessionID string) error
	DeleteAll(ctx context.Context, kind entity.PrincipalKind, principalID int64) error
}

type RedisSessionStore struct {
	redisClient *redis.Client
	log         *logrus.Logger
	ttl         time.Duration
}

func NewRedisSessionStore(redisClient *redis.Client, log *logrus.Logger, ttl time.Duration) *RedisSessionStore {
	return &RedisSessionStore{
		redisClient: redisClient,
		log:         log,
		ttl:         ttl,
	}
}

// SessionKey builds session:<kind>:<principal id>:<session id>.
func SessionKey(kind entity.PrincipalKind, principalID int64, sessionID string) string {
	return fmt.Sprintf("%s%s:%d:%s", RedisSessionKeyPrefix, kind, principalID, sessionID)
}

func (s *RedisSessionStore) Create(ctx context.Context, sessionID string, principal entity.Principal) error {
	ctx, cancel := context.WithTimeout(ctx, redisSessionTimeout)
	defer cancel()

	key := SessionKey(principal.Kind, principal.ID, sessionID)
	_, err := s.redisClient.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, key,
			"kind", string(principal.Kind),
			"id", principal.ID,
			"name", principal.Name,
			"created_at", time.Now().Unix(),
		)
		pipe.Expire(ctx, key, s.ttl)
		return nil
	})
	if err != nil {
		s.log.Warnf("Failed to store session %s: %+v", key, err)
		return err
	}

	return nil
}

func (s *RedisSessionStore) Get(ctx context.Context, kind entity.PrincipalKind, principalID int64, sessionID string) (*entity.Principal, error) {
	ctx, cancel := context.WithTimeout(ctx, redisSessionTimeout)
	defer cancel()

	key := SessionKey(kind, principalID, sessionID)
	fields, err := s.redisClient.HGetAll(ctx, key).Result()
	if err != nil {
		return nil, err
	}

	return parseSession(fields)
}

func (s *RedisSessionStore) Delete(ctx context.Context, kind entity.PrincipalKind, principalID int64, sessionID string) error {
	ctx, cancel := context.WithTimeout(ctx, redisSessionTimeout)
	defer cancel()

	return s.redisClient.Del(ctx, SessionKey(kind, principalID, sessionID)).Err()
}

// DeleteAll drops every session of one principal, e.g. after a password change.
func (s *RedisSessionStore) DeleteAll(ctx context.Context, kind entity.PrincipalKind, principalID int64) error {
	ctx, cancel := context.WithTimeout(ctx, redisSessionTimeout)
	defer cancel()

	pattern := SessionKey(kind, principalID, "*")
	iter := s.redisClient.Scan(ctx, 0, pattern, sessionScanCount).Iterator()

	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}

	if err := s.redisClient.Del(ctx, keys...).Err(); err != nil {
		return err
	}

	s.log.Infof("Revoked %d session(s) of %s %d", len(keys), kind, principalID)
	return nil
}

// parseSession turns an HGETALL reply into a principal. An empty hash means
// the key expired or was deleted.
func parseSession(values map[string]string) (*entity.Principal, error) {
	if len(values) == 0 {
		return nil, ErrSessionNotFound
	}

	id, err := strconv.ParseInt(values["id"], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("malformed session id: %w", err)
	}

	kind := entity.PrincipalKind(values["kind"])
	if !kind.IsValid() {
		return nil, fmt.Errorf("malformed session kind %q", values["kind"])
	}

	return &entity.Principal{Kind: kind, ID: id, Name: values["name"]}, nil
}
