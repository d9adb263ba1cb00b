package sessionstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/skillsprint/skillsprint-backend/internal/config"
	"github.com/skillsprint/skillsprint-backend/internal/model"
)

// RedisStore keeps session documents as tagged JSON values in Redis, one key
// per learner/skill pair. Documents never expire on their own; they live
// until finalization deletes them or the next assembly overwrites them.
type RedisStore struct {
	rdb *redis.Client
}

// NewRedisStore creates a Redis-backed session store.
func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

var _ Store = (*RedisStore)(nil)

// Get returns the session document for key, or ErrNotFound.
func (s *RedisStore) Get(ctx context.Context, key model.SessionKey) ([]model.QuestionAttempt, error) {
	raw, err := s.rdb.Get(ctx, config.StoreKey.QuizSessionKey(key.LearnerID, key.SkillID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, &TransientError{Op: "get", Err: err}
	}

	attempts, err := DecodeDocument(raw)
	if err != nil {
		return nil, fmt.Errorf("session %s: %w", key, err)
	}
	return attempts, nil
}

// Put overwrites the session document for key.
func (s *RedisStore) Put(ctx context.Context, key model.SessionKey, attempts []model.QuestionAttempt) error {
	raw, err := EncodeDocument(attempts)
	if err != nil {
		return fmt.Errorf("session %s: %w", key, err)
	}
	if err := s.rdb.Set(ctx, config.StoreKey.QuizSessionKey(key.LearnerID, key.SkillID), raw, 0).Err(); err != nil {
		return &TransientError{Op: "put", Err: err}
	}
	return nil
}

// Delete removes the session document for key, if any.
func (s *RedisStore) Delete(ctx context.Context, key model.SessionKey) error {
	if err := s.rdb.Del(ctx, config.StoreKey.QuizSessionKey(key.LearnerID, key.SkillID)).Err(); err != nil {
		return &TransientError{Op: "delete", Err: err}
	}
	return nil
}

// ScanForReference walks every session document looking for an attempt on
// (questionID, qtype). O(total sessions), which the keyspace keeps small:
// one document per in-progress learner/skill pair. Keys deleted while the
// scan runs are skipped; the result is best-effort by contract.
func (s *RedisStore) ScanForReference(ctx context.Context, questionID int64, qtype model.QuestionType) (bool, error) {
	iter := s.rdb.Scan(ctx, 0, config.StoreKey.QuizSessionScanPattern(), 64).Iterator()
	for iter.Next(ctx) {
		raw, err := s.rdb.Get(ctx, iter.Val()).Bytes()
		if errors.Is(err, redis.Nil) {
			continue // Deleted between SCAN and GET
		}
		if err != nil {
			return false, &TransientError{Op: "scan", Err: err}
		}

		attempts, err := DecodeDocument(raw)
		if err != nil {
			continue // A document we cannot read cannot reference the question
		}
		for _, a := range attempts {
			if a.QuestionID == questionID && a.Type == qtype {
				return true, nil
			}
		}
	}
	if err := iter.Err(); err != nil {
		return false, &TransientError{Op: "scan", Err: err}
	}
	return false, nil
}
