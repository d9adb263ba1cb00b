package config

import (
	"fmt"
)

type StoreKeyStruct struct{}

func NewStoreKeyStruct() *StoreKeyStruct {
	return &StoreKeyStruct{}
}

// SessionKeyPrefix is the Redis keyspace holding in-flight quiz session documents.
const SessionKeyPrefix = "quiz:session:"

// QuizSessionKey returns the store key for a learner's in-flight quiz on a skill.
// The trailing segment matches the document key format "{learner_id}_{skill_id}".
func (r *StoreKeyStruct) QuizSessionKey(learnerID, skillID int64) string {
	return fmt.Sprintf("%s%d_%d", SessionKeyPrefix, learnerID, skillID)
}

// QuizSessionScanPattern returns the MATCH pattern covering every session document.
func (r *StoreKeyStruct) QuizSessionScanPattern() string {
	return SessionKeyPrefix + "*"
}

var StoreKey = NewStoreKeyStruct()
