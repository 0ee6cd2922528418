package config

import (
	"fmt"
)

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// UserSessionKey returns the cache key for a user's login session
func (r *CacheKeyStruct) UserSessionKey(userID int) string {
	return fmt.Sprintf("login:%d", userID)
}

// ActiveAttemptKey returns the cache key for a user's active practice attempt
func (r *CacheKeyStruct) ActiveAttemptKey(userID int) string {
	return fmt.Sprintf("user:%d:active_attempt", userID)
}

// AttemptAnswersKey returns the cache key for an attempt's mirrored answers
func (r *CacheKeyStruct) AttemptAnswersKey(attemptID string) string {
	return fmt.Sprintf("attempt:%s:answers", attemptID)
}

// CategoryListKey returns the cache key for the category catalogue
func (r *CacheKeyStruct) CategoryListKey() string {
	return "categories:all"
}

var CacheKey = NewCacheKeyStruct()
