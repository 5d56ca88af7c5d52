// Package kv is the persistence layer. Every backend stores opaque JSON
// documents under string keys.
package kv

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

const (
	UsersKey          = "users"
	CurrentUserKey    = "currentUser"
	customFoodsPrefix = "customFoods-"
	dailyLogPrefix    = "dailyLog-"

	// BarcodeCachePrefix holds cached product lookups shared by all accounts.
	BarcodeCachePrefix = "barcodeCache-"
)

var ErrClosed = errors.New("store is closed")

type Store interface {
	// Get returns ok=false when the key is absent.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	Set(ctx context.Context, key string, value []byte) error
	// Delete is a no-op for absent keys.
	Delete(ctx context.Context, key string) error
	// Keys lists keys starting with prefix in ascending order.
	Keys(ctx context.Context, prefix string) ([]string, error)
	Close() error
}

func CustomFoodsKey(accountID string) string {
	return customFoodsPrefix + accountID
}

func DailyLogKey(accountID, date string) string {
	return dailyLogPrefix + accountID + "-" + date
}

func BarcodeCacheKey(barcode string) string {
	return BarcodeCachePrefix + barcode
}

// DailyLogPrefix matches every daily log of one account.
func DailyLogPrefix(accountID string) string {
	return dailyLogPrefix + accountID + "-"
}

// ParseDailyLogKey splits a daily log key into account id and YYYY-MM-DD
// date. Account ids may contain dashes; the date is always the last 10 bytes.
func ParseDailyLogKey(key string) (accountID, date string, ok bool) {
	rest, found := strings.CutPrefix(key, dailyLogPrefix)
	if !found || len(rest) < len("2006-01-02")+2 {
		return "", "", false
	}
	sep := len(rest) - len("2006-01-02") - 1
	if rest[sep] != '-' {
		return "", "", false
	}
	return rest[:sep], rest[sep+1:], true
}

// ParseCustomFoodsKey returns the account id of a custom foods key.
func ParseCustomFoodsKey(key string) (string, bool) {
	id, found := strings.CutPrefix(key, customFoodsPrefix)
	if !found || id == "" {
		return "", false
	}
	return id, true
}

func GetJSON(ctx context.Context, s Store, key string, dst any) (bool, error) {
	raw, ok, err := s.Get(ctx, key)
	if err != nil {
		return false, fmt.Errorf("read %s: %w", key, err)
	}
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

func SetJSON(ctx context.Context, s Store, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := s.Set(ctx, key, raw); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

// escapeLike escapes LIKE wildcards so a prefix matches literally with
// ESCAPE '\'.
func escapeLike(prefix string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(prefix)
}
