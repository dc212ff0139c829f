package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrUnchanged may be returned by an UpdateCollection callback to skip the
// write without reporting an error.
var ErrUnchanged = errors.New("collection unchanged")

// LoadCollection reads the JSON array stored under key. An absent key is an
// empty collection, and so is a document that does not decode: corrupt data
// is logged and never surfaced to callers.
func LoadCollection[T any](ctx context.Context, s *Store, key string) ([]T, error) {
	data, err := s.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	return decodeCollection[T](ctx, s, key, data), nil
}

// SaveCollection writes items as a JSON array under key
func SaveCollection[T any](ctx context.Context, s *Store, key string, items []T) error {
	data, err := encodeCollection(items)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	return s.Set(ctx, key, data)
}

// UpdateCollection loads the collection under key, passes it to fn and
// stores the result, all inside one transaction.
func UpdateCollection[T any](ctx context.Context, s *Store, key string, fn func(items []T) ([]T, error)) error {
	err := s.Update(ctx, key, func(current []byte) ([]byte, error) {
		items := decodeCollection[T](ctx, s, key, current)

		next, err := fn(items)
		if err != nil {
			return nil, err
		}

		data, err := encodeCollection(next)
		if err != nil {
			return nil, fmt.Errorf("failed to encode %s: %w", key, err)
		}
		return data, nil
	})
	if errors.Is(err, ErrUnchanged) {
		return nil
	}
	return err
}

// LoadDocument decodes a single JSON document under key into v. It reports
// false when the key is absent or the document is corrupt.
func LoadDocument(ctx context.Context, s *Store, key string, v any) (bool, error) {
	data, err := s.Get(ctx, key)
	if err != nil {
		return false, err
	}
	if data == nil {
		return false, nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		s.log.WarnContext(ctx, "ignoring corrupt document", "key", key, "error", err)
		return false, nil
	}
	return true, nil
}

// SaveDocument encodes v as JSON under key
func SaveDocument(ctx context.Context, s *Store, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	return s.Set(ctx, key, data)
}

func decodeCollection[T any](ctx context.Context, s *Store, key string, data []byte) []T {
	items := []T{}
	if len(data) == 0 {
		return items
	}
	if err := json.Unmarshal(data, &items); err != nil {
		s.log.WarnContext(ctx, "ignoring corrupt collection", "key", key, "error", err)
		return []T{}
	}
	if items == nil {
		// a stored JSON null
		items = []T{}
	}
	return items
}

func encodeCollection[T any](items []T) ([]byte, error) {
	if items == nil {
		items = []T{}
	}
	return json.Marshal(items)
}
