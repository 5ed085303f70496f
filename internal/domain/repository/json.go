package repository

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"
)

// GetJSON decodes the value under key into out. found is false when the key is absent.
func GetJSON(ctx context.Context, store KeyValueStore, key string, out any) (found bool, err error) {
	raw, found, err := store.Get(ctx, key)
	if err != nil || !found {
		return false, err
	}

	if err := json.Unmarshal([]byte(raw), out); err != nil {
		return false, errors.Wrapf(err, "decode %s", key)
	}

	return true, nil
}

// SetJSON encodes value and stores it under key.
func SetJSON(ctx context.Context, store KeyValueStore, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return errors.Wrapf(err, "encode %s", key)
	}

	return store.Set(ctx, key, string(raw))
}
