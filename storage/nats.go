package storage

import (
	"context"
	"fmt"
	"strings"

	"github.com/nats-io/nats.go/jetstream"
)

// BucketStore is the default bucket name for storefront records.
const BucketStore = "VSTORE_RECORDS"

// KVStore implements Store backed by a NATS JetStream key-value bucket.
// Each record maps to one KV key, so Put gives us record-granularity
// atomicity for free.
type KVStore struct {
	kv jetstream.KeyValue
}

// NewKVStore creates a KVStore on the given JetStream context, creating
// the bucket if it doesn't exist.
func NewKVStore(ctx context.Context, js jetstream.JetStream, bucket string) (*KVStore, error) {
	if bucket == "" {
		bucket = BucketStore
	}
	kv, err := getOrCreateBucket(ctx, js, bucket)
	if err != nil {
		return nil, fmt.Errorf("create records bucket: %w", err)
	}
	return &KVStore{kv: kv}, nil
}

func getOrCreateBucket(ctx context.Context, js jetstream.JetStream, name string) (jetstream.KeyValue, error) {
	kv, err := js.KeyValue(ctx, name)
	if err == nil {
		return kv, nil
	}
	// Bucket doesn't exist, create it
	return js.CreateKeyValue(ctx, jetstream.KeyValueConfig{
		Bucket:      name,
		Description: "V-Store commerce records",
		History:     5, // Keep last 5 revisions
	})
}

// Get returns the current value of the named record.
func (s *KVStore) Get(ctx context.Context, name string) ([]byte, error) {
	entry, err := s.kv.Get(ctx, name)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, &PersistenceError{Op: "get", Name: name, Err: err}
	}
	return entry.Value(), nil
}

// Set replaces the named record with value.
func (s *KVStore) Set(ctx context.Context, name string, value []byte) error {
	if _, err := s.kv.Put(ctx, name, value); err != nil {
		return &PersistenceError{Op: "set", Name: name, Err: err}
	}
	return nil
}

// Delete removes the named record.
func (s *KVStore) Delete(ctx context.Context, name string) error {
	if err := s.kv.Delete(ctx, name); err != nil {
		if isNotFound(err) {
			return nil
		}
		return &PersistenceError{Op: "delete", Name: name, Err: err}
	}
	return nil
}

// isNotFound checks if an error indicates a key was not found.
func isNotFound(err error) bool {
	return err != nil && strings.Contains(err.Error(), "key not found")
}
