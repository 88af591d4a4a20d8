package lightbox

import (
	"fmt"
	"sort"

	"github.com/slidelab/lightbox/pkg/types"
)

// Metadata is the dict-like view over one entry's key/value metadata.
// Keys and values are text on this surface; typed values written by other
// tooling surface as types.ErrTypeMismatch when read back.
type Metadata struct {
	raw types.Entry
}

// Get returns the value stored under key. A missing key fails with
// types.ErrKeyNotFound; a stored value that is not text fails with
// types.ErrTypeMismatch.
func (m *Metadata) Get(key string) (string, error) {
	value, ok, err := m.raw.MetadataValue(types.TextScalar(key))
	if err != nil {
		return "", err
	}
	if !ok {
		return "", fmt.Errorf("%w: %q", types.ErrKeyNotFound, key)
	}
	return value.AsText()
}

// Set stores value under key, replacing any previous value.
func (m *Metadata) Set(key, value string) error {
	return m.raw.PutMetadataValue(types.TextScalar(key), types.TextScalar(value))
}

// Delete removes key. Deleting an absent key is a no-op.
func (m *Metadata) Delete(key string) error {
	_, err := m.raw.RemoveMetadataValue(types.TextScalar(key))
	return err
}

// Contains reports whether key is present.
func (m *Metadata) Contains(key string) (bool, error) {
	return m.raw.ContainsMetadata(types.TextScalar(key))
}

// Len returns the number of stored pairs.
func (m *Metadata) Len() (int, error) {
	return m.raw.MetadataCount()
}

// Keys returns all keys in insertion order.
func (m *Metadata) Keys() ([]string, error) {
	raw, err := m.raw.MetadataKeys()
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(raw))
	for _, k := range raw {
		text, err := k.AsText()
		if err != nil {
			return nil, err
		}
		keys = append(keys, text)
	}
	return keys, nil
}

// Clear removes every pair.
func (m *Metadata) Clear() error {
	return m.raw.ClearMetadata()
}

// Replace swaps the whole mapping for the given pairs, written in sorted
// key order.
func (m *Metadata) Replace(pairs map[string]string) error {
	if err := m.raw.ClearMetadata(); err != nil {
		return err
	}
	keys := make([]string, 0, len(pairs))
	for k := range pairs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := m.Set(k, pairs[k]); err != nil {
			return err
		}
	}
	return nil
}

// All returns the mapping as a plain map.
func (m *Metadata) All() (map[string]string, error) {
	keys, err := m.Keys()
	if err != nil {
		return nil, err
	}
	pairs := make(map[string]string, len(keys))
	for _, k := range keys {
		value, err := m.Get(k)
		if err != nil {
			return nil, err
		}
		pairs[k] = value
	}
	return pairs, nil
}
