// Package kv provides the durable key-value storage used to keep the
// in-progress shipment alive across restarts. Values are stored as JSON.
package kv

import "encoding/json"

// Store is a durable key-value collaborator. Get reports whether the key was
// present and, if so, unmarshals the stored value into dest.
type Store interface {
	Get(key string, dest any) (bool, error)
	Set(key string, value any) error
	Delete(key string) error
}

// Memory is a map-backed Store for tests and ephemeral runs.
type Memory struct {
	values map[string][]byte
}

func NewMemory() *Memory {
	return &Memory{values: make(map[string][]byte)}
}

func (m *Memory) Get(key string, dest any) (bool, error) {
	raw, ok := m.values[key]
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, err
	}
	return true, nil
}

func (m *Memory) Set(key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.values[key] = raw
	return nil
}

func (m *Memory) Delete(key string) error {
	delete(m.values, key)
	return nil
}

// Len returns the number of stored keys.
func (m *Memory) Len() int {
	return len(m.values)
}
