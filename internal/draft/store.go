package draft

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
)

// keyNamespace prefixes every draft key so different deployments sharing a
// backend cannot collide.
const keyNamespace = "wadhifa"

// Key builds the storage key for a draft: "wadhifa_{flow}_draft_{entityID}".
// Namespacing by flow kind and entity id keeps two different jobs'
// in-progress applications apart.
func Key(flow, entityID string) string {
	return fmt.Sprintf("%s_%s_draft_%s", keyNamespace, flow, entityID)
}

// Store persists draft payloads as JSON. Storage failures never propagate to
// the caller: Save and Clear degrade to no-ops and Load degrades to "no
// draft", so a broken backend only costs draft support, never the flow.
type Store struct {
	kv KV
}

// NewStore creates a draft store over the given KV backend.
func NewStore(kv KV) *Store {
	return &Store{kv: kv}
}

// Save serializes data and writes it under key. Empty payloads are not
// worth persisting and are skipped.
func (s *Store) Save(ctx context.Context, key string, data any) {
	raw, err := json.Marshal(data)
	if err != nil {
		log.Printf("[draft] failed to marshal draft %s: %v", key, err)
		return
	}
	if len(raw) == 0 || string(raw) == "{}" || string(raw) == "null" {
		return
	}
	if err := s.kv.Set(ctx, key, string(raw)); err != nil {
		log.Printf("[draft] failed to save draft %s: %v", key, err)
	}
}

// Load returns the raw draft JSON for key, or nil when no draft exists or
// the backend is unavailable.
func (s *Store) Load(ctx context.Context, key string) []byte {
	raw, found, err := s.kv.Get(ctx, key)
	if err != nil {
		log.Printf("[draft] failed to load draft %s: %v", key, err)
		return nil
	}
	if !found || raw == "" {
		return nil
	}
	return []byte(raw)
}

// Clear removes the draft for key, if any.
func (s *Store) Clear(ctx context.Context, key string) {
	if err := s.kv.Delete(ctx, key); err != nil {
		log.Printf("[draft] failed to clear draft %s: %v", key, err)
	}
}
