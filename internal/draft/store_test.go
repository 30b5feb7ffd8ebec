package draft

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// brokenKV fails every operation, simulating quota exhaustion or a
// disabled backend.
type brokenKV struct{}

func (brokenKV) Get(context.Context, string) (string, bool, error) {
	return "", false, errors.New("storage unavailable")
}
func (brokenKV) Set(context.Context, string, string) error { return errors.New("storage unavailable") }
func (brokenKV) Delete(context.Context, string) error      { return errors.New("storage unavailable") }

func TestKey_Format(t *testing.T) {
	assert.Equal(t, "wadhifa_application_draft_job-42", Key("application", "job-42"))
	assert.Equal(t, "wadhifa_review_draft_acme", Key("review", "acme"))
}

func TestKey_DistinctEntities(t *testing.T) {
	assert.NotEqual(t, Key("application", "job-1"), Key("application", "job-2"))
	assert.NotEqual(t, Key("application", "job-1"), Key("review", "job-1"))
}

func TestStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewStore(NewMemoryKV())
	key := Key("application", "job-42")

	store.Save(ctx, key, map[string]string{"full_name": "Layla Hassan", "email": "layla@example.com"})

	raw := store.Load(ctx, key)
	require.NotNil(t, raw)

	var got map[string]string
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, "Layla Hassan", got["full_name"])
	assert.Equal(t, "layla@example.com", got["email"])
}

func TestStore_LoadMissingReturnsNil(t *testing.T) {
	store := NewStore(NewMemoryKV())
	assert.Nil(t, store.Load(context.Background(), Key("application", "nope")))
}

func TestStore_Clear(t *testing.T) {
	ctx := context.Background()
	store := NewStore(NewMemoryKV())
	key := Key("review", "acme")

	store.Save(ctx, key, map[string]int{"rating": 4})
	require.NotNil(t, store.Load(ctx, key))

	store.Clear(ctx, key)
	assert.Nil(t, store.Load(ctx, key))
}

func TestStore_EmptyPayloadNotPersisted(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()
	store := NewStore(kv)
	key := Key("application", "job-1")

	store.Save(ctx, key, struct{}{})
	assert.Nil(t, store.Load(ctx, key))
}

func TestStore_BrokenBackendDegradesQuietly(t *testing.T) {
	ctx := context.Background()
	store := NewStore(brokenKV{})
	key := Key("application", "job-9")

	// None of these may panic or surface an error.
	store.Save(ctx, key, map[string]string{"full_name": "x"})
	assert.Nil(t, store.Load(ctx, key))
	store.Clear(ctx, key)
}

func TestStore_KeysDoNotCollideAcrossFlows(t *testing.T) {
	ctx := context.Background()
	store := NewStore(NewMemoryKV())

	store.Save(ctx, Key("application", "42"), map[string]string{"kind": "application"})
	store.Save(ctx, Key("review", "42"), map[string]string{"kind": "review"})

	var app, rev map[string]string
	require.NoError(t, json.Unmarshal(store.Load(ctx, Key("application", "42")), &app))
	require.NoError(t, json.Unmarshal(store.Load(ctx, Key("review", "42")), &rev))
	assert.Equal(t, "application", app["kind"])
	assert.Equal(t, "review", rev["kind"])
}
