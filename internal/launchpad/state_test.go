package launchpad

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStateStore_SingleUse(t *testing.T) {
	store := newStateStore()

	state := store.Issue()
	require.NotEmpty(t, state)

	assert.True(t, store.Consume(state), "first consume should succeed")
	assert.False(t, store.Consume(state), "replayed state must be rejected")
}

func TestStateStore_UnknownState(t *testing.T) {
	store := newStateStore()

	assert.False(t, store.Consume("never-issued"))
	assert.False(t, store.Consume(""))
}

func TestStateStore_UniqueValues(t *testing.T) {
	store := newStateStore()

	seen := make(map[string]bool)
	for range 100 {
		state := store.Issue()
		require.False(t, seen[state], "state values must be unique")
		seen[state] = true
	}
}

func TestStateStore_Expiry(t *testing.T) {
	store := newStateStore()

	current := time.Now()
	store.now = func() time.Time { return current }

	state := store.Issue()

	// Just before the deadline the state is still valid.
	current = current.Add(stateTTL - time.Second)
	assert.True(t, store.Consume(state))

	state = store.Issue()
	current = current.Add(stateTTL + time.Second)
	assert.False(t, store.Consume(state), "expired state must be rejected")
}

func TestStateStore_PruneOnIssue(t *testing.T) {
	store := newStateStore()

	current := time.Now()
	store.now = func() time.Time { return current }

	for range 10 {
		store.Issue()
	}
	require.Len(t, store.states, 10)

	// All outstanding states expire; the next Issue prunes them.
	current = current.Add(stateTTL + time.Minute)
	store.Issue()

	assert.Len(t, store.states, 1)
}
