package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryGetSetRemove(t *testing.T) {
	m := NewMemory()

	_, ok, err := m.Get("missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, m.Set("k", "v"))
	v, ok, err := m.Get("k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v", v)

	require.NoError(t, m.Set("k", "v2"))
	v, _, _ = m.Get("k")
	assert.Equal(t, "v2", v)

	require.NoError(t, m.Remove("k"))
	_, ok, _ = m.Get("k")
	assert.False(t, ok)

	// Removing an absent key is not an error.
	require.NoError(t, m.Remove("k"))
}

func TestGetJSONRoundTrip(t *testing.T) {
	m := NewMemory()

	type record struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}

	require.NoError(t, SetJSON(m, "rec", record{Name: "alpha", Count: 3}))

	got, ok, err := GetJSON[record](m, "rec")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "alpha", got.Name)
	assert.Equal(t, 3, got.Count)
}

func TestGetJSONMissingKey(t *testing.T) {
	m := NewMemory()

	got, ok, err := GetJSON[[]string](m, "nothing")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, got)
}

func TestGetJSONMalformedValueDiscarded(t *testing.T) {
	m := NewMemory()
	require.NoError(t, m.Set("broken", "{not json"))

	got, ok, err := GetJSON[map[string]int](m, "broken")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, got)

	// Fresh writes succeed over the discarded value.
	require.NoError(t, SetJSON(m, "broken", map[string]int{"a": 1}))
	fixed, ok, err := GetJSON[map[string]int](m, "broken")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 1, fixed["a"])
}
