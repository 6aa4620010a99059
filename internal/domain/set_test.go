package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringSet_AddHas(t *testing.T) {
	s := NewStringSet("a", "b")

	assert.True(t, s.Has("a"))
	assert.False(t, s.Has("c"))

	s.Add("c")
	s.Add("c")
	assert.True(t, s.Has("c"))
	assert.Len(t, s, 3)
}

func TestStringSet_Values_Sorted(t *testing.T) {
	s := NewStringSet("zebra", "apple", "mango")
	assert.Equal(t, []string{"apple", "mango", "zebra"}, s.Values())
}

func TestStringSet_AddAll(t *testing.T) {
	s := NewStringSet("a")
	s.AddAll(NewStringSet("b", "a"))
	assert.Equal(t, []string{"a", "b"}, s.Values())
}

func TestStringSet_JSONRoundTrip(t *testing.T) {
	s := NewStringSet("b", "a")

	data, err := json.Marshal(s)
	require.NoError(t, err)
	assert.Equal(t, `["a","b"]`, string(data))

	var back StringSet
	require.NoError(t, json.Unmarshal(data, &back))
	assert.True(t, back.Has("a"))
	assert.True(t, back.Has("b"))
}

func TestStringSet_MarshalEmpty(t *testing.T) {
	data, err := json.Marshal(StringSet{})
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(data))
}
