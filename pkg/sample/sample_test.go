package sample

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testKeys = []string{"0-1", "0-2", "0-3", "1-2", "1-3", "2-3", "3-4", "4-5"}

func TestKeys_Distinct(t *testing.T) {
	for seed := uint64(1); seed <= 50; seed++ {
		got, err := Keys(testKeys, 6, NewRand(seed))
		require.NoError(t, err)
		require.Len(t, got, 6)

		seen := make(map[string]bool)
		for _, k := range got {
			assert.False(t, seen[k], "duplicate key %s with seed %d", k, seed)
			assert.Contains(t, testKeys, k)
			seen[k] = true
		}
	}
}

func TestKeys_Deterministic(t *testing.T) {
	a, err := Keys(testKeys, 4, NewRand(42))
	require.NoError(t, err)

	b, err := Keys(testKeys, 4, NewRand(42))
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestKeys_InputUntouched(t *testing.T) {
	in := []int{1, 2, 3, 4, 5}
	_, err := Keys(in, 5, NewRand(7))
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, in)
}

func TestKeys_All(t *testing.T) {
	got, err := Keys(testKeys, len(testKeys), NewRand(3))
	require.NoError(t, err)
	assert.ElementsMatch(t, testKeys, got)
}

func TestKeys_Errors(t *testing.T) {
	_, err := Keys(testKeys[:5], 6, NewRand(1))
	assert.ErrorIs(t, err, ErrNotEnoughKeys)

	_, err = Keys(testKeys, 0, NewRand(1))
	assert.Error(t, err)

	_, err = Keys([]string{}, 1, nil)
	assert.ErrorIs(t, err, ErrNotEnoughKeys)
}

func TestKeys_NilRand(t *testing.T) {
	got, err := Keys(testKeys, 2, nil)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}
