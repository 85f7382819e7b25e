package util

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetAbsolutePath(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)

	got, err := GetAbsolutePath("data/pokemon.json")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(wd, "data", "pokemon.json"), got)

	abs := filepath.Join(t.TempDir(), "x", "..", "pokemon.json")
	got, err = GetAbsolutePath(abs)
	require.NoError(t, err)
	assert.Equal(t, filepath.Clean(abs), got)
}

func TestPointerHelpers(t *testing.T) {
	assert.Equal(t, "a", *StringPtr("a"))
	assert.Equal(t, 3, *IntPtr(3))
	assert.Equal(t, 1.5, *Float64Ptr(1.5))
	assert.True(t, *BoolPtr(true))
}
