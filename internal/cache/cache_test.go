package cache

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_SaveLoad_roundTrips(t *testing.T) {
	assert := assert.New(t)

	snap, err := NewSnapshot(`<s> ::= "a";`, "s", 2, "lr")
	assert.NoError(err)

	path := filepath.Join(t.TempDir(), "parsegen.cache")
	assert.NoError(Save(path, snap))

	got, err := Load(path)
	assert.NoError(err)
	assert.Equal(snap, got)
}

func Test_Stale_detectsChangedSourceOrParams(t *testing.T) {
	assert := assert.New(t)

	snap, err := NewSnapshot(`<s> ::= "a";`, "s", 2, "lr")
	assert.NoError(err)

	assert.False(snap.Stale(`<s> ::= "a";`, "s", 2, "lr"))
	assert.True(snap.Stale(`<s> ::= "b";`, "s", 2, "lr"))
	assert.True(snap.Stale(`<s> ::= "a";`, "other", 2, "lr"))
	assert.True(snap.Stale(`<s> ::= "a";`, "s", 1, "lr"))
	assert.True(snap.Stale(`<s> ::= "a";`, "s", 2, "earley"))
}

func Test_Load_missingFile_errors(t *testing.T) {
	assert := assert.New(t)

	_, err := Load(filepath.Join(t.TempDir(), "does-not-exist"))
	assert.Error(err)
}
