package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadCatalog(t *testing.T) {
	c, err := LoadCatalog()
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"en", "hi"}, c.Languages())

	v, ok := c.Lookup("en", "Herb Name")
	require.True(t, ok)
	assert.Equal(t, "Herb Name", v)

	v, ok = c.Lookup("hi", "Cancel")
	require.True(t, ok)
	assert.Equal(t, "रद्द करें", v)

	for _, key := range c.Keys("hi") {
		_, ok := c.Lookup("en", key)
		assert.True(t, ok, "hi key %q missing from en", key)
	}
}

func TestCatalog_Missing(t *testing.T) {
	c := NewCatalog()
	c.Merge("en", map[string]string{"a": "a", "b": "b", "c": "c", "d": "d"})
	c.Merge("hi", map[string]string{"a": "अ", "b": "b", "c": ""})

	assert.Equal(t, []string{"b", "c", "d"}, c.Missing("hi"))
	assert.Equal(t, []string{"a", "b", "c", "d"}, c.Missing("ta"))
	assert.Empty(t, c.Missing("en"))
}

func TestCatalog_MergeIsShallow(t *testing.T) {
	c := NewCatalog()
	c.Merge("hi", map[string]string{"a": "1", "b": "2"})
	c.Merge("hi", map[string]string{"b": "3", "c": "4"})

	for k, want := range map[string]string{"a": "1", "b": "3", "c": "4"} {
		got, ok := c.Lookup("hi", k)
		require.True(t, ok)
		assert.Equal(t, want, got)
	}
}

func TestCatalog_EmptyValueIsAbsent(t *testing.T) {
	c := NewCatalog()
	c.Merge("hi", map[string]string{"a": ""})

	_, ok := c.Lookup("hi", "a")
	assert.False(t, ok)
}
