package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestInvalidatorResource(t *testing.T) {
	c := New()
	for _, key := range []string{
		"/api/articles?published=true",
		"/api/articles/7",
		"/api/articles/mon-article",
		"/api/projects",
	} {
		c.Set(key, []byte("{}"), time.Minute)
	}

	inv := NewInvalidator(c)
	removed := inv.Resource("/api/articles/", 7, "mon-article", "")

	require.Equal(t, 3, removed)
	require.Equal(t, []string{"/api/projects"}, c.Keys())
}

func TestInvalidatorIgnoresEmptyPatterns(t *testing.T) {
	c := New()
	c.Set("/api/services", []byte("{}"), time.Minute)

	require.Zero(t, NewInvalidator(c).Invalidate("", "  "))
	require.Equal(t, 1, c.Size())
}

func TestNilInvalidatorIsNoop(t *testing.T) {
	var inv *Invalidator
	require.Zero(t, inv.Invalidate("/api/services"))
	require.Zero(t, inv.Resource("/api/services", 1))
	inv.Flush()
}

func TestInvalidatorFlush(t *testing.T) {
	c := New()
	c.Set("/api/services", []byte("{}"), time.Minute)
	c.Set("/api/partners", []byte("{}"), time.Minute)

	NewInvalidator(c).Flush()
	require.Zero(t, c.Size())
}
