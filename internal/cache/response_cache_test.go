package cache

import (
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	f.now = f.now.Add(d)
	f.mu.Unlock()
}

func TestGenerateKeyIsOrderIndependent(t *testing.T) {
	a, err := url.ParseQuery("b=2&a=1")
	require.NoError(t, err)
	b, err := url.ParseQuery("a=1&b=2")
	require.NoError(t, err)

	require.Equal(t, "/api/articles?a=1&b=2", GenerateKey("/api/articles", a))
	require.Equal(t, GenerateKey("/api/articles", a), GenerateKey("/api/articles", b))
}

func TestGenerateKeyBarePath(t *testing.T) {
	require.Equal(t, "/api/services", GenerateKey("/api/services", nil))
	require.Equal(t, "/api/services", GenerateKey("/api/services", url.Values{}))
}

func TestGenerateKeyRepeatedValues(t *testing.T) {
	params := url.Values{"tag": {"web", "mobile"}, "category": {"Design"}}
	require.Equal(t, "/api/projects?category=Design&tag=web&tag=mobile", GenerateKey("/api/projects", params))
}

func TestSetGetAndLazyExpiry(t *testing.T) {
	clock := newFakeClock()
	c := New(WithClock(clock.Now))

	c.Set("/api/services", []byte(`{"success":true}`), time.Minute)
	body, ok := c.Get("/api/services")
	require.True(t, ok)
	require.JSONEq(t, `{"success":true}`, string(body))
	require.Equal(t, 1, c.Size())

	clock.Advance(59 * time.Second)
	_, ok = c.Get("/api/services")
	require.True(t, ok)

	clock.Advance(time.Second)
	_, ok = c.Get("/api/services")
	require.False(t, ok)
	require.Equal(t, 0, c.Size())
}

func TestMissHasNoSideEffect(t *testing.T) {
	c := New()
	c.Set("/api/a", []byte("a"), 0)

	_, ok := c.Get("/api/missing")
	require.False(t, ok)
	require.Equal(t, 1, c.Size())
}

func TestSetUsesDefaultTTL(t *testing.T) {
	clock := newFakeClock()
	c := New(WithClock(clock.Now))

	c.Set("/api/config", []byte("{}"), 0)
	entry, ok := c.Lookup("/api/config")
	require.True(t, ok)
	require.Equal(t, DefaultTTL, entry.TTL)
	require.Equal(t, clock.Now().Add(DefaultTTL), entry.ExpiresAt)

	custom := New(WithClock(clock.Now), WithDefaultTTL(time.Hour))
	custom.Set("/api/config", []byte("{}"), -1)
	entry, _ = custom.Lookup("/api/config")
	require.Equal(t, time.Hour, entry.TTL)
}

func TestSetOverwrites(t *testing.T) {
	c := New()
	c.Set("k", []byte("one"), time.Minute)
	c.Set("k", []byte("two"), time.Minute)

	body, ok := c.Get("k")
	require.True(t, ok)
	require.Equal(t, "two", string(body))
	require.Equal(t, 1, c.Size())
}

func TestLookupReportsRemaining(t *testing.T) {
	clock := newFakeClock()
	c := New(WithClock(clock.Now))
	c.Set("k", []byte("v"), 10*time.Minute)

	clock.Advance(4 * time.Minute)
	entry, ok := c.Lookup("k")
	require.True(t, ok)
	require.Equal(t, 6*time.Minute, entry.Remaining(clock.Now()))
}

func TestDeletePatternContainment(t *testing.T) {
	c := New()
	keys := []string{
		"/api/articles",
		"/api/articles?category=News",
		"/api/articles/42",
		"/api/articles-archive",
		"/api/projects",
		"/api/services/3",
	}
	for _, key := range keys {
		c.Set(key, []byte(key), time.Minute)
	}

	removed := c.DeletePattern("/api/articles")
	require.Equal(t, 4, removed)

	for _, key := range keys[:4] {
		_, ok := c.Get(key)
		require.False(t, ok, key)
	}
	for _, key := range keys[4:] {
		_, ok := c.Get(key)
		require.True(t, ok, key)
	}
}

func TestDeleteAndClear(t *testing.T) {
	c := New()
	c.Set("a", []byte("1"), time.Minute)
	c.Set("b", []byte("2"), time.Minute)

	c.Delete("a")
	_, ok := c.Get("a")
	require.False(t, ok)
	require.Equal(t, []string{"b"}, c.Keys())

	c.Clear()
	require.Zero(t, c.Size())
}

func TestCleanupSweepsExpired(t *testing.T) {
	clock := newFakeClock()
	c := New(WithClock(clock.Now))
	c.Set("short", []byte("1"), time.Minute)
	c.Set("long", []byte("2"), time.Hour)

	clock.Advance(time.Minute)
	require.Equal(t, 1, c.Cleanup())
	require.Equal(t, []string{"long"}, c.Keys())
	require.Zero(t, c.Cleanup())
}

func TestConcurrentAccess(t *testing.T) {
	c := New()
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				key := GenerateKey("/api/articles", url.Values{"page": {string(rune('a' + j%5))}})
				c.Set(key, []byte("x"), time.Minute)
				c.Get(key)
				if j%50 == 0 {
					c.DeletePattern("/api/articles")
				}
			}
		}(i)
	}
	wg.Wait()
	require.LessOrEqual(t, c.Size(), 5)
}
