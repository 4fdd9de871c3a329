package location

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeBackend counts Enqueue calls and returns a canned reply.
type fakeBackend struct {
	calls int
	reply string
	err   error
}

func (b *fakeBackend) Enqueue(ctx context.Context, system, user string) (string, error) {
	b.calls++
	return b.reply, b.err
}

func setupResolverTest(reply string, err error) (*ResolverImpl, *fakeBackend) {
	backend := &fakeBackend{reply: reply, err: err}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewResolver(backend, logger), backend
}

func TestResolverImpl_Resolve_PatternOnly(t *testing.T) {
	ctx := context.Background()

	t.Run("bare zip code", func(t *testing.T) {
		resolver, backend := setupResolverTest("", nil)
		loc, err := resolver.Resolve(ctx, "78704")
		require.NoError(t, err)
		assert.Equal(t, "78704", loc)
		assert.Zero(t, backend.calls, "pattern match must not hit the model")
	})

	t.Run("zip inside a sentence", func(t *testing.T) {
		resolver, backend := setupResolverTest("", nil)
		loc, err := resolver.Resolve(ctx, "What's around Austin, TX 78704?")
		require.NoError(t, err)
		assert.Equal(t, "78704", loc)
		assert.Zero(t, backend.calls)
	})

	t.Run("city and state", func(t *testing.T) {
		resolver, backend := setupResolverTest("", nil)
		loc, err := resolver.Resolve(ctx, "Show me Austin, TX")
		require.NoError(t, err)
		assert.Equal(t, "Austin, TX", loc)
		assert.Zero(t, backend.calls)
	})

	t.Run("capitalized multi-word place", func(t *testing.T) {
		resolver, backend := setupResolverTest("", nil)
		loc, err := resolver.Resolve(ctx, "how about New York")
		require.NoError(t, err)
		assert.Equal(t, "New York", loc)
		assert.Zero(t, backend.calls)
	})
}

func TestResolverImpl_Resolve_ModelFallback(t *testing.T) {
	ctx := context.Background()

	t.Run("keyword forces the model even with a match", func(t *testing.T) {
		resolver, backend := setupResolverTest("Austin", nil)
		loc, err := resolver.Resolve(ctx, "Tell me about the Austin, TX area")
		require.NoError(t, err)
		assert.Equal(t, "Austin", loc)
		assert.Equal(t, 1, backend.calls)
	})

	t.Run("no match and no keywords still asks the model", func(t *testing.T) {
		resolver, backend := setupResolverTest("NO_LOCATION", nil)
		loc, err := resolver.Resolve(ctx, "tell me a joke")
		require.NoError(t, err)
		assert.Equal(t, NoLocation, loc)
		assert.Equal(t, 1, backend.calls)
	})

	t.Run("model answer is trimmed", func(t *testing.T) {
		resolver, _ := setupResolverTest("  Dubai Marina \n", nil)
		loc, err := resolver.Resolve(ctx, "what's in the neighborhood?")
		require.NoError(t, err)
		assert.Equal(t, "Dubai Marina", loc)
	})

	t.Run("empty model answer falls back to the pattern match", func(t *testing.T) {
		resolver, backend := setupResolverTest("   ", nil)
		loc, err := resolver.Resolve(ctx, "Tell me about the Austin, TX area")
		require.NoError(t, err)
		assert.Equal(t, "Austin, TX", loc)
		assert.Equal(t, 1, backend.calls)
	})

	t.Run("empty model answer and no match means no location", func(t *testing.T) {
		resolver, _ := setupResolverTest("", nil)
		loc, err := resolver.Resolve(ctx, "what a nice day in the sun")
		require.NoError(t, err)
		assert.Equal(t, NoLocation, loc)
	})

	t.Run("backend error propagates", func(t *testing.T) {
		backendErr := errors.New("completion queue exhausted retries")
		resolver, _ := setupResolverTest("", backendErr)
		_, err := resolver.Resolve(ctx, "what's near me?")
		require.Error(t, err)
		assert.ErrorIs(t, err, backendErr)
	})
}

func TestMatchLocation(t *testing.T) {
	cases := []struct {
		name    string
		message string
		want    string
	}{
		{"zip wins over city", "Austin, TX 78704", "78704"},
		{"city state with comma", "moving to Portland, OR soon", "Portland, OR"},
		{"hyphenated city", "Winston-Salem, NC", "Winston-Salem, NC"},
		{"multi-word place without state", "flights to San Francisco please", "San Francisco"},
		{"no location", "tell me a joke", ""},
		{"six digits are not a zip", "order 123456 status", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, matchLocation(tc.message))
		})
	}
}
