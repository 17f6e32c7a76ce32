package cache

import (
	"context"
	"testing"
	"time"

	"github.com/coachassist/backend/internal/clang"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyDependsOnTextAndOptions(t *testing.T) {
	opts := clang.DefaultOptions()
	base := Key("[REGIONS]\n", opts)

	assert.Equal(t, base, Key("[REGIONS]\n", opts))
	assert.NotEqual(t, base, Key("[REGIONS]\nA 0 0 1 1\n", opts))

	opts.AddPlayOn = true
	assert.NotEqual(t, base, Key("[REGIONS]\n", opts))
	assert.Len(t, base, 64)
}

func TestGenerateUsesLocalLayer(t *testing.T) {
	c, err := New(nil, time.Minute)
	require.NoError(t, err)
	defer c.Close()

	calls := 0
	gen := func() string {
		calls++
		return "(say (rule (on all)))\n"
	}
	ctx := context.Background()

	text, key, source := c.Generate(ctx, "doc", clang.DefaultOptions(), gen)
	assert.Equal(t, "generated", source)
	assert.Equal(t, "(say (rule (on all)))\n", text)
	assert.Equal(t, Key("doc", clang.DefaultOptions()), key)

	text, _, source = c.Generate(ctx, "doc", clang.DefaultOptions(), gen)
	assert.Equal(t, "l1", source)
	assert.Equal(t, "(say (rule (on all)))\n", text)
	assert.Equal(t, 1, calls)
}

func TestGetMissWithoutRedis(t *testing.T) {
	c, err := New(nil, time.Minute)
	require.NoError(t, err)
	defer c.Close()

	_, _, ok := c.Get(context.Background(), "absent")
	assert.False(t, ok)
}
