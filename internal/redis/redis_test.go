package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlashQueue(t *testing.T) {
	mr := miniredis.RunT(t)
	client := NewClientWithAddr(mr.Addr())
	defer client.Close()

	ctx := context.Background()
	require.NoError(t, client.Ping(ctx))

	require.NoError(t, client.PushFlash(ctx, "abc", "first", time.Minute))
	require.NoError(t, client.PushFlash(ctx, "abc", "second", time.Minute))
	assert.Equal(t, time.Minute, mr.TTL("flash:abc"))

	msgs, err := client.PopFlashes(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second"}, msgs)

	msgs, err = client.PopFlashes(ctx, "abc")
	require.NoError(t, err)
	assert.Empty(t, msgs)
	assert.False(t, mr.Exists("flash:abc"))
}

func TestFlashExpires(t *testing.T) {
	mr := miniredis.RunT(t)
	client := NewClientWithAddr(mr.Addr())
	defer client.Close()

	ctx := context.Background()
	require.NoError(t, client.PushFlash(ctx, "abc", "stale", time.Second))
	mr.FastForward(2 * time.Second)

	msgs, err := client.PopFlashes(ctx, "abc")
	require.NoError(t, err)
	assert.Empty(t, msgs)
}
