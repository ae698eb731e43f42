package storage

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_Ping(t *testing.T) {
	mr := miniredis.RunT(t)
	defer mr.Close()

	client, err := Open("redis://" + mr.Addr())
	require.NoError(t, err)
	defer client.Close()

	err = Ping(context.Background(), client)
	assert.NoError(t, err)
}

func TestOpen_InvalidURL(t *testing.T) {
	_, err := Open("invalid://url")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse Redis URL")
}

func TestPing_Unreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	client, err := Open("redis://" + addr)
	require.NoError(t, err)
	defer client.Close()

	err = Ping(context.Background(), client)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "redis ping failed")
}
