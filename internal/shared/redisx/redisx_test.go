package redisx

import (
	"context"
	"net"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"

	"github.com/GeorgeMish/Yatube/configs"
)

func TestOpen(t *testing.T) {
	mr := miniredis.RunT(t)
	host, port, err := net.SplitHostPort(mr.Addr())
	require.NoError(t, err)

	rdb, err := Open(context.Background(), &configs.Config{RedisHost: host, RedisPort: port})
	require.NoError(t, err)
	defer rdb.Close()
	require.NoError(t, rdb.Set(context.Background(), "k", "v", 0).Err())
	require.Equal(t, "v", mr.Get("k"))
}

func TestOpenUnreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	host, port, err := net.SplitHostPort(mr.Addr())
	require.NoError(t, err)
	mr.Close()

	_, err = Open(context.Background(), &configs.Config{RedisHost: host, RedisPort: port})
	require.Error(t, err)
}
