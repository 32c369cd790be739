package gateway_test

import (
	"strings"
	"testing"

	"github.com/nspcc-dev/asset-gateway/gateway"
	"github.com/nspcc-dev/neo-go/pkg/core/storage"
	"github.com/stretchr/testify/require"
)

func TestStoreRegistry(t *testing.T) {
	r := gateway.NewStoreRegistry(storage.NewMemoryStore(), "gateway")
	require.Equal(t, "gateway", r.PortID())

	info := gateway.ChannelInfo{
		ID:           "chan-0",
		Counterparty: gateway.Endpoint{PortID: "transfer", ChannelID: "chan-9"},
		ConnectionID: "connection-1",
	}

	t.Run("register", func(t *testing.T) {
		require.Error(t, r.RegisterChannel(gateway.ChannelInfo{}))
		require.Error(t, r.RegisterChannel(gateway.ChannelInfo{ID: strings.Repeat("x", 256)}))
		require.NoError(t, r.RegisterChannel(gateway.ChannelInfo{ID: strings.Repeat("x", 255)}))

		require.NoError(t, r.RegisterChannel(info))
	})

	t.Run("exists", func(t *testing.T) {
		require.True(t, r.Exists("chan-0"))
		require.False(t, r.Exists("chan-7"))
	})

	t.Run("get", func(t *testing.T) {
		got, err := r.Get("chan-0")
		require.NoError(t, err)
		require.Equal(t, info, got)

		_, err = r.Get("chan-7")
		require.ErrorIs(t, err, gateway.ErrNoSuchChannel)
	})

	t.Run("reregistration overwrites", func(t *testing.T) {
		info.ConnectionID = "connection-2"
		require.NoError(t, r.RegisterChannel(info))

		got, err := r.Get("chan-0")
		require.NoError(t, err)
		require.Equal(t, "connection-2", got.ConnectionID)
	})
}
