package gateway_test

import (
	"math/big"
	"testing"

	"github.com/nspcc-dev/asset-gateway/gateway"
	"github.com/stretchr/testify/require"
)

func TestPort(t *testing.T) {
	e := newTestEnv(t)
	require.Equal(t, gateway.PortResponse{PortID: "gateway"}, e.gw.Port())
}

func TestListChannels(t *testing.T) {
	e := newInstantiatedEnv(t)

	t.Run("ascending order", func(t *testing.T) {
		// register out of order, listing must sort by identity
		extra := []gateway.ChannelInfo{
			{ID: "chan-2", ConnectionID: "connection-3"},
			{ID: "chan-1", ConnectionID: "connection-2"},
		}
		for _, info := range extra {
			require.NoError(t, e.registry.RegisterChannel(info))
		}

		resp, err := e.gw.ListChannels()
		require.NoError(t, err)
		require.Len(t, resp.Channels, 3)
		require.Equal(t, "chan-0", resp.Channels[0].ID)
		require.Equal(t, "chan-1", resp.Channels[1].ID)
		require.Equal(t, "chan-2", resp.Channels[2].ID)
	})
}

func TestListChannelsEmpty(t *testing.T) {
	e := newTestEnv(t)

	resp, err := e.gw.ListChannels()
	require.NoError(t, err)
	require.NotNil(t, resp.Channels)
	require.Empty(t, resp.Channels)
}

func TestChannelQuery(t *testing.T) {
	e := newInstantiatedEnv(t)

	t.Run("unknown channel", func(t *testing.T) {
		_, err := e.gw.Channel("chan-7")
		require.ErrorIs(t, err, gateway.ErrNoSuchChannel)
	})

	t.Run("no transfer history", func(t *testing.T) {
		resp, err := e.gw.Channel("chan-0")
		require.NoError(t, err)
		require.Equal(t, "chan-0", resp.Info.ID)
		require.Equal(t, "connection-1", resp.Info.ConnectionID)
		require.NotNil(t, resp.Balances)
		require.Empty(t, resp.Balances)
		require.NotNil(t, resp.TotalSent)
		require.Empty(t, resp.TotalSent)
	})

	t.Run("multiple denominations", func(t *testing.T) {
		msg := gateway.TransferMsg{Channel: "chan-0", RemoteAddress: "remote1"}

		_, err := e.gw.Transfer(gateway.MsgInfo{Sender: "alice", Funds: coins("ugas", 7)}, msg)
		require.NoError(t, err)
		_, err = e.gw.Transfer(gateway.MsgInfo{Sender: "alice", Funds: coins("uatom", 100)}, msg)
		require.NoError(t, err)
		_, err = e.gw.Receive(receiveNote(t, "ledgerA", "bob", 55, msg))
		require.NoError(t, err)

		resp, err := e.gw.Channel("chan-0")
		require.NoError(t, err)
		// ascending by denomination key: "cw20:ledgerA" < "uatom" < "ugas"
		require.Equal(t, []gateway.Amount{
			gateway.LedgeredAmount("ledgerA", big.NewInt(55)),
			gateway.NativeAmount("uatom", big.NewInt(100)),
			gateway.NativeAmount("ugas", big.NewInt(7)),
		}, resp.Balances)
		require.Equal(t, resp.Balances, resp.TotalSent)

		t.Run("after compensation", func(t *testing.T) {
			err := e.gw.ReduceChannelBalance("chan-0", "uatom", big.NewInt(40))
			require.NoError(t, err)

			resp, err := e.gw.Channel("chan-0")
			require.NoError(t, err)
			require.Equal(t, gateway.NativeAmount("uatom", big.NewInt(60)), resp.Balances[1])
			require.Equal(t, gateway.NativeAmount("uatom", big.NewInt(100)), resp.TotalSent[1])
		})
	})
}

func TestConfigQuery(t *testing.T) {
	e := newInstantiatedEnv(t)

	resp, err := e.gw.Config()
	require.NoError(t, err)
	require.Equal(t, uint64(600), resp.DefaultTimeout)

	t.Run("not instantiated", func(t *testing.T) {
		_, err := newTestEnv(t).gw.Config()
		require.Error(t, err)
	})
}

func TestAllowedQuery(t *testing.T) {
	e := newInstantiatedEnv(t)

	resp, err := e.gw.Allowed("ledgerA")
	require.NoError(t, err)
	require.True(t, resp.IsAllowed)

	resp, err = e.gw.Allowed("ledgerB")
	require.NoError(t, err)
	require.False(t, resp.IsAllowed)

	_, err = e.gw.Allowed("bad address")
	require.ErrorIs(t, err, gateway.ErrInvalidAddress)
}

func TestVersionQuery(t *testing.T) {
	t.Run("not instantiated", func(t *testing.T) {
		_, err := newTestEnv(t).gw.Version()
		require.Error(t, err)
	})

	e := newInstantiatedEnv(t)
	resp, err := e.gw.Version()
	require.NoError(t, err)
	require.Equal(t, gateway.VersionResponse{
		Contract: gateway.ContractName,
		Version:  gateway.ContractVersion,
	}, resp)
}
