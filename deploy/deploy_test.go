package deploy_test

import (
	"math/big"
	"testing"
	"time"

	"github.com/nspcc-dev/asset-gateway/deploy"
	"github.com/nspcc-dev/asset-gateway/gateway"
	"github.com/nspcc-dev/asset-gateway/gatewaytest"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestDeploy(t *testing.T) {
	transport := new(gatewaytest.Transport)

	gw, registry, err := deploy.Deploy(deploy.Prm{
		Logger:    zaptest.NewLogger(t),
		Transport: transport,
		Validator: gatewaytest.Validator{},
		Clock:     gatewaytest.Clock{T: time.Unix(1700000000, 0)},
		PortID:    "gateway",
		Gateway: deploy.GatewayPrm{
			DefaultTimeout: 600,
			AllowList:      []string{"ledgerA"},
		},
		Channels: []gateway.ChannelInfo{
			{
				ID:           "chan-0",
				Counterparty: gateway.Endpoint{PortID: "transfer", ChannelID: "chan-9"},
				ConnectionID: "connection-1",
			},
		},
	})
	require.NoError(t, err)

	cfg, err := gw.Config()
	require.NoError(t, err)
	require.Equal(t, uint64(600), cfg.DefaultTimeout)

	allowed, err := gw.Allowed("ledgerA")
	require.NoError(t, err)
	require.True(t, allowed.IsAllowed)

	require.True(t, registry.Exists("chan-0"))

	// the deployed gateway is ready to move value
	_, err = gw.Transfer(
		gateway.MsgInfo{Sender: "alice", Funds: []gateway.Coin{{Denom: "uatom", Amount: big.NewInt(100)}}},
		gateway.TransferMsg{Channel: "chan-0", RemoteAddress: "remote1"},
	)
	require.NoError(t, err)
	require.Len(t, transport.Packets, 1)
}

func TestDeployMissingParameters(t *testing.T) {
	logger := zaptest.NewLogger(t)
	transport := new(gatewaytest.Transport)

	for name, prm := range map[string]deploy.Prm{
		"logger":    {Transport: transport, PortID: "gateway"},
		"transport": {Logger: logger, PortID: "gateway"},
		"port":      {Logger: logger, Transport: transport},
	} {
		t.Run(name, func(t *testing.T) {
			_, _, err := deploy.Deploy(prm)
			require.Error(t, err)
		})
	}
}

func TestDeployBadChannel(t *testing.T) {
	_, _, err := deploy.Deploy(deploy.Prm{
		Logger:    zaptest.NewLogger(t),
		Transport: new(gatewaytest.Transport),
		Validator: gatewaytest.Validator{},
		PortID:    "gateway",
		Channels:  []gateway.ChannelInfo{{}},
	})
	require.Error(t, err)
}
