// Package deploy bootstraps an asset-transfer gateway: it wires the
// collaborators together, instantiates the contract state and registers the
// initial channel set, logging the progress in detail.
package deploy

import (
	"errors"
	"fmt"

	"github.com/nspcc-dev/asset-gateway/gateway"
	"github.com/nspcc-dev/neo-go/pkg/core/storage"
	"go.uber.org/zap"
)

// GatewayPrm groups the initial contract state.
type GatewayPrm struct {
	// DefaultTimeout, in seconds, applies to transfers without an explicit
	// timeout.
	DefaultTimeout uint64

	// AllowList is the initial set of trusted token ledger addresses.
	AllowList []string
}

// Prm groups all parameters of the gateway bootstrap procedure.
type Prm struct {
	// Writes progress into the log.
	Logger *zap.Logger

	// Store is the persistent backing store of all gateway state. Defaults
	// to an in-memory store, which is only suitable for tests and
	// throwaway environments.
	Store storage.Store

	// Transport emits outbound packets. Required.
	Transport gateway.PacketTransport

	// Validator checks account addresses. Defaults to base58check N3
	// addresses.
	Validator gateway.AccountValidator

	// Clock supplies request time. Defaults to the system clock.
	Clock gateway.Clock

	// PortID is the transport endpoint identity of this gateway.
	PortID string

	Gateway GatewayPrm

	// Channels to register right after instantiation. More can be
	// registered later through the returned registry.
	Channels []gateway.ChannelInfo
}

// Deploy performs the one-shot gateway bootstrap described by prm and
// returns the ready-to-use gateway together with the channel registry the
// host's channel lifecycle handler should keep writing to.
func Deploy(prm Prm) (*gateway.Gateway, *gateway.StoreRegistry, error) {
	switch {
	case prm.Logger == nil:
		return nil, nil, errors.New("missing logger")
	case prm.Transport == nil:
		return nil, nil, errors.New("missing packet transport")
	case prm.PortID == "":
		return nil, nil, errors.New("missing port identity")
	}

	if prm.Store == nil {
		prm.Logger.Warn("no backing store provided, using a non-persistent in-memory store")
		prm.Store = storage.NewMemoryStore()
	}
	if prm.Validator == nil {
		prm.Validator = gateway.Base58Validator{Version: gateway.N3AddressVersion}
	}
	if prm.Clock == nil {
		prm.Clock = gateway.SystemClock{}
	}

	registry := gateway.NewStoreRegistry(prm.Store, prm.PortID)

	gw, err := gateway.New(gateway.Prm{
		Store:     prm.Store,
		Registry:  registry,
		Validator: prm.Validator,
		Transport: prm.Transport,
		Clock:     prm.Clock,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("init gateway: %w", err)
	}

	_, err = gw.Instantiate(gateway.InstantiateMsg{
		DefaultTimeout: prm.Gateway.DefaultTimeout,
		AllowList:      prm.Gateway.AllowList,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("instantiate gateway: %w", err)
	}

	prm.Logger.Info("gateway successfully instantiated",
		zap.String("port", prm.PortID),
		zap.Uint64("default timeout (s)", prm.Gateway.DefaultTimeout),
		zap.Int("allow-listed ledgers", len(prm.Gateway.AllowList)))

	for _, ch := range prm.Channels {
		if err := registry.RegisterChannel(ch); err != nil {
			return nil, nil, fmt.Errorf("register channel %q: %w", ch.ID, err)
		}

		prm.Logger.Info("channel successfully registered",
			zap.String("channel", ch.ID),
			zap.String("counterparty port", ch.Counterparty.PortID),
			zap.String("counterparty channel", ch.Counterparty.ChannelID),
			zap.String("connection", ch.ConnectionID))
	}

	return gw, registry, nil
}
