package gateway

import (
	"encoding/json"
	"fmt"

	"github.com/nspcc-dev/neo-go/pkg/core/storage"
)

// PortResponse is the result of the Port query.
type PortResponse struct {
	PortID string `json:"port_id"`
}

// ListChannelsResponse is the result of the ListChannels query.
type ListChannelsResponse struct {
	Channels []ChannelInfo `json:"channels"`
}

// ChannelResponse is the result of the Channel query. Balances and TotalSent
// are index-paired per denomination, ascending by denomination key; both are
// empty for channels without transfer history.
type ChannelResponse struct {
	Info      ChannelInfo `json:"info"`
	Balances  []Amount    `json:"balances"`
	TotalSent []Amount    `json:"total_sent"`
}

// ConfigResponse is the result of the Config query.
type ConfigResponse struct {
	DefaultTimeout uint64 `json:"default_timeout"`
}

// AllowedResponse is the result of the Allowed query.
type AllowedResponse struct {
	IsAllowed bool `json:"is_allowed"`
}

// VersionResponse is the result of the Version query.
type VersionResponse struct {
	Contract string `json:"contract"`
	Version  string `json:"version"`
}

// Port returns the transport endpoint identity of the gateway.
func (g *Gateway) Port() PortResponse {
	return PortResponse{PortID: g.registry.PortID()}
}

// ListChannels returns all registered channels in ascending order of their
// identities.
func (g *Gateway) ListChannels() (ListChannelsResponse, error) {
	channels, err := g.registry.List()
	if err != nil {
		return ListChannelsResponse{}, err
	}
	if channels == nil {
		channels = []ChannelInfo{}
	}
	return ListChannelsResponse{Channels: channels}, nil
}

// Channel returns the registration info of one channel together with its
// escrow ledger history: for every denomination ever sent over the channel,
// the outstanding and the total-sent value.
func (g *Gateway) Channel(id string) (ChannelResponse, error) {
	info, err := g.registry.Get(id)
	if err != nil {
		return ChannelResponse{}, err
	}

	var (
		balances  = []Amount{}
		totalSent = []Amount{}
		scanErr   error
		prefix    = balanceScanPrefix(id)
	)

	storage.NewMemCachedStore(g.store).Seek(storage.SeekRange{Prefix: prefix}, func(k, v []byte) bool {
		var st channelState
		if err := json.Unmarshal(v, &st); err != nil {
			scanErr = fmt.Errorf("unmarshal ledger entry %q: %w", string(k), err)
			return false
		}

		denom := string(k[len(prefix):])
		balances = append(balances, AmountFromParts(denom, st.Outstanding))
		totalSent = append(totalSent, AmountFromParts(denom, st.TotalSent))
		return true
	})
	if scanErr != nil {
		return ChannelResponse{}, scanErr
	}

	return ChannelResponse{Info: info, Balances: balances, TotalSent: totalSent}, nil
}

// Config returns the current gateway configuration.
func (g *Gateway) Config() (ConfigResponse, error) {
	cfg, err := loadConfig(storage.NewMemCachedStore(g.store))
	if err != nil {
		return ConfigResponse{}, err
	}
	return ConfigResponse{DefaultTimeout: cfg.DefaultTimeout}, nil
}

// Allowed reports whether the given token ledger address is on the
// allow-list.
func (g *Gateway) Allowed(addr string) (AllowedResponse, error) {
	a, err := g.validator.ValidateAddress(addr)
	if err != nil {
		return AllowedResponse{}, err
	}
	return AllowedResponse{IsAllowed: isAllowed(storage.NewMemCachedStore(g.store), a)}, nil
}

// Version returns the contract name and version record written at
// instantiation.
func (g *Gateway) Version() (VersionResponse, error) {
	var rec versionRecord
	ok, err := getJSON(storage.NewMemCachedStore(g.store), []byte{versionKey}, &rec)
	if err != nil {
		return VersionResponse{}, err
	}
	if !ok {
		return VersionResponse{}, errNotInstantiated
	}
	return VersionResponse{Contract: rec.Contract, Version: rec.Version}, nil
}
