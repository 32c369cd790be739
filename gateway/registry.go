package gateway

import (
	"encoding/json"
	"fmt"

	"github.com/nspcc-dev/neo-go/pkg/core/storage"
)

// Endpoint identifies one end of a transport channel.
type Endpoint struct {
	PortID    string `json:"port_id"`
	ChannelID string `json:"channel_id"`
}

// ChannelInfo describes a registered transport channel to a remote domain.
type ChannelInfo struct {
	ID           string   `json:"id"`
	Counterparty Endpoint `json:"counterparty_endpoint"`
	ConnectionID string   `json:"connection_id"`
}

// ChannelRegistry is the channel directory the gateway consults. Channel
// lifecycle (handshakes, closing) is the host's concern; the gateway only
// ever reads.
type ChannelRegistry interface {
	// PortID returns the transport endpoint identity of this gateway.
	PortID() string
	// Exists reports whether a channel with the given identity is
	// registered.
	Exists(id string) bool
	// Get returns the registration info of the channel. It returns an
	// error matching ErrNoSuchChannel for unknown identities.
	Get(id string) (ChannelInfo, error)
	// List returns all registered channels in ascending order of their
	// identities.
	List() ([]ChannelInfo, error)
}

// StoreRegistry is a ChannelRegistry persisted in the gateway's own storage.
// The host's channel lifecycle handler registers channels as they open.
type StoreRegistry struct {
	st   storage.Store
	port string
}

// NewStoreRegistry returns a StoreRegistry keeping channel records in st.
// The given port identifies this gateway's transport endpoint.
func NewStoreRegistry(st storage.Store, port string) *StoreRegistry {
	return &StoreRegistry{st: st, port: port}
}

// RegisterChannel persists the registration record of a new channel. It is
// the host-side lifecycle hook and must be called before any transfer
// referencing the channel is submitted.
func (r *StoreRegistry) RegisterChannel(info ChannelInfo) error {
	if info.ID == "" {
		return fmt.Errorf("empty channel identity")
	}
	if len(info.ID) > maxChannelIDLen {
		return fmt.Errorf("channel identity longer than %d bytes", maxChannelIDLen)
	}

	dao := storage.NewMemCachedStore(r.st)
	if err := putJSON(dao, channelKey(info.ID), info); err != nil {
		return err
	}
	_, err := dao.Persist()
	return err
}

// PortID implements ChannelRegistry.
func (r *StoreRegistry) PortID() string {
	return r.port
}

// Exists implements ChannelRegistry.
func (r *StoreRegistry) Exists(id string) bool {
	_, err := storage.NewMemCachedStore(r.st).Get(channelKey(id))
	return err == nil
}

// Get implements ChannelRegistry.
func (r *StoreRegistry) Get(id string) (ChannelInfo, error) {
	var info ChannelInfo
	ok, err := getJSON(storage.NewMemCachedStore(r.st), channelKey(id), &info)
	if err != nil {
		return info, err
	}
	if !ok {
		return info, fmt.Errorf("%w: %s", ErrNoSuchChannel, id)
	}
	return info, nil
}

// List implements ChannelRegistry. Identities are byte-wise key-ordered,
// i.e. ascending.
func (r *StoreRegistry) List() ([]ChannelInfo, error) {
	var (
		channels = []ChannelInfo{}
		listErr  error
	)

	storage.NewMemCachedStore(r.st).Seek(storage.SeekRange{Prefix: []byte{channelPrefix}}, func(k, v []byte) bool {
		var info ChannelInfo
		if err := json.Unmarshal(v, &info); err != nil {
			listErr = fmt.Errorf("unmarshal channel record %q: %w", string(k[1:]), err)
			return false
		}
		channels = append(channels, info)
		return true
	})

	return channels, listErr
}
