package gateway

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/big"

	"github.com/nspcc-dev/neo-go/pkg/core/storage"
)

// Storage layout. Every record lives under a single-byte prefix; balance
// keys carry the channel identity length so that one channel's records can
// be range-scanned without ambiguity.
const (
	versionKey    = byte('v')
	configKey     = byte('c')
	allowPrefix   = byte('a')
	channelPrefix = byte('n')
	balancePrefix = byte('b')
)

// maxChannelIDLen is the hard limit on channel identity length imposed by
// the one-byte length marker in balance keys.
const maxChannelIDLen = 255

type versionRecord struct {
	Contract string `json:"contract"`
	Version  string `json:"version"`
}

type config struct {
	DefaultTimeout uint64 `json:"default_timeout"` // seconds
}

// channelState is the escrow ledger entry of a (channel, denomination) pair.
// Outstanding never exceeds TotalSent and TotalSent never decreases.
type channelState struct {
	Outstanding *big.Int `json:"outstanding"`
	TotalSent   *big.Int `json:"total_sent"`
}

func putJSON(dao *storage.MemCachedStore, key []byte, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal stored record: %w", err)
	}
	dao.Put(key, data)
	return nil
}

// getJSON reads and decodes a stored record. The first return value is false
// when there is no record under the key.
func getJSON(dao *storage.MemCachedStore, key []byte, v interface{}) (bool, error) {
	data, err := dao.Get(key)
	if err != nil {
		if errors.Is(err, storage.ErrKeyNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("read stored record: %w", err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("unmarshal stored record: %w", err)
	}
	return true, nil
}

func channelKey(id string) []byte {
	return append([]byte{channelPrefix}, id...)
}

func allowKey(addr string) []byte {
	return append([]byte{allowPrefix}, addr...)
}

// balanceScanPrefix is the common prefix of all balance keys of one channel.
func balanceScanPrefix(channel string) []byte {
	k := make([]byte, 0, 2+len(channel))
	k = append(k, balancePrefix, byte(len(channel)))
	return append(k, channel...)
}

func balanceKey(channel, denom string) []byte {
	return append(balanceScanPrefix(channel), denom...)
}

func loadConfig(dao *storage.MemCachedStore) (config, error) {
	var cfg config
	ok, err := getJSON(dao, []byte{configKey}, &cfg)
	if err != nil {
		return cfg, err
	}
	if !ok {
		return cfg, errNotInstantiated
	}
	return cfg, nil
}

func setAllowed(dao *storage.MemCachedStore, addr string) {
	dao.Put(allowKey(addr), []byte{1})
}

// isAllowed treats record presence as the only allow-list signal.
func isAllowed(dao *storage.MemCachedStore, addr string) bool {
	_, err := dao.Get(allowKey(addr))
	return err == nil
}

// loadChannelState returns the ledger entry of the (channel, denomination)
// pair, defaulting to zero counters when no entry exists yet. The second
// return value reports whether the entry was present.
func loadChannelState(dao *storage.MemCachedStore, channel, denom string) (channelState, bool, error) {
	var st channelState
	ok, err := getJSON(dao, balanceKey(channel, denom), &st)
	if err != nil {
		return st, false, err
	}
	if !ok || st.Outstanding == nil || st.TotalSent == nil {
		st = channelState{Outstanding: new(big.Int), TotalSent: new(big.Int)}
	}
	return st, ok, nil
}

// increaseChannelBalance optimistically escrows amount on the (channel,
// denomination) pair, adding it to both the outstanding and the total-sent
// counters with 128-bit overflow checks. On overflow nothing is written.
//
// It stays unexported on purpose: the transfer pipeline is the only caller,
// which ties every increment to exactly one emitted packet.
func increaseChannelBalance(dao *storage.MemCachedStore, channel, denom string, amount *big.Int) error {
	st, _, err := loadChannelState(dao, channel, denom)
	if err != nil {
		return err
	}

	outstanding := new(big.Int).Add(st.Outstanding, amount)
	totalSent := new(big.Int).Add(st.TotalSent, amount)
	if outstanding.Cmp(maxUint128) >= 0 || totalSent.Cmp(maxUint128) >= 0 {
		return fmt.Errorf("%w: %s/%s", ErrAmountOverflow, channel, denom)
	}

	st.Outstanding = outstanding
	st.TotalSent = totalSent
	return putJSON(dao, balanceKey(channel, denom), st)
}

// ReduceChannelBalance is the compensating counterpart of the escrow
// increment performed by a successful transfer. The host's acknowledgement
// and timeout handler calls it when the remote domain rejects a packet or
// never acknowledges it within its deadline; the original transfer request
// has already succeeded and is not affected.
//
// The decrement only touches the outstanding counter and fails before any
// write when it would drop below zero, so the outstanding <= total-sent
// invariant holds on every code path. The call executes as its own
// serialized request against fresh ledger state.
func (g *Gateway) ReduceChannelBalance(channel, denom string, amount *big.Int) error {
	if err := checkQuantity(amount); err != nil {
		return err
	}

	dao := storage.NewMemCachedStore(g.store)

	st, ok, err := loadChannelState(dao, channel, denom)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %s/%s", ErrNoChannelState, channel, denom)
	}
	if st.Outstanding.Cmp(amount) < 0 {
		return fmt.Errorf("%w: %s/%s", ErrInsufficientEscrow, channel, denom)
	}

	st.Outstanding = new(big.Int).Sub(st.Outstanding, amount)
	if err := putJSON(dao, balanceKey(channel, denom), st); err != nil {
		return err
	}

	_, err = dao.Persist()
	return err
}
