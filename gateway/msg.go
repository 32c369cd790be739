package gateway

import (
	"encoding/json"
	"fmt"
	"math/big"

	"github.com/google/uuid"
)

// InstantiateMsg carries the initial gateway configuration.
type InstantiateMsg struct {
	// DefaultTimeout, in seconds, applies to transfers that do not carry
	// an explicit timeout.
	DefaultTimeout uint64 `json:"default_timeout"`
	// AllowList is the initial set of token ledger contracts trusted to
	// originate transfers. Each entry must pass the account validator.
	AllowList []string `json:"allow_list"`
}

// TransferMsg is a transfer request. On the direct path it arrives together
// with the attached payment, on the indirect path it is embedded into the
// token notification.
type TransferMsg struct {
	// Channel identifies the transport channel to the remote domain.
	Channel string `json:"channel"`
	// RemoteAddress is the destination address on the remote domain. It is
	// not validated locally beyond being non-empty: address formats of the
	// remote domain are unknown here.
	RemoteAddress string `json:"remote_address"`
	// Timeout, in seconds, overrides the configured default when set.
	Timeout *uint64 `json:"timeout,omitempty"`
}

// MsgInfo describes the authenticated context of a direct transfer request:
// who sent it and what native payment is attached.
type MsgInfo struct {
	Sender string
	Funds  []Coin
}

// TokenNotification reports that a token ledger moved funds into the
// gateway's custody on behalf of a transfer. Ledger and Amount are taken
// from the host's verified call context, never from the embedded payload.
type TokenNotification struct {
	// Ledger is the token ledger contract that issued the notification.
	Ledger string `json:"ledger"`
	// Sender is the account that moved the funds.
	Sender string `json:"sender"`
	// Amount is the quantity received.
	Amount *big.Int `json:"amount"`
	// Msg is the embedded TransferMsg payload.
	Msg json.RawMessage `json:"msg"`
}

// Packet is the outbound packet descriptor instructing the remote domain to
// release the transferred value.
type Packet struct {
	Amount   *big.Int `json:"amount"`
	Denom    string   `json:"denom"`
	Receiver string   `json:"receiver"`
	Sender   string   `json:"sender"`
}

// Validate checks well-formedness of the packet itself, independently of the
// transfer gates that produced it.
func (p Packet) Validate() error {
	if p.Receiver == "" {
		return fmt.Errorf("%w: empty receiver", ErrInvalidPacket)
	}
	if p.Amount == nil || p.Amount.Sign() <= 0 {
		return fmt.Errorf("%w: non-positive amount", ErrInvalidPacket)
	}
	return nil
}

// Attribute is one key-value pair of the observable attribute record emitted
// by successful operations.
type Attribute struct {
	Key   string
	Value string
}

// Response is the observable outcome of a state-changing operation.
type Response struct {
	// Handle correlates the emitted packet with a later acknowledgement or
	// timeout. It is zero for operations that emit no packet.
	Handle uuid.UUID
	// Attributes is the structured attribute record of the operation.
	Attributes []Attribute
}
