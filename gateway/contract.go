package gateway

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/nspcc-dev/neo-go/pkg/core/storage"
)

// Contract name and version stored at instantiation, see Version query.
const (
	ContractName    = "asset-gateway"
	ContractVersion = "0.1.0"
)

// Clock reports the logical time of the executing request.
type Clock interface {
	Now() time.Time
}

// SystemClock is a Clock reading the local wall clock.
type SystemClock struct{}

// Now implements Clock.
func (SystemClock) Now() time.Time { return time.Now() }

// PacketTransport emits outbound packets towards remote domains. Emission is
// fire-and-forget: delivery, ordering and retries are the transport's
// concern, and the outcome arrives later through the host's acknowledgement
// or timeout handler (see Gateway.ReduceChannelBalance). The returned handle
// only correlates the emission with that outcome.
type PacketTransport interface {
	// SendPacket hands the encoded payload to the transport. The deadline
	// is absolute, in nanoseconds of the transport's time base.
	SendPacket(channel string, data []byte, deadline uint64) uuid.UUID
}

// Prm groups the required parameters of New.
type Prm struct {
	// Store is the persistent backing store of all gateway state.
	Store storage.Store
	// Registry is the channel directory consulted by transfers and
	// queries.
	Registry ChannelRegistry
	// Validator checks account addresses of senders and token ledgers.
	Validator AccountValidator
	// Transport emits outbound packets.
	Transport PacketTransport
	// Clock supplies the logical time of each request.
	Clock Clock
}

// Gateway escrows deposited value and emits packets instructing a remote
// domain to release the equivalent. All state lives in the backing store;
// every state-changing operation runs against a private write-buffer that is
// persisted as a whole on success and dropped as a whole on rejection. The
// surrounding execution environment is expected to serialize requests, the
// gateway itself takes no locks.
type Gateway struct {
	store     storage.Store
	registry  ChannelRegistry
	validator AccountValidator
	transport PacketTransport
	clock     Clock
}

// New returns a Gateway over the given collaborators. All Prm fields are
// required.
func New(prm Prm) (*Gateway, error) {
	switch {
	case prm.Store == nil:
		return nil, errors.New("missing backing store")
	case prm.Registry == nil:
		return nil, errors.New("missing channel registry")
	case prm.Validator == nil:
		return nil, errors.New("missing account validator")
	case prm.Transport == nil:
		return nil, errors.New("missing packet transport")
	case prm.Clock == nil:
		return nil, errors.New("missing clock")
	}

	return &Gateway{
		store:     prm.Store,
		registry:  prm.Registry,
		validator: prm.Validator,
		transport: prm.Transport,
		clock:     prm.Clock,
	}, nil
}

// Instantiate writes the initial gateway state: the contract version record,
// the configuration and the validated allow-list. It fails with
// ErrAlreadyInstantiated when the store already holds gateway state, and
// writes nothing when any allow-list entry fails validation.
func (g *Gateway) Instantiate(msg InstantiateMsg) (*Response, error) {
	dao := storage.NewMemCachedStore(g.store)

	if _, err := dao.Get([]byte{versionKey}); err == nil {
		return nil, ErrAlreadyInstantiated
	}

	err := putJSON(dao, []byte{versionKey}, versionRecord{Contract: ContractName, Version: ContractVersion})
	if err != nil {
		return nil, err
	}
	if err := putJSON(dao, []byte{configKey}, config{DefaultTimeout: msg.DefaultTimeout}); err != nil {
		return nil, err
	}

	for _, addr := range msg.AllowList {
		a, err := g.validator.ValidateAddress(addr)
		if err != nil {
			return nil, fmt.Errorf("allow-list entry %q: %w", addr, err)
		}
		setAllowed(dao, a)
	}

	if _, err := dao.Persist(); err != nil {
		return nil, fmt.Errorf("persist initial state: %w", err)
	}

	return &Response{Attributes: []Attribute{
		{Key: "action", Value: "instantiate"},
		{Key: "default_timeout", Value: strconv.FormatUint(msg.DefaultTimeout, 10)},
	}}, nil
}

// Transfer handles a direct transfer request paid with an attached native
// payment. Exactly one coin of non-zero quantity must be attached.
func (g *Gateway) Transfer(info MsgInfo, msg TransferMsg) (*Response, error) {
	amount, err := normalizeFunds(info.Funds)
	if err != nil {
		return nil, err
	}

	sender, err := g.validator.ValidateAddress(info.Sender)
	if err != nil {
		return nil, err
	}

	return g.transfer(msg, amount, sender)
}

// Receive handles a notification from a token ledger reporting that funds
// were moved into the gateway's custody. The embedded payload supplies the
// channel, remote address and timeout; the transferred value is always the
// notification's own verified ledger and amount, whatever the payload
// claims.
func (g *Gateway) Receive(note TokenNotification) (*Response, error) {
	var msg TransferMsg
	if len(note.Msg) == 0 {
		return nil, ErrInvalidPayload
	}
	if err := json.Unmarshal(note.Msg, &msg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}

	if err := checkQuantity(note.Amount); err != nil {
		return nil, err
	}

	sender, err := g.validator.ValidateAddress(note.Sender)
	if err != nil {
		return nil, err
	}

	return g.transfer(msg, LedgeredAmount(note.Ledger, note.Amount), sender)
}

// normalizeFunds turns the attached payment into a native Amount. Zero
// attached coins and a single zero-quantity coin count as no funds; more
// than one coin is rejected whatever the denominations.
func normalizeFunds(funds []Coin) (Amount, error) {
	switch len(funds) {
	case 0:
		return Amount{}, ErrNoFunds
	case 1:
		c := funds[0]
		if err := checkQuantity(c.Amount); err != nil {
			return Amount{}, err
		}
		if c.Amount.Sign() == 0 {
			return Amount{}, ErrNoFunds
		}
		return NativeAmount(c.Denom, c.Amount), nil
	default:
		return Amount{}, ErrMultipleDenoms
	}
}

// transfer is the single pipeline both request styles funnel into. Gates run
// in a fixed order and any failure aborts with the write-buffer dropped
// wholesale; once the escrow increment is persisted the packet is always
// emitted.
func (g *Gateway) transfer(msg TransferMsg, amount Amount, sender string) (*Response, error) {
	if amount.IsEmpty() {
		return nil, ErrNoFunds
	}

	if !g.registry.Exists(msg.Channel) {
		return nil, fmt.Errorf("%w: %s", ErrNoSuchChannel, msg.Channel)
	}

	dao := storage.NewMemCachedStore(g.store)

	// Native value is the unit of account of this chain and always
	// trusted; token ledgers must be allow-listed.
	if amount.IsLedgered() {
		ledger, err := g.validator.ValidateAddress(amount.Ledger())
		if err != nil {
			return nil, err
		}
		if !isAllowed(dao, ledger) {
			return nil, fmt.Errorf("%w: %s", ErrNotOnAllowList, ledger)
		}
	}

	cfg, err := loadConfig(dao)
	if err != nil {
		return nil, err
	}

	// The request timeout is a delta in seconds; the transport deadline is
	// absolute, in nanoseconds.
	timeout := cfg.DefaultTimeout
	if msg.Timeout != nil {
		timeout = *msg.Timeout
	}
	deadline := uint64(g.clock.Now().UnixNano()) + timeout*uint64(time.Second)

	packet := Packet{
		Amount:   amount.Amount(),
		Denom:    amount.Denom(),
		Receiver: msg.RemoteAddress,
		Sender:   sender,
	}
	if err := packet.Validate(); err != nil {
		return nil, err
	}

	data, err := json.Marshal(packet)
	if err != nil {
		return nil, fmt.Errorf("encode packet: %w", err)
	}

	// Escrow the value before emission. The remote side is assumed to
	// accept; the host's ack/timeout handler compensates through
	// ReduceChannelBalance if it does not.
	if err := increaseChannelBalance(dao, msg.Channel, amount.Denom(), amount.Amount()); err != nil {
		return nil, err
	}

	if _, err := dao.Persist(); err != nil {
		return nil, fmt.Errorf("persist escrow state: %w", err)
	}

	handle := g.transport.SendPacket(msg.Channel, data, deadline)

	return &Response{
		Handle: handle,
		Attributes: []Attribute{
			{Key: "action", Value: "transfer"},
			{Key: "sender", Value: packet.Sender},
			{Key: "receiver", Value: packet.Receiver},
			{Key: "denom", Value: packet.Denom},
			{Key: "amount", Value: packet.Amount.String()},
		},
	}, nil
}
