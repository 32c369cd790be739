package gateway

import "errors"

// Validation errors. Requests carrying them are malformed and must be fixed
// by the caller, nothing is written to the storage.
var (
	// ErrInvalidAddress is returned when an account address does not pass
	// the configured AccountValidator.
	ErrInvalidAddress = errors.New("invalid account address")
	// ErrInvalidPayload is returned when the transfer payload embedded into
	// a token notification cannot be decoded.
	ErrInvalidPayload = errors.New("invalid embedded transfer payload")
	// ErrAmountRange is returned when a quantity entering the gateway is
	// missing, negative or does not fit into 128 bits.
	ErrAmountRange = errors.New("amount out of 128-bit range")
)

// Policy errors. The request is well-formed but not acceptable in the current
// state, nothing is written to the storage.
var (
	// ErrNoFunds is returned when a transfer carries no value.
	ErrNoFunds = errors.New("no funds attached")
	// ErrMultipleDenoms is returned when more than one coin is attached to
	// a direct transfer.
	ErrMultipleDenoms = errors.New("more than one denomination attached")
	// ErrNoSuchChannel is returned when the requested channel is not
	// registered.
	ErrNoSuchChannel = errors.New("no such channel")
	// ErrNotOnAllowList is returned when a token ledger that is not on the
	// allow list tries to originate a transfer.
	ErrNotOnAllowList = errors.New("token ledger is not on the allow list")
)

var (
	// ErrAmountOverflow is returned when an escrow counter would exceed its
	// 128-bit capacity. The ledger entry is left untouched.
	ErrAmountOverflow = errors.New("escrow counter overflow")
	// ErrInvalidPacket is returned when the constructed outbound packet is
	// not well-formed.
	ErrInvalidPacket = errors.New("invalid outbound packet")
)

// Compensation path errors, see Gateway.ReduceChannelBalance.
var (
	// ErrNoChannelState is returned when there is no balance recorded for
	// the channel and denomination pair.
	ErrNoChannelState = errors.New("no balance recorded for the channel and denomination")
	// ErrInsufficientEscrow is returned when a compensating decrement is
	// bigger than the outstanding balance.
	ErrInsufficientEscrow = errors.New("escrow underflow")
)

// ErrAlreadyInstantiated is returned by Instantiate when the underlying
// storage already holds gateway state.
var ErrAlreadyInstantiated = errors.New("gateway is already instantiated")

// errNotInstantiated is returned by operations that require configuration
// written by Instantiate.
var errNotInstantiated = errors.New("gateway is not instantiated")
