/*
Package gatewaytest provides collaborator fakes for testing code built on the
gateway package: a recording packet transport, a fixed clock and a permissive
account validator. All of them are deterministic except for the uuid handles
fabricated by the transport.
*/
package gatewaytest

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nspcc-dev/asset-gateway/gateway"
)

// SentPacket is one emission recorded by Transport.
type SentPacket struct {
	Channel  string
	Data     []byte
	Deadline uint64
	Handle   uuid.UUID
}

// Transport is a gateway.PacketTransport recording every emission in order.
// The zero value is ready to use.
type Transport struct {
	Packets []SentPacket
}

// SendPacket implements gateway.PacketTransport.
func (t *Transport) SendPacket(channel string, data []byte, deadline uint64) uuid.UUID {
	h := uuid.New()
	t.Packets = append(t.Packets, SentPacket{
		Channel:  channel,
		Data:     data,
		Deadline: deadline,
		Handle:   h,
	})
	return h
}

// Clock is a gateway.Clock frozen at T.
type Clock struct {
	T time.Time
}

// Now implements gateway.Clock.
func (c Clock) Now() time.Time { return c.T }

// Validator is a permissive gateway.AccountValidator accepting any non-empty
// address without whitespace, returned verbatim. It plays the role real
// address decoding plays in production setups without forcing tests to mint
// well-formed addresses.
type Validator struct{}

// ValidateAddress implements gateway.AccountValidator.
func (Validator) ValidateAddress(s string) (string, error) {
	if s == "" || strings.ContainsAny(s, " \t\r\n") {
		return "", fmt.Errorf("%w: %q", gateway.ErrInvalidAddress, s)
	}
	return s, nil
}
