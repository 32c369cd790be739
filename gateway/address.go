package gateway

import (
	"bytes"
	"crypto/sha256"
	"fmt"

	"github.com/mr-tron/base58"
)

// AccountValidator checks and normalizes account address strings before they
// are used as allow-list keys or packet senders.
type AccountValidator interface {
	// ValidateAddress returns the normalized form of the address or an
	// error matching ErrInvalidAddress.
	ValidateAddress(s string) (string, error)
}

// N3AddressVersion is the address version byte of N3 networks.
const N3AddressVersion = 0x35

// Base58Validator is an AccountValidator for base58check-encoded account
// addresses: a version byte followed by a 20-byte account script hash and a
// 4-byte double-SHA256 checksum.
type Base58Validator struct {
	// Version is the expected address version byte, e.g. N3AddressVersion.
	Version byte
}

// ValidateAddress implements AccountValidator. Valid addresses are returned
// verbatim: base58check has a single canonical form already.
func (v Base58Validator) ValidateAddress(s string) (string, error) {
	raw, err := base58.Decode(s)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidAddress, err)
	}
	if len(raw) != 25 {
		return "", fmt.Errorf("%w: expected 25 bytes, got %d", ErrInvalidAddress, len(raw))
	}
	if raw[0] != v.Version {
		return "", fmt.Errorf("%w: unexpected version byte %#x", ErrInvalidAddress, raw[0])
	}

	sum := sha256.Sum256(raw[:21])
	sum = sha256.Sum256(sum[:])
	if !bytes.Equal(sum[:4], raw[21:]) {
		return "", fmt.Errorf("%w: checksum mismatch", ErrInvalidAddress)
	}

	return s, nil
}
