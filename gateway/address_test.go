package gateway_test

import (
	"crypto/sha256"
	"testing"

	"github.com/mr-tron/base58"
	"github.com/nspcc-dev/asset-gateway/gateway"
	"github.com/stretchr/testify/require"
)

// encodeAddress builds a base58check address from a version byte and a
// 20-byte account hash.
func encodeAddress(version byte, hash [20]byte) string {
	raw := make([]byte, 0, 25)
	raw = append(raw, version)
	raw = append(raw, hash[:]...)

	sum := sha256.Sum256(raw)
	sum = sha256.Sum256(sum[:])
	return base58.Encode(append(raw, sum[:4]...))
}

func TestBase58Validator(t *testing.T) {
	v := gateway.Base58Validator{Version: gateway.N3AddressVersion}

	t.Run("valid", func(t *testing.T) {
		addr := encodeAddress(gateway.N3AddressVersion, [20]byte{1, 2, 3})

		got, err := v.ValidateAddress(addr)
		require.NoError(t, err)
		require.Equal(t, addr, got)
	})

	t.Run("not base58", func(t *testing.T) {
		_, err := v.ValidateAddress("0OIl not base58")
		require.ErrorIs(t, err, gateway.ErrInvalidAddress)
	})

	t.Run("wrong length", func(t *testing.T) {
		_, err := v.ValidateAddress(base58.Encode([]byte("short")))
		require.ErrorIs(t, err, gateway.ErrInvalidAddress)
	})

	t.Run("wrong version byte", func(t *testing.T) {
		addr := encodeAddress(0x17, [20]byte{1, 2, 3})

		_, err := v.ValidateAddress(addr)
		require.ErrorIs(t, err, gateway.ErrInvalidAddress)
	})

	t.Run("corrupted checksum", func(t *testing.T) {
		raw, err := base58.Decode(encodeAddress(gateway.N3AddressVersion, [20]byte{1, 2, 3}))
		require.NoError(t, err)
		raw[24]++

		_, err = v.ValidateAddress(base58.Encode(raw))
		require.ErrorIs(t, err, gateway.ErrInvalidAddress)
	})
}
