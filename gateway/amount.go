package gateway

import (
	"encoding/json"
	"fmt"
	"math/big"
	"strings"
)

// ledgeredDenomPrefix marks denomination keys of token-ledger values. The
// rest of the key is the ledger contract address, verbatim.
const ledgeredDenomPrefix = "cw20:"

// maxUint128 is the exclusive upper bound of every quantity handled by the
// gateway.
var maxUint128 = new(big.Int).Lsh(big.NewInt(1), 128)

// Amount is a value in either the chain-native unit of account or a fungible
// token tracked by an external ledger contract. The two variants share one
// denomination namespace: native values are keyed by their denomination
// string, ledgered ones by "cw20:" followed by the ledger contract address.
//
// The zero Amount is an empty native value with no denomination.
type Amount struct {
	denom  string // native denomination, empty for ledgered values
	ledger string // ledger contract address, empty for native values
	amount *big.Int
}

// NativeAmount returns an Amount of the chain-native unit of account.
func NativeAmount(denom string, amount *big.Int) Amount {
	return Amount{denom: denom, amount: copyQuantity(amount)}
}

// LedgeredAmount returns an Amount tracked by the given token ledger
// contract.
func LedgeredAmount(ledger string, amount *big.Int) Amount {
	return Amount{ledger: ledger, amount: copyQuantity(amount)}
}

// AmountFromParts decodes a persisted denomination key back into an Amount.
// It is the exact inverse of Denom: keys with the "cw20:" prefix produce
// ledgered amounts, any other key produces a native one.
func AmountFromParts(denom string, amount *big.Int) Amount {
	if strings.HasPrefix(denom, ledgeredDenomPrefix) {
		return LedgeredAmount(denom[len(ledgeredDenomPrefix):], amount)
	}
	return NativeAmount(denom, amount)
}

// Amount returns the quantity.
func (a Amount) Amount() *big.Int {
	return copyQuantity(a.amount)
}

// Denom returns the denomination key of the value.
func (a Amount) Denom() string {
	if a.ledger != "" {
		return ledgeredDenomPrefix + a.ledger
	}
	return a.denom
}

// IsEmpty reports whether the quantity is zero.
func (a Amount) IsEmpty() bool {
	return a.amount == nil || a.amount.Sign() == 0
}

// IsLedgered reports whether the value is tracked by a token ledger.
func (a Amount) IsLedgered() bool {
	return a.ledger != ""
}

// Ledger returns the token ledger contract address, empty for native values.
func (a Amount) Ledger() string {
	return a.ledger
}

type nativeCoin struct {
	Denom  string   `json:"denom"`
	Amount *big.Int `json:"amount"`
}

type ledgeredCoin struct {
	Address string   `json:"address"`
	Amount  *big.Int `json:"amount"`
}

type amountJSON struct {
	Native *nativeCoin   `json:"native,omitempty"`
	Cw20   *ledgeredCoin `json:"cw20,omitempty"`
}

// MarshalJSON encodes the Amount as a tagged union, e.g.
// {"native":{"denom":"gas","amount":100}} or
// {"cw20":{"address":"...","amount":100}}.
func (a Amount) MarshalJSON() ([]byte, error) {
	if a.ledger != "" {
		return json.Marshal(amountJSON{Cw20: &ledgeredCoin{Address: a.ledger, Amount: a.Amount()}})
	}
	return json.Marshal(amountJSON{Native: &nativeCoin{Denom: a.denom, Amount: a.Amount()}})
}

// UnmarshalJSON decodes the tagged union produced by MarshalJSON.
func (a *Amount) UnmarshalJSON(data []byte) error {
	var u amountJSON
	if err := json.Unmarshal(data, &u); err != nil {
		return err
	}
	switch {
	case u.Native != nil && u.Cw20 == nil:
		*a = NativeAmount(u.Native.Denom, u.Native.Amount)
	case u.Cw20 != nil && u.Native == nil:
		*a = LedgeredAmount(u.Cw20.Address, u.Cw20.Amount)
	default:
		return fmt.Errorf("amount must have exactly one of 'native' and 'cw20' set")
	}
	return nil
}

// Coin is a single native payment attached to a direct transfer request.
type Coin struct {
	Denom  string   `json:"denom"`
	Amount *big.Int `json:"amount"`
}

// checkQuantity verifies that q is usable as a gateway quantity: present,
// non-negative and representable in 128 bits.
func checkQuantity(q *big.Int) error {
	if q == nil || q.Sign() < 0 || q.Cmp(maxUint128) >= 0 {
		return ErrAmountRange
	}
	return nil
}

func copyQuantity(q *big.Int) *big.Int {
	if q == nil {
		return new(big.Int)
	}
	return new(big.Int).Set(q)
}
