/*
Package gateway implements a cross-domain asset-transfer gateway.

The gateway accepts a deposit of value, either in the chain-native unit of
account or in a fungible token tracked by a separate ledger contract, escrows
it in its own storage and emits an outbound packet instructing a remote
domain to release the equivalent value to a destination address.

Accounting is optimistic: the per-channel escrow ledger is incremented
before the packet leaves, assuming the remote side accepts. When the remote
domain rejects the packet, or never acknowledges it within its deadline, the host's
acknowledgement handler compensates with ReduceChannelBalance. The successful
transfer request is not reopened by that compensation; the ledger entry of a
(channel, denomination) pair therefore keeps two counters, the outstanding
value awaiting confirmation and the monotonically growing total ever sent.

Both deposit styles funnel into one validation pipeline:

  - a direct transfer request carrying exactly one non-zero native coin;
  - a notification from an allow-listed token ledger reporting that tokens
    were moved into the gateway's custody, with the transfer request embedded
    into the notification payload. The notification's verified ledger address
    and amount are the transferred value; the embedded payload only supplies
    the channel, destination and timeout.

All state lives in a neo-go storage.Store handed in explicitly; there are no
package-level variables. Each state-changing request runs against a private
write-buffer (storage.MemCachedStore) persisted as a whole on success and
dropped as a whole on any rejection, and the execution environment is
expected to process requests strictly sequentially.

Successful operations report an attribute record:

  Transfer:
    - name: action
      type: String ("transfer")
    - name: sender
      type: String
    - name: receiver
      type: String
    - name: denom
      type: String
    - name: amount
      type: Integer (decimal string)

  Instantiate:
    - name: action
      type: String ("instantiate")
    - name: default_timeout
      type: Integer (decimal string, seconds)
*/
package gateway
