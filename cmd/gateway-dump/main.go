// Command gateway-dump prints the full state of a deployed asset-transfer
// gateway as JSON: version record, configuration and every registered channel
// with its escrow ledger. The state is read straight from the gateway's
// BoltDB backing store, so the tool must not run concurrently with the host.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/google/uuid"
	"github.com/nspcc-dev/asset-gateway/gateway"
	"github.com/nspcc-dev/neo-go/pkg/core/storage"
	"github.com/nspcc-dev/neo-go/pkg/core/storage/dbconfig"
)

type stateDump struct {
	Version  gateway.VersionResponse   `json:"version"`
	Config   gateway.ConfigResponse    `json:"config"`
	Port     gateway.PortResponse      `json:"port"`
	Channels []gateway.ChannelResponse `json:"channels"`
}

// nopTransport satisfies the gateway's transport requirement. A dump never
// moves value, so it is never called.
type nopTransport struct{}

func (nopTransport) SendPacket(string, []byte, uint64) uuid.UUID { return uuid.Nil }

func main() {
	dbPath := flag.String("db", "", "Path to the gateway's BoltDB backing store")
	portID := flag.String("port", "gateway", "Transport endpoint identity of the gateway")

	flag.Parse()

	if *dbPath == "" {
		log.Fatal("missing backing store path")
	}

	err := dump(*dbPath, *portID)
	if err != nil {
		log.Fatal(err)
	}
}

func dump(dbPath, portID string) error {
	st, err := storage.NewBoltDBStore(dbconfig.BoltDBOptions{FilePath: dbPath})
	if err != nil {
		return fmt.Errorf("open backing store: %w", err)
	}

	defer st.Close()

	registry := gateway.NewStoreRegistry(st, portID)

	gw, err := gateway.New(gateway.Prm{
		Store:     st,
		Registry:  registry,
		Validator: gateway.Base58Validator{Version: gateway.N3AddressVersion},
		Transport: nopTransport{},
		Clock:     gateway.SystemClock{},
	})
	if err != nil {
		return fmt.Errorf("init gateway: %w", err)
	}

	var res stateDump

	res.Version, err = gw.Version()
	if err != nil {
		return fmt.Errorf("read version record: %w", err)
	}

	res.Config, err = gw.Config()
	if err != nil {
		return fmt.Errorf("read configuration: %w", err)
	}

	res.Port = gw.Port()

	list, err := gw.ListChannels()
	if err != nil {
		return fmt.Errorf("list channels: %w", err)
	}

	res.Channels = make([]gateway.ChannelResponse, 0, len(list.Channels))

	for _, info := range list.Channels {
		ch, err := gw.Channel(info.ID)
		if err != nil {
			return fmt.Errorf("read channel %q: %w", info.ID, err)
		}

		res.Channels = append(res.Channels, ch)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")

	return enc.Encode(res)
}
