package main

import (
	"fmt"
	"os"

	gen "github.com/whyrusleeping/cbor-gen"

	"github.com/darwinia-network/darwinia-bridge-substrate/chain/feemarket"
	"github.com/darwinia-network/darwinia-bridge-substrate/chain/trie"
	"github.com/darwinia-network/darwinia-bridge-substrate/chain/types"
)

func main() {
	err := gen.WriteTupleEncodersToFile("./chain/types/cbor_gen.go", "types",
		types.MessageKey{},
		types.MessageData{},
		types.Message{},
		types.OutboundLaneData{},
		types.DeliveredMessages{},
		types.UnrewardedRelayer{},
		types.InboundLaneData{},
		types.CallOrigin{},
		types.MessagePayload{},
		types.MessagesProof{},
		types.MessagesDeliveryProof{},
		types.BridgedHeader{},
	)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	err = gen.WriteTupleEncodersToFile("./chain/trie/cbor_gen.go", "trie",
		trie.Node{},
	)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	err = gen.WriteTupleEncodersToFile("./chain/feemarket/cbor_gen.go", "feemarket",
		feemarket.Relayer{},
		feemarket.AssignedRelayer{},
		feemarket.Order{},
	)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
