// Package starknet defines the read-only ledger capability the manifest
// reconstruction consumes, together with the JSON-RPC wire types it is
// expressed in and an HTTP client implementation.
package starknet

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/dojoengine/worldscan/core/felt"
)

//go:generate mockgen -destination=../mocks/mock_provider.go -package=mocks github.com/dojoengine/worldscan/starknet Provider

// Provider is the subset of the Starknet JSON-RPC read API needed to
// reconstruct a world manifest.
type Provider interface {
	// ClassHashAt returns the class hash of the contract deployed at the
	// given address.
	ClassHashAt(ctx context.Context, address *felt.Felt, blockID BlockID) (*felt.Felt, error)
	// Call executes a read-only function call and returns its raw output.
	Call(ctx context.Context, call FunctionCall, blockID BlockID) ([]*felt.Felt, error)
	// Events returns one page of events matching the filter, along with a
	// continuation token when more pages remain.
	Events(ctx context.Context, filter EventFilter, continuationToken string, chunkSize uint64) (*EventsChunk, error)
}

// https://github.com/starkware-libs/starknet-specs/blob/a789ccc3432c57777beceaa53a34a7ae2f25fda0/api/starknet_api_openrpc.json#L814
type BlockID struct {
	Pending bool
	Latest  bool
	Hash    *felt.Felt
	Number  uint64
}

func (b *BlockID) UnmarshalJSON(data []byte) error {
	if string(data) == `"latest"` {
		b.Latest = true
	} else if string(data) == `"pending"` {
		b.Pending = true
	} else {
		jsonObject := make(map[string]json.RawMessage)
		if err := json.Unmarshal(data, &jsonObject); err != nil {
			return err
		}
		hash, ok := jsonObject["block_hash"]
		if ok {
			b.Hash = new(felt.Felt)
			return json.Unmarshal(hash, b.Hash)
		}

		number, ok := jsonObject["block_number"]
		if ok {
			return json.Unmarshal(number, &b.Number)
		}

		return errors.New("cannot unmarshal block id")
	}
	return nil
}

func (b BlockID) MarshalJSON() ([]byte, error) {
	switch {
	case b.Latest:
		return []byte(`"latest"`), nil
	case b.Pending:
		return []byte(`"pending"`), nil
	case b.Hash != nil:
		return json.Marshal(map[string]*felt.Felt{"block_hash": b.Hash})
	default:
		return json.Marshal(map[string]uint64{"block_number": b.Number})
	}
}

// FunctionCall is the request body of starknet_call.
type FunctionCall struct {
	ContractAddress    *felt.Felt   `json:"contract_address"`
	EntryPointSelector *felt.Felt   `json:"entry_point_selector"`
	Calldata           []*felt.Felt `json:"calldata"`
}

// EventFilter selects events by emitting address and key patterns. Keys is
// matched positionally: an event matches when, for every position, its key
// equals one of the felts in that position's group (an empty group matches
// anything).
type EventFilter struct {
	FromBlock *BlockID       `json:"from_block,omitempty"`
	ToBlock   *BlockID       `json:"to_block,omitempty"`
	Address   *felt.Felt     `json:"address,omitempty"`
	Keys      [][]*felt.Felt `json:"keys"`
}

type Event struct {
	From *felt.Felt   `json:"from_address,omitempty"`
	Keys []*felt.Felt `json:"keys"`
	Data []*felt.Felt `json:"data"`
}

// EmittedEvent is an event together with its position in the ledger.
// BlockNumber and BlockHash are nil for events from the pending block.
type EmittedEvent struct {
	*Event
	BlockNumber     *uint64    `json:"block_number,omitempty"`
	BlockHash       *felt.Felt `json:"block_hash,omitempty"`
	TransactionHash *felt.Felt `json:"transaction_hash"`
}

// EventsChunk is one page of a paginated starknet_getEvents result. An empty
// ContinuationToken means the page is the last one.
type EventsChunk struct {
	Events            []*EmittedEvent `json:"events"`
	ContinuationToken string          `json:"continuation_token,omitempty"`
}
