package starknet_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dojoengine/worldscan/starknet"
	"github.com/dojoengine/worldscan/utils"
)

type rpcCall struct {
	Method string            `json:"method"`
	Params []json.RawMessage `json:"params"`
}

// newTestClient returns a client backed by a server that records incoming
// calls and replies per method with the given raw JSON result or error.
func newTestClient(t *testing.T, handler func(call rpcCall) (result string, rpcErr *starknet.Error)) (*starknet.Client, *[]rpcCall) {
	t.Helper()

	calls := new([]rpcCall)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			rpcCall
			ID uint64 `json:"id"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		*calls = append(*calls, req.rpcCall)

		result, rpcErr := handler(req.rpcCall)
		resp := map[string]any{"jsonrpc": "2.0", "id": req.ID}
		if rpcErr != nil {
			resp["error"] = rpcErr
		} else {
			resp["result"] = json.RawMessage(result)
		}
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
	t.Cleanup(srv.Close)

	return starknet.NewClient(srv.URL, utils.NewNopZapLogger()), calls
}

func TestClassHashAt(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		client, calls := newTestClient(t, func(call rpcCall) (string, *starknet.Error) {
			return `"0xdeadbeef"`, nil
		})

		classHash, err := client.ClassHashAt(context.Background(), utils.HexToFelt(t, "0xabc"), starknet.BlockID{Pending: true})
		require.NoError(t, err)
		assert.Equal(t, "0xdeadbeef", classHash.String())

		require.Len(t, *calls, 1)
		assert.Equal(t, "starknet_getClassHashAt", (*calls)[0].Method)
		assert.Equal(t, `"pending"`, string((*calls)[0].Params[0]))
		assert.Equal(t, `"0xabc"`, string((*calls)[0].Params[1]))
	})

	t.Run("contract not found", func(t *testing.T) {
		client, _ := newTestClient(t, func(call rpcCall) (string, *starknet.Error) {
			return "", &starknet.Error{Code: starknet.CodeContractNotFound, Message: "Contract not found"}
		})

		_, err := client.ClassHashAt(context.Background(), utils.HexToFelt(t, "0xabc"), starknet.BlockID{Pending: true})
		require.Error(t, err)
		assert.True(t, starknet.IsContractNotFound(err))
		assert.False(t, starknet.IsContractError(err))
	})
}

func TestCall(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		client, calls := newTestClient(t, func(call rpcCall) (string, *starknet.Error) {
			return `["0x1", "0x2"]`, nil
		})

		ret, err := client.Call(context.Background(), starknet.FunctionCall{
			ContractAddress:    utils.HexToFelt(t, "0xa"),
			EntryPointSelector: utils.HexToFelt(t, "0xb"),
		}, starknet.BlockID{Latest: true})
		require.NoError(t, err)
		require.Len(t, ret, 2)
		assert.Equal(t, "0x1", ret[0].String())
		assert.Equal(t, "0x2", ret[1].String())

		require.Len(t, *calls, 1)
		assert.Equal(t, "starknet_call", (*calls)[0].Method)
		assert.Equal(t, `"latest"`, string((*calls)[0].Params[1]))
	})

	t.Run("reverted", func(t *testing.T) {
		client, _ := newTestClient(t, func(call rpcCall) (string, *starknet.Error) {
			return "", &starknet.Error{Code: starknet.CodeContractError, Message: "Contract error"}
		})

		_, err := client.Call(context.Background(), starknet.FunctionCall{}, starknet.BlockID{Latest: true})
		require.Error(t, err)
		assert.True(t, starknet.IsContractError(err))
	})
}

func TestEvents(t *testing.T) {
	client, calls := newTestClient(t, func(call rpcCall) (string, *starknet.Error) {
		return `{
			"events": [
				{"keys": ["0x1"], "data": ["0x2"], "transaction_hash": "0x3", "block_number": 7}
			],
			"continuation_token": "next"
		}`, nil
	})

	chunk, err := client.Events(context.Background(), starknet.EventFilter{
		Address: utils.HexToFelt(t, "0x1"),
	}, "prev", 100)
	require.NoError(t, err)
	require.Len(t, chunk.Events, 1)
	assert.Equal(t, "next", chunk.ContinuationToken)
	require.NotNil(t, chunk.Events[0].BlockNumber)
	assert.Equal(t, uint64(7), *chunk.Events[0].BlockNumber)

	require.Len(t, *calls, 1)
	assert.Equal(t, "starknet_getEvents", (*calls)[0].Method)

	var arg struct {
		ContinuationToken string `json:"continuation_token"`
		ChunkSize         uint64 `json:"chunk_size"`
	}
	require.NoError(t, json.Unmarshal((*calls)[0].Params[0], &arg))
	assert.Equal(t, "prev", arg.ContinuationToken)
	assert.Equal(t, uint64(100), arg.ChunkSize)
}
