package starknet_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dojoengine/worldscan/starknet"
	"github.com/dojoengine/worldscan/utils"
)

func TestBlockIDJSON(t *testing.T) {
	tests := []struct {
		name    string
		blockID starknet.BlockID
		want    string
	}{
		{"latest", starknet.BlockID{Latest: true}, `"latest"`},
		{"pending", starknet.BlockID{Pending: true}, `"pending"`},
		{"hash", starknet.BlockID{Hash: utils.HexToFelt(t, "0xdead")}, `{"block_hash":"0xdead"}`},
		{"number", starknet.BlockID{Number: 42}, `{"block_number":42}`},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			marshalled, err := json.Marshal(test.blockID)
			require.NoError(t, err)
			assert.Equal(t, test.want, string(marshalled))

			var back starknet.BlockID
			require.NoError(t, json.Unmarshal(marshalled, &back))
			assert.Equal(t, test.blockID.Latest, back.Latest)
			assert.Equal(t, test.blockID.Pending, back.Pending)
			assert.Equal(t, test.blockID.Number, back.Number)
			if test.blockID.Hash != nil {
				require.NotNil(t, back.Hash)
				assert.True(t, test.blockID.Hash.Equal(back.Hash))
			}
		})
	}
}

func TestErrorString(t *testing.T) {
	err := &starknet.Error{Code: 40, Message: "Contract error", Data: "revert"}
	assert.Equal(t, "40 Contract error: revert", err.Error())
}
