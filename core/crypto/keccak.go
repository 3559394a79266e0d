package crypto

import (
	"sync"

	"golang.org/x/crypto/sha3"

	"github.com/dojoengine/worldscan/core/felt"
)

var keccakMutex sync.Mutex

var h = sha3.NewLegacyKeccak256()

// StarknetKeccak implements [Starknet keccak]
//
// [Starknet keccak]: https://docs.starknet.io/documentation/develop/Hashing/hash-functions/#starknet_keccak
func StarknetKeccak(b []byte) (*felt.Felt, error) {
	keccakMutex.Lock()
	defer keccakMutex.Unlock()
	h.Reset()
	_, err := h.Write(b)
	if err != nil {
		return nil, err
	}
	d := h.Sum(nil)
	// Remove the first 6 bits from the first byte
	d[0] &= 3
	return new(felt.Felt).SetBytes(d), nil
}

// Selector returns the entrypoint selector for name, the Starknet keccak of
// its ASCII bytes. It panics on hasher failure and is meant for selectors
// known at compile time.
func Selector(name string) *felt.Felt {
	sel, err := StarknetKeccak([]byte(name))
	if err != nil {
		panic(err)
	}
	return sel
}
