// Package manifest reconstructs and serializes the registry of a deployed
// Dojo world: the world contract itself, its shared base class, the resource
// metadata contract, every component contract deployed under it, and every
// registered model. The remote reconstruction replays the world contract's
// event log, so no off-chain database is required.
package manifest

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dojoengine/worldscan/core/felt"
)

// Well-known resource names fixed by the framework.
const (
	WorldContractName            = "dojo::world::world"
	BaseContractName             = "dojo::base::base"
	ResourceMetadataContractName = "dojo::resource_metadata::resource_metadata"
	// ResourceMetadataModelName is the reserved model under which a world
	// stores per-resource metadata, as a Cairo short string.
	ResourceMetadataModelName = "ResourceMetadata"
)

// Member is one field of a model. Key members are part of the entity
// identity.
type Member struct {
	Name string `json:"name"`
	Type string `json:"type"`
	Key  bool   `json:"key"`
}

// Model is a registered data schema and the class hash of the logic that
// last defined it. A manifest holds one live entry per model name.
type Model struct {
	Name      string          `json:"name"`
	Members   []Member        `json:"members"`
	ClassHash *felt.Felt      `json:"class_hash"`
	ABI       json.RawMessage `json:"abi,omitempty"`
}

// ComputedValueEntrypoint describes a read-only derived-value hook exposed
// by a contract.
type ComputedValueEntrypoint struct {
	Contract   string  `json:"contract"`
	Entrypoint string  `json:"entrypoint"`
	Model      *string `json:"model"`
}

// Contract is a deployed component. A manifest holds one live entry per
// address; after reconstruction ClassHash reflects the latest observed
// upgrade of that address.
type Contract struct {
	Name      string                    `json:"name"`
	Address   *felt.Felt                `json:"address,omitempty"`
	ClassHash *felt.Felt                `json:"class_hash"`
	ABI       json.RawMessage           `json:"abi,omitempty"`
	Reads     []string                  `json:"reads"`
	Writes    []string                  `json:"writes"`
	Computed  []ComputedValueEntrypoint `json:"computed"`
}

// Class is shared logic with no address of its own, such as the base
// template all components inherit.
type Class struct {
	Name      string          `json:"name"`
	ClassHash *felt.Felt      `json:"class_hash"`
	ABI       json.RawMessage `json:"abi,omitempty"`
}

// Manifest is a complete snapshot of a world. It is a pure value: built
// fresh by LoadFromRemote or decoded whole by LoadFromPath, never mutated
// incrementally.
type Manifest struct {
	World            Contract   `json:"world"`
	Base             Class      `json:"base"`
	ResourceMetadata Contract   `json:"resource_metadata"`
	Contracts        []Contract `json:"contracts"`
	Models           []Model    `json:"models"`
}

// LoadFromPath reads a previously materialized manifest snapshot.
func LoadFromPath(path string) (*Manifest, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	m := new(Manifest)
	if err := json.NewDecoder(file).Decode(m); err != nil {
		return nil, fmt.Errorf("decode manifest %q: %w", path, err)
	}
	return m, nil
}

// WriteToPath writes the manifest into the file at the given path. The file
// must already exist.
func (m *Manifest) WriteToPath(path string) error {
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_TRUNC, 0)
	if err != nil {
		return err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	return enc.Encode(m)
}
