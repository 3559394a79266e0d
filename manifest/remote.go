package manifest

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/sourcegraph/conc/pool"

	"github.com/dojoengine/worldscan/core/crypto"
	"github.com/dojoengine/worldscan/core/felt"
	"github.com/dojoengine/worldscan/shortstring"
	"github.com/dojoengine/worldscan/starknet"
	"github.com/dojoengine/worldscan/utils"
)

// ErrRemoteWorldNotFound is returned when no world contract is deployed at
// the given address.
var ErrRemoteWorldNotFound = errors.New("remote world not found")

// eventChunkSize is the page size used when draining the world's event log.
const eventChunkSize = 100

const defaultNameConcurrency = 4

// Event selectors and entrypoints of the world contract.
var (
	modelRegisteredEvent  = crypto.Selector("ModelRegistered")
	contractDeployedEvent = crypto.Selector("ContractDeployed")
	contractUpgradedEvent = crypto.Selector("ContractUpgraded")

	baseEntrypoint         = crypto.Selector("base")
	modelEntrypoint        = crypto.Selector("model")
	dojoResourceEntrypoint = crypto.Selector("dojo_resource")

	resourceMetadataModelFelt = func() *felt.Felt {
		name, err := shortstring.Encode(ResourceMetadataModelName)
		if err != nil {
			panic(err)
		}
		return name
	}()
)

type config struct {
	log             utils.SimpleLogger
	nameConcurrency int
}

type Option func(*config)

// WithLogger sets the logger used during reconstruction.
func WithLogger(log utils.SimpleLogger) Option {
	return func(c *config) {
		c.log = log
	}
}

// WithNameConcurrency bounds the number of in-flight name resolution calls.
func WithNameConcurrency(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.nameConcurrency = n
		}
	}
}

// LoadFromRemote reconstructs the manifest of the world deployed at
// worldAddress by replaying its event log through the provider. The returned
// manifest is complete or the call fails as a whole; no partial result is
// ever returned.
func LoadFromRemote(ctx context.Context, provider starknet.Provider, worldAddress *felt.Felt, opts ...Option) (*Manifest, error) {
	cfg := config{
		log:             utils.NewNopZapLogger(),
		nameConcurrency: defaultNameConcurrency,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	pending := starknet.BlockID{Pending: true}

	worldClassHash, err := provider.ClassHashAt(ctx, worldAddress, pending)
	if err != nil {
		if starknet.IsContractNotFound(err) {
			return nil, ErrRemoteWorldNotFound
		}
		return nil, fmt.Errorf("get world class hash: %w", err)
	}

	baseRet, err := provider.Call(ctx, starknet.FunctionCall{
		ContractAddress:    worldAddress,
		EntryPointSelector: baseEntrypoint,
		Calldata:           []*felt.Felt{},
	}, pending)
	if err != nil {
		return nil, fmt.Errorf("get base class hash: %w", err)
	}
	if len(baseRet) < 1 {
		return nil, errors.New("empty response from world base entrypoint")
	}
	baseClassHash := baseRet[0]

	metadataRet, err := provider.Call(ctx, starknet.FunctionCall{
		ContractAddress:    worldAddress,
		EntryPointSelector: modelEntrypoint,
		Calldata:           []*felt.Felt{resourceMetadataModelFelt},
	}, pending)
	if err != nil {
		return nil, fmt.Errorf("get resource metadata model: %w", err)
	}
	if len(metadataRet) < 2 {
		return nil, errors.New("truncated response from world model entrypoint")
	}
	metadataClassHash := metadataRet[0]
	// An all-zero address means the resource metadata contract is not yet
	// deployed.
	var metadataAddress *felt.Felt
	if !metadataRet[1].IsZero() {
		metadataAddress = metadataRet[1]
	}

	models, contracts, err := remoteModelsAndContracts(ctx, &cfg, provider, worldAddress)
	if err != nil {
		return nil, err
	}

	cfg.log.Infow("Reconstructed world manifest",
		"world", worldAddress, "contracts", len(contracts), "models", len(models))

	return &Manifest{
		World: Contract{
			Name:      WorldContractName,
			Address:   worldAddress,
			ClassHash: worldClassHash,
		},
		Base: Class{
			Name:      BaseContractName,
			ClassHash: baseClassHash,
		},
		ResourceMetadata: Contract{
			Name:      ResourceMetadataContractName,
			Address:   metadataAddress,
			ClassHash: metadataClassHash,
		},
		Contracts: contracts,
		Models:    models,
	}, nil
}

func remoteModelsAndContracts(ctx context.Context, cfg *config, provider starknet.Provider,
	worldAddress *felt.Felt,
) ([]Model, []Contract, error) {
	events, err := fetchAllEvents(ctx, cfg, provider, worldAddress, [][]*felt.Felt{{
		modelRegisteredEvent,
		contractDeployedEvent,
		contractUpgradedEvent,
	}})
	if err != nil {
		return nil, nil, err
	}

	var registered, deployed, upgraded []*starknet.EmittedEvent
	for _, event := range events {
		if len(event.Keys) == 0 {
			continue
		}
		switch key := event.Keys[0]; {
		case key.Equal(modelRegisteredEvent):
			registered = append(registered, event)
		case key.Equal(contractDeployedEvent):
			deployed = append(deployed, event)
		case key.Equal(contractUpgradedEvent):
			upgraded = append(upgraded, event)
		}
	}
	cfg.log.Debugw("Classified world events",
		"registered", len(registered), "deployed", len(deployed), "upgraded", len(upgraded))

	models, err := parseModelEvents(registered)
	if err != nil {
		return nil, nil, err
	}

	contracts, err := parseContractEvents(deployed, upgraded)
	if err != nil {
		return nil, nil, err
	}

	if err := resolveContractNames(ctx, cfg, provider, contracts); err != nil {
		return nil, nil, err
	}

	return models, contracts, nil
}

// fetchAllEvents drains the world's event log to completion, following
// continuation tokens. The scan is unbounded: both ends of the block range
// are left open so every reconstruction replays the full history.
func fetchAllEvents(ctx context.Context, cfg *config, provider starknet.Provider,
	worldAddress *felt.Felt, keys [][]*felt.Felt,
) ([]*starknet.EmittedEvent, error) {
	filter := starknet.EventFilter{
		Address: worldAddress,
		Keys:    keys,
	}

	var events []*starknet.EmittedEvent
	var token string
	for {
		chunk, err := provider.Events(ctx, filter, token, eventChunkSize)
		if err != nil {
			return nil, fmt.Errorf("get world events: %w", err)
		}
		events = append(events, chunk.Events...)

		cfg.log.Debugw("Fetched world events page",
			"page_size", len(chunk.Events), "total", len(events))

		token = chunk.ContinuationToken
		if token == "" {
			return events, nil
		}
	}
}

// parseContractEvents merges deployment and upgrade events into one Contract
// per deployed address. An upgraded class hash wins over the deployed one;
// upgrade events for addresses that were never deployed are dropped.
func parseContractEvents(deployed, upgraded []*starknet.EmittedEvent) ([]Contract, error) {
	upgrades, err := latestUpgrades(upgraded)
	if err != nil {
		return nil, err
	}

	contracts := make([]Contract, 0, len(deployed))
	for _, event := range deployed {
		// ContractDeployed data: [salt, class_hash, address]; the salt is
		// not part of the manifest.
		if len(event.Data) < 3 {
			return nil, fmt.Errorf("malformed ContractDeployed event: %d data felts", len(event.Data))
		}
		classHash, address := event.Data[1], event.Data[2]

		if upgrade, ok := upgrades[*address]; ok {
			classHash = upgrade
		}

		contracts = append(contracts, Contract{
			Address:   address,
			ClassHash: classHash,
		})
	}
	return contracts, nil
}

// latestUpgrades reduces upgrade events to the class hash carried by the
// highest-block upgrade of each address. Events without a block number are
// ignored: they cannot be ordered against the ones already processed.
func latestUpgrades(upgraded []*starknet.EmittedEvent) (map[felt.Felt]*felt.Felt, error) {
	type upgrade struct {
		blockNumber uint64
		classHash   *felt.Felt
	}

	latest := make(map[felt.Felt]upgrade, len(upgraded))
	for _, event := range upgraded {
		// ContractUpgraded data: [class_hash, address].
		if len(event.Data) < 2 {
			return nil, fmt.Errorf("malformed ContractUpgraded event: %d data felts", len(event.Data))
		}
		classHash, address := event.Data[0], event.Data[1]

		if event.BlockNumber == nil {
			continue
		}

		if current, ok := latest[*address]; !ok || current.blockNumber < *event.BlockNumber {
			latest[*address] = upgrade{blockNumber: *event.BlockNumber, classHash: classHash}
		}
	}

	upgrades := make(map[felt.Felt]*felt.Felt, len(latest))
	for address, u := range latest {
		upgrades[address] = u.classHash
	}
	return upgrades, nil
}

// parseModelEvents folds registration events into one Model per name. A
// registration overwrites the recorded class hash only when its declared
// previous class hash matches the current one, so broken upgrade chains are
// never applied.
//
// Events are folded in retrieval order, not ledger order. This mirrors the
// behavior consumers already depend on; a registration arriving before an
// earlier link of its chain is treated as the chain head.
func parseModelEvents(registered []*starknet.EmittedEvent) ([]Model, error) {
	classHashes := make(map[string]*felt.Felt, len(registered))
	for _, event := range registered {
		// ModelRegistered data: [class_hash, prev_class_hash, name].
		if len(event.Data) < 3 {
			return nil, fmt.Errorf("malformed ModelRegistered event: %d data felts", len(event.Data))
		}
		classHash, prevClassHash := event.Data[0], event.Data[1]

		name, err := shortstring.Decode(event.Data[2])
		if err != nil {
			return nil, fmt.Errorf("decode model name %s: %w", event.Data[2], err)
		}

		if current, ok := classHashes[name]; ok {
			if current.Equal(prevClassHash) {
				classHashes[name] = classHash
			}
		} else {
			classHashes[name] = classHash
		}
	}

	models := make([]Model, 0, len(classHashes))
	for name, classHash := range classHashes {
		models = append(models, Model{Name: name, ClassHash: classHash})
	}
	sort.Slice(models, func(i, j int) bool {
		return models[i].Name < models[j].Name
	})
	return models, nil
}

// resolveContractNames fills in each contract's name by calling its
// dojo_resource entrypoint at the latest confirmed state. Contracts that do
// not implement the entrypoint revert and keep an empty name; any other
// provider failure aborts the whole batch.
func resolveContractNames(ctx context.Context, cfg *config, provider starknet.Provider, contracts []Contract) error {
	latest := starknet.BlockID{Latest: true}

	p := pool.New().
		WithContext(ctx).
		WithMaxGoroutines(cfg.nameConcurrency).
		WithCancelOnError().
		WithFirstError()

	for i := range contracts {
		contract := &contracts[i]
		p.Go(func(ctx context.Context) error {
			ret, err := provider.Call(ctx, starknet.FunctionCall{
				ContractAddress:    contract.Address,
				EntryPointSelector: dojoResourceEntrypoint,
				Calldata:           []*felt.Felt{},
			}, latest)
			if err != nil {
				if starknet.IsContractError(err) {
					contract.Name = ""
					return nil
				}
				return fmt.Errorf("resolve name of %s: %w", contract.Address, err)
			}
			if len(ret) < 1 {
				return fmt.Errorf("empty dojo_resource response from %s", contract.Address)
			}

			name, err := shortstring.Decode(ret[0])
			if err != nil {
				return fmt.Errorf("decode resource name of %s: %w", contract.Address, err)
			}
			contract.Name = name
			return nil
		})
	}

	return p.Wait()
}
