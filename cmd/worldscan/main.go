package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/dojoengine/worldscan/core/felt"
	"github.com/dojoengine/worldscan/manifest"
	"github.com/dojoengine/worldscan/starknet"
	"github.com/dojoengine/worldscan/utils"
)

var Version string

// Config holds the CLI parameters, populated from flags and the optional
// yaml config file.
type Config struct {
	RPC         string         `mapstructure:"rpc"`
	World       string         `mapstructure:"world"`
	Output      string         `mapstructure:"output"`
	LogLevel    utils.LogLevel `mapstructure:"log-level"`
	Timeout     time.Duration  `mapstructure:"timeout"`
	Concurrency int            `mapstructure:"concurrency"`
	Colour      bool           `mapstructure:"colour"`
}

const (
	configF      = "config"
	rpcF         = "rpc"
	worldF       = "world"
	outputF      = "output"
	logLevelF    = "log-level"
	timeoutF     = "timeout"
	concurrencyF = "concurrency"
	colourF      = "colour"

	defaultConfig      = ""
	defaultOutput      = ""
	defaultTimeout     = 10 * time.Second
	defaultConcurrency = 4
	defaultColour      = true

	configFlagUsage  = "The yaml configuration file."
	rpcUsage         = "The Starknet JSON-RPC endpoint to reconstruct the world from."
	worldUsage       = "The address of the world contract."
	outputUsage      = "File to write the manifest to. Writes to stdout when unset."
	logLevelUsage    = "Options: debug, info, warn, error."
	timeoutUsage     = "Timeout applied to each ledger request."
	concurrencyUsage = "Maximum number of in-flight contract name lookups."
	colourUsage      = "Uses --colour=false command to disable colourized outputs (ANSI Escape Codes)."
)

func main() {
	if err := NewCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err.Error())
		os.Exit(1)
	}
}

func NewCmd() *cobra.Command {
	var cfgFile string
	defaultLogLevel := utils.INFO

	cmd := &cobra.Command{
		Use:     "worldscan [flags]",
		Short:   "Reconstructs the manifest of a deployed Dojo world from its event log.",
		Version: Version,
	}

	cmd.Flags().StringVar(&cfgFile, configF, defaultConfig, configFlagUsage)
	cmd.Flags().String(rpcF, "", rpcUsage)
	cmd.Flags().String(worldF, "", worldUsage)
	cmd.Flags().String(outputF, defaultOutput, outputUsage)
	cmd.Flags().Var(&defaultLogLevel, logLevelF, logLevelUsage)
	cmd.Flags().Duration(timeoutF, defaultTimeout, timeoutUsage)
	cmd.Flags().Int(concurrencyF, defaultConcurrency, concurrencyUsage)
	cmd.Flags().Bool(colourF, defaultColour, colourUsage)

	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		v := viper.New()
		if cfgFile != "" {
			v.SetConfigType("yaml")
			v.SetConfigFile(cfgFile)
			if err := v.ReadInConfig(); err != nil {
				return err
			}
		}

		if err := v.BindPFlags(cmd.Flags()); err != nil {
			return err
		}

		cfg := new(Config)
		if err := v.Unmarshal(cfg, viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
			mapstructure.TextUnmarshallerHookFunc(),
			mapstructure.StringToTimeDurationHookFunc(),
		))); err != nil {
			return err
		}

		return run(cmd, cfg)
	}

	return cmd
}

func run(cmd *cobra.Command, cfg *Config) error {
	if cfg.RPC == "" {
		return errors.New("no JSON-RPC endpoint, provide one with the --rpc flag")
	}
	if cfg.World == "" {
		return errors.New("no world address, provide one with the --world flag")
	}

	worldAddress, err := new(felt.Felt).SetString(cfg.World)
	if err != nil {
		return fmt.Errorf("parse world address: %w", err)
	}

	log, err := utils.NewZapLogger(cfg.LogLevel, cfg.Colour)
	if err != nil {
		return err
	}

	client := starknet.NewClient(cfg.RPC, log).WithTimeout(cfg.Timeout)

	m, err := manifest.LoadFromRemote(cmd.Context(), client, worldAddress,
		manifest.WithLogger(log),
		manifest.WithNameConcurrency(cfg.Concurrency),
	)
	if err != nil {
		return err
	}

	encoded, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}

	if cfg.Output == "" {
		_, err = fmt.Fprintln(cmd.OutOrStdout(), string(encoded))
		return err
	}
	return os.WriteFile(cfg.Output, append(encoded, '\n'), 0o644)
}
