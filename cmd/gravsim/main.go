// Command gravsim is an interactive terminal N-body gravity simulator
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/gravsim/config"
	"github.com/lixenwraith/gravsim/scene"
)

// Flags shared by every subcommand
type rootFlags struct {
	envFile  string
	debug    bool
	logLevel string
	logJSON  bool

	scenePath string
	preset    string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "gravsim: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rf := &rootFlags{}

	root := &cobra.Command{
		Use:           "gravsim",
		Short:         "N-body gravity simulator for the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&rf.envFile, "env", ".env", "Path to a .env file (skipped when missing)")
	pf.BoolVar(&rf.debug, "debug", false, "Enable debug logging to logs/gravsim.log")
	pf.StringVar(&rf.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	pf.BoolVar(&rf.logJSON, "log-json", false, "Write logs as JSON")
	pf.StringVar(&rf.scenePath, "scene", "", "Scene TOML file to load")
	pf.StringVar(&rf.preset, "preset", "", "Built in scene: "+fmt.Sprint(scene.PresetNames()))

	root.AddCommand(
		newRunCmd(rf),
		newOrbitCmd(rf),
		newPredictCmd(rf),
		newSceneCmd(rf),
		newKeysCmd(),
	)
	return root
}

// loadConfig merges .env, environment and explicitly set persistent flags
func (rf *rootFlags) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(rf.envFile)
	if err != nil {
		return nil, err
	}
	flags := cmd.Flags()
	if flags.Changed("debug") {
		cfg.Logging.Debug = rf.debug
	}
	if flags.Changed("log-level") {
		cfg.Logging.Level = rf.logLevel
	}
	if flags.Changed("log-json") {
		cfg.Logging.JSONFormat = rf.logJSON
	}
	return cfg, nil
}

// loadScene resolves --scene or --preset; a file wins, the default preset is the fallback
func (rf *rootFlags) loadScene() (*scene.Scene, string, error) {
	if rf.scenePath != "" {
		sc, err := scene.Load(rf.scenePath)
		if err != nil {
			return nil, "", err
		}
		return sc, rf.scenePath, nil
	}
	name := rf.preset
	if name == "" {
		name = scene.DefaultPreset
	}
	sc, err := scene.Preset(name)
	if err != nil {
		return nil, "", err
	}
	return sc, "", nil
}
