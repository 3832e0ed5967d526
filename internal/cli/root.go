/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Package cli implements the srxctl command tree.
package cli

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"dirpx.dev/srx"
	"dirpx.dev/srx/apis"
	"dirpx.dev/srx/config"

	// Registers the demo catalog.
	_ "dirpx.dev/srx/internal/demo/spells"
)

// EnvPrefix prefixes every environment variable srxctl reads, e.g.
// SRX_ORDER or SRX_OUTPUT.
const EnvPrefix = "SRX"

// Output formats.
const (
	outputText = "text"
	outputYAML = "yaml"
)

// app carries the state shared by every command of one invocation.
type app struct {
	v   *viper.Viper
	log *slog.Logger
}

// NewRootCmd builds a fresh srxctl command tree.
func NewRootCmd(version string) *cobra.Command {
	a := &app{v: viper.New(), log: slog.Default()}

	root := &cobra.Command{
		Use:     "srxctl",
		Short:   "Inspect the types registered with srx",
		Long:    `srxctl lists registered types, discovers the types compatible with a base type and resolves "<unit> <name>" identifiers.`,
		Version: version,

		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.String("config", "", "path to an srx config file (YAML)")
	flags.StringP("output", "o", outputText, "output format: text or yaml")
	flags.String("order", "", "discovery order: path or registration")
	flags.BoolP("verbose", "v", false, "enable debug logging")
	for _, name := range []string{"config", "output", "order", "verbose"} {
		_ = a.v.BindPFlag(name, flags.Lookup(name))
	}

	root.AddCommand(
		a.newTypesCmd(),
		a.newListCmd(),
		a.newResolveCmd(),
		a.newDescribeCmd(),
	)
	return root
}

// Execute runs srxctl and prints any error to stderr.
func Execute(version string) error {
	root := NewRootCmd(version)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(root.ErrOrStderr(), "Error:", err)
		return err
	}
	return nil
}

// setup loads .env, environment and config file, then applies the resulting
// configuration to srx.
func (a *app) setup(cmd *cobra.Command) error {
	// A missing .env is not an error.
	_ = godotenv.Load()

	a.v.SetEnvPrefix(EnvPrefix)
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()

	level := slog.LevelInfo
	if a.v.GetBool("verbose") {
		level = slog.LevelDebug
	}
	a.log = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	switch out := a.v.GetString("output"); out {
	case outputText, outputYAML:
	default:
		return fmt.Errorf("unsupported output format %q", out)
	}

	cfg, changed := srx.Config(), false
	if path := a.v.GetString("config"); path != "" {
		c, err := config.LoadFile(path)
		if err != nil {
			return err
		}
		cfg, changed = c, true
		a.log.Debug("loaded config file", "path", path)
	}
	if s := a.v.GetString("order"); s != "" {
		o, err := apis.ParseOrder(s)
		if err != nil {
			return err
		}
		cfg.Order, changed = o, true
	}
	if changed {
		srx.SetConfig(cfg)
		a.log.Debug("applied config", "order", cfg.Order, "cachePolicy", cfg.CachePolicy, "embedDepth", cfg.EmbedDepth)
	}
	return nil
}

func (a *app) yaml() bool {
	return a.v.GetString("output") == outputYAML
}

// ExitCode maps err to the process exit code: 2 for bad input, 3 for an
// unknown type and 1 for anything else.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case apis.IsInvalidArgument(err), apis.IsMalformedIdentifier(err):
		return 2
	case apis.IsTypeNotFound(err):
		return 3
	default:
		return 1
	}
}
