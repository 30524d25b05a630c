// Copyright 2026 The Sheetboard Authors
// SPDX-License-Identifier: MIT

package main

import (
	"bytes"
	"fmt"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/davetashner/sheetboard/internal/config"
	"github.com/davetashner/sheetboard/internal/output"
	"github.com/davetashner/sheetboard/internal/redact"
)

// Config command flags.
var (
	configGlobal     bool
	configShowFormat string
)

// configCmd is the parent command for config subcommands.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View, validate, and modify sheetboard configuration",
	Long: `View, validate, and modify sheetboard configuration.

Sheetboard reads .sheetboard.yaml (or .sheetboard.toml) from the project
directory. A global config at ~/.config/sheetboard/config.yaml provides
defaults; project settings override global settings, and command flags
override both.

Note: config set does a YAML round-trip and will not preserve comments.`,
}

var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the merged configuration and report every problem",
	Args:  cobra.NoArgs,
	RunE:  runConfigValidate,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration with secrets redacted",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

// configGetCmd retrieves a configuration value by dot-notation key path.
var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a configuration value",
	Long: `Get a configuration value by dot-notation key path.

Examples:
  sheetboard config get listen
  sheetboard config get source.kind
  sheetboard config get views.mindshare
  sheetboard config get --global cache_ttl`,
	Args: cobra.ExactArgs(1),
	RunE: runConfigGet,
}

// configSetCmd sets a configuration value.
var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value in the config file.

Values are auto-detected as bool, int, float, or string.
By default, writes to .sheetboard.yaml in the project directory.
Use --global to write to ~/.config/sheetboard/config.yaml.

Examples:
  sheetboard config set listen 0.0.0.0:8080
  sheetboard config set source.kind sqlite
  sheetboard config set views.mindshare.weights.a 0.5
  sheetboard config set --global market.disabled true`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

func init() {
	configGetCmd.Flags().BoolVar(&configGlobal, "global", false, "use global config (~/.config/sheetboard/config.yaml)")
	configSetCmd.Flags().BoolVar(&configGlobal, "global", false, "write to global config (~/.config/sheetboard/config.yaml)")
	configShowCmd.Flags().StringVarP(&configShowFormat, "format", "f", "yaml", "output format (yaml, toml, json)")

	configCmd.AddCommand(configValidateCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
}

func runConfigValidate(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(nil)
	if err != nil {
		return err
	}
	w := cmd.OutOrStdout()
	_, _ = color.New(color.FgGreen).Fprintln(w, "config OK")
	_, _ = fmt.Fprintf(w, "  source  %s %s\n", cfg.Source.Kind, sourceLocation(cfg))
	_, _ = fmt.Fprintf(w, "  listen  %s\n", cfg.Listen)
	if cfg.Refresh != "" {
		_, _ = fmt.Fprintf(w, "  refresh %s\n", cfg.Refresh)
	}
	return nil
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(nil)
	if err != nil {
		return err
	}
	m, err := configMap(cfg)
	if err != nil {
		return err
	}
	m = redact.Map(m)

	w := cmd.OutOrStdout()
	switch configShowFormat {
	case "yaml":
		out, err := yaml.Marshal(m)
		if err != nil {
			return err
		}
		_, err = w.Write(out)
		return err
	case "toml":
		return toml.NewEncoder(w).Encode(m)
	case "json":
		return output.WriteJSON(w, m, false)
	default:
		return exitError(ExitInvalidArgs, "sheetboard: unknown format %q (available: yaml, toml, json)", configShowFormat)
	}
}

// configMap converts a config to a generic map via a YAML round-trip.
func configMap(cfg *config.Config) (map[string]any, error) {
	var buf bytes.Buffer
	if err := config.Write(&buf, cfg); err != nil {
		return nil, err
	}
	m := map[string]any{}
	if err := yaml.Unmarshal(buf.Bytes(), &m); err != nil {
		return nil, err
	}
	return m, nil
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	var (
		cfg *config.Config
		err error
	)
	if configGlobal {
		cfg, err = config.LoadGlobal()
	} else {
		var global, project *config.Config
		if global, err = config.LoadGlobal(); err == nil {
			if project, err = config.Load(configDir); err == nil {
				cfg = config.Merge(global, project)
			}
		}
	}
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	val, err := config.GetValue(cfg, args[0])
	if err != nil {
		return err
	}
	return printValue(cmd, args[0], val)
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	keyPath, rawValue := args[0], args[1]
	if err := config.ValidateKeyPath(keyPath); err != nil {
		return err
	}

	targetPath := filepath.Join(configDir, config.FileName)
	if configGlobal {
		targetPath = config.GlobalConfigPath()
	}

	data, err := config.LoadRaw(targetPath)
	if err != nil {
		return fmt.Errorf("loading config file: %w", err)
	}
	if err := config.SetValue(data, keyPath, rawValue); err != nil {
		return fmt.Errorf("setting value: %w", err)
	}

	// Round-trip validate before writing.
	roundTrip, err := yaml.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	validCfg, err := config.Decode(roundTrip, "yaml")
	if err != nil {
		return fmt.Errorf("invalid config after set: %w", err)
	}
	if err := config.Validate(validCfg); err != nil {
		return err
	}

	if err := config.WriteFile(targetPath, data); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s\n", keyPath, redact.String(rawValue))
	return nil
}

// printValue prints scalars on one line and nested values as YAML.
func printValue(cmd *cobra.Command, keyPath string, val any) error {
	w := cmd.OutOrStdout()
	switch v := val.(type) {
	case map[string]any:
		out, err := yaml.Marshal(redact.Map(v))
		if err != nil {
			return err
		}
		_, err = w.Write(out)
		return err
	case []any:
		out, err := yaml.Marshal(v)
		if err != nil {
			return err
		}
		_, err = w.Write(out)
		return err
	case string:
		if keyPath == "admin_password" && v != "" {
			v = redact.Placeholder
		}
		_, err := fmt.Fprintln(w, redact.String(v))
		return err
	default:
		_, err := fmt.Fprintln(w, v)
		return err
	}
}
