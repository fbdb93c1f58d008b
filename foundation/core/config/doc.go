// File: doc.go
// Title: Configuration Management Package Documentation
// Description: Package documentation for the configuration loader.
// Author: lwd-temp
// Version: v0.1.0
// Created: 2026-10-12
// Modified: 2026-10-12
//
// Change History:
// - 2026-10-12 v0.1.0: Initial implementation with TOML/YAML support

/*
Package config loads TOML or YAML configuration files into a nested key map
and offers typed getters addressed with dot notation.

	cfg, err := config.LoadWithOptions("helang.toml", config.LoadOptions{
		Format:    config.FormatAuto,
		EnvPrefix: "HELANG",
		Defaults:  map[string]interface{}{"shell": map[string]interface{}{"prompt": "> "}},
	})
	prompt := cfg.GetString("shell.prompt")

With an environment prefix every key may be overridden from the environment:
shell.prompt is read from HELANG_SHELL_PROMPT before the file is consulted.
List values taken from the environment are comma separated.
*/
package config
