// ============================================================================
// HeLang - Saint He's programming language
// ============================================================================
//
// Package:     cmd
// Description: Root command, configuration and shared wiring for the CLI
// Author:      lwd-temp
// Created:     2026-10-18
// License:     MIT
// ============================================================================

package cmd

import (
	"fmt"
	"io"
	"runtime"

	"github.com/spf13/cobra"

	heerror "github.com/lwd-temp/helang/foundation/core/error"
	helog "github.com/lwd-temp/helang/foundation/core/log"
	"github.com/lwd-temp/helang/foundation/helang"
	"github.com/lwd-temp/helang/internal/cyberspaces"
	"github.com/lwd-temp/helang/internal/speedtest"
	"github.com/lwd-temp/helang/internal/store"
	"github.com/lwd-temp/helang/pkg/core/config"
	"github.com/lwd-temp/helang/pkg/core/logging"
)

var (
	cfgFile string
	verbose bool

	appConfig *config.Config
	logger    *helog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "helang",
	Short: "HeLang - Saint He's programming language",
	Long: `HeLang is a language for the Cyber Spaces. Every value is a u8,
a vector of integers joined by "|".

  helang run main.he     # Run a script
  helang shell           # Speak to Saint He
  helang editor          # LTCode, the terminal editor
  helang serve           # Websocket playground`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

// Execute runs the CLI and reports a failing command on stderr
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintln(rootCmd.ErrOrStderr(), describe(err))
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./helang.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
}

func setup(cmd *cobra.Command, args []string) error {
	var err error
	if cfgFile != "" {
		appConfig, err = config.Load(cfgFile)
	} else {
		appConfig, err = config.LoadFromEnv()
	}
	if err != nil {
		return err
	}

	logger = logging.Setup(appConfig, "helang", verbose)
	logger.Debug("Configuration loaded", helog.Fields{"source": appConfig.Source(), "command": cmd.Name()})
	return nil
}

// newEngine wires the interpreter with the configured collaborators
func newEngine(out io.Writer) *helang.Engine {
	ic := appConfig.Interpreter
	cc := appConfig.Cyberspaces
	sc := appConfig.SpeedTest

	return helang.New(helang.Options{
		Logger:          logger,
		Output:          out,
		MaxSourceLength: ic.MaxSourceLength,
		LogoPath:        ic.LogoPath,
		Region: cyberspaces.New(cyberspaces.Config{
			Endpoint: cc.Endpoint,
			Timeout:  cc.Timeout.Duration,
			Logger:   logger,
		}),
		CyberRegions: cc.Regions,
		SpeedTester: speedtest.New(speedtest.Config{
			MinSizeMB: sc.MinSizeMB,
			MaxSizeMB: sc.MaxSizeMB,
			MinDelay:  sc.MinDelay.Duration,
			MaxDelay:  sc.MaxDelay.Duration,
			Logger:    logger,
		}),
	})
}

// openStore opens the session store; failures are logged and yield nil
func openStore() *store.Store {
	st, err := store.Open(store.Config{Path: appConfig.Store.Path, Logger: logger})
	if err != nil {
		logger.WarnWithErr("Session store unavailable", err)
		return nil
	}
	return st
}

func warnNonDarwin(w io.Writer) {
	if runtime.GOOS != "darwin" {
		fmt.Fprintln(w, "WARNING: It seems like you're using a non-Apple device, which is not cool!")
	}
}

func describe(err error) string {
	return fmt.Sprintf("%s: %s", heerror.GetCode(err), err.Error())
}
