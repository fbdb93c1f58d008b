package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/lwd-temp/helang/foundation/helang/env"
)

var greatCmd = &cobra.Command{
	Use:   "great",
	Short: "Run the great script",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return launch(cmd, appConfig.Interpreter.GreatPath)
	},
}

var logoCmd = &cobra.Command{
	Use:   "logo",
	Short: "Run the logo script",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return launch(cmd, appConfig.Interpreter.LogoPath)
	},
}

func init() {
	rootCmd.AddCommand(greatCmd)
	rootCmd.AddCommand(logoCmd)
}

func launch(cmd *cobra.Command, path string) error {
	warnNonDarwin(cmd.OutOrStdout())
	_, err := newEngine(cmd.OutOrStdout()).RunFile(context.Background(), path, env.New())
	return err
}
