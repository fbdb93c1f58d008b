package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/lwd-temp/helang/foundation/helang"
	"github.com/lwd-temp/helang/foundation/helang/ast"
	"github.com/lwd-temp/helang/internal/cyberspaces"
	"github.com/lwd-temp/helang/internal/playground"
	"github.com/lwd-temp/helang/pkg/core/cache"
)

var (
	serveHost string
	servePort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the websocket playground",
	Long: `Serves the playground on /ws. Every connection gets its own session.
Scripts and the speed test are not available to remote sessions.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveHost, "host", "", "listen host (default from config)")
	serveCmd.Flags().IntVar(&servePort, "port", 0, "listen port (default from config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	host, port := appConfig.Server.Host, appConfig.Server.Port
	if serveHost != "" {
		host = serveHost
	}
	if servePort != 0 {
		port = servePort
	}

	parseCache := cache.New[ast.Node](cache.Config{
		MaxItems: appConfig.Server.ParseCacheSize,
		TTL:      appConfig.Server.ParseCacheTTL.Duration,
	})
	engine := helang.New(helang.Options{
		Logger:          logger,
		MaxSourceLength: appConfig.Interpreter.MaxSourceLength,
		NoScripts:       true,
		Region: cyberspaces.New(cyberspaces.Config{
			Endpoint: appConfig.Cyberspaces.Endpoint,
			Timeout:  appConfig.Cyberspaces.Timeout.Duration,
			Logger:   logger,
		}),
		CyberRegions: appConfig.Cyberspaces.Regions,
		ParseCache:   parseCache,
	})

	server := playground.New(playground.Config{
		Host:       host,
		Port:       port,
		Engine:     engine,
		Logger:     logger,
		ParseCache: parseCache,
	})

	errCh := make(chan error, 1)
	go func() { errCh <- server.Start() }()
	fmt.Fprintf(cmd.OutOrStdout(), "Playground listening on ws://%s/ws\n", server.Address())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	select {
	case err := <-errCh:
		return err
	case <-sigCh:
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Stop(ctx)
}
