package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/steamlink-go/steamlink/internal/client"
	"github.com/steamlink-go/steamlink/internal/core"
	"github.com/steamlink-go/steamlink/internal/debug"
	"github.com/steamlink-go/steamlink/internal/library"
	"github.com/steamlink-go/steamlink/internal/steamlang"
	"github.com/steamlink-go/steamlink/internal/transport"
)

var (
	SteamIDFlag       uint64
	MiniprofileIDFlag uint64
	AccountNameFlag   string
	TokenFlag         string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Connect, log on, and import the account's library",
	Run:   RunCommand,
}

func RunCommand(cmd *cobra.Command, _ []string) {
	config := core.LoadConfig(ConfigFlag)

	logger, err := core.NewLogger(config)
	if err != nil {
		fmt.Println("error initializing logger:", err)
		os.Exit(1)
	}

	debug.StartMetricsServer(logger, config.Debugging.MetricsPort)

	conn, err := transport.Dial(config.ServerURL)
	if err != nil {
		logger.Fatalf("error connecting to %s: %v", config.ServerURL, err)
	}
	defer conn.Close()

	var handlers client.Handlers
	if config.Library.Enabled {
		store, err := library.Open(config.Library.Filename, logger, config.Debugging.PacketLoggingEnabled)
		if err != nil {
			logger.Fatalf("error opening library store: %v", err)
		}
		defer store.Close()
		handlers = store.Handlers()
	}
	handlers.LogOn = func(result steamlang.EResult) {
		logger.Infof("logon result: %d", result)
	}
	handlers.LogOff = func(result steamlang.EResult) {
		logger.Infof("logged off: %d", result)
	}

	c := client.New(conn, logger, handlers, client.Options{
		ReceiveTimeout: receiveTimeout(config),
		Language:       config.Client.Language,
		PacketLogging:  config.Debugging.PacketLoggingEnabled,
	})
	defer c.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := c.LogOn(steamlang.SteamID(SteamIDFlag), MiniprofileIDFlag, AccountNameFlag, TokenFlag); err != nil {
		logger.Fatalf("error sending logon: %v", err)
	}
	c.QueueImportCollections()

	if err := c.Run(ctx); err != nil {
		logger.Errorf("client exited: %v", err)
		os.Exit(1)
	}
}

func receiveTimeout(config *core.Config) time.Duration {
	return time.Duration(config.Client.ReceiveTimeoutMs) * time.Millisecond
}
