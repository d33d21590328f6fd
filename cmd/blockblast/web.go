package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-blast/internal/config"
	"github.com/vovakirdan/tui-blast/internal/platform/web"
)

var flagWebAddr string

var webCmd = &cobra.Command{
	Use:   "web",
	Short: "Start the WebSocket server",
	Long: `Start an HTTP server that plays Block Blast over WebSocket.

Connect to /ws (add ?mode=mini for the small board) and send JSON:
  {"op":"place","slot":0,"cell":12}
  {"op":"place","shape":"T","cell":12}
  {"op":"undo"}
  {"op":"restart"}
  {"op":"state"}

Every message is answered with the full state and the events it caused.
GET /healthz returns "ok".

Examples:
  blockblast web
  blockblast web --addr :9000 --seed 7`,
	Args: cobra.NoArgs,
	RunE: runWeb,
}

func init() {
	webCmd.Flags().StringVar(&flagWebAddr, "addr", ":8080", "HTTP listen address (host:port)")
}

func runWeb(_ *cobra.Command, _ []string) error {
	gameCfg, err := config.LoadBlockBlast(flagConfig)
	if err != nil {
		return err
	}

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	server, err := web.NewServer(web.Config{
		Address: flagWebAddr,
		Seed:    flagSeed,
		Game:    gameCfg,
		Store:   store,
		Logger:  logger.WithPrefix("blast-web"),
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return server.ListenAndServe(ctx)
}
