package cmd

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/abhisek/mcqgenie/internal/api"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		b, err := openBackend(ctx, cmd, backendOpts{LLM: true, Events: true})
		if err != nil {
			return err
		}
		defer b.Close()

		addr, _ := cmd.Flags().GetString("addr")
		if addr == "" {
			addr = b.cfg.HTTPAddr
		}

		handler := api.NewRouter(api.Deps{
			Tests:        b.tests(),
			Chat:         b.chat(),
			Ping:         b.ping,
			DefaultCount: b.cfg.DefaultMCQCount,
			CORSOrigins:  b.cfg.CORSOrigins,
			Version:      version,
		})

		srv := &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		}

		errCh := make(chan error, 1)
		go func() {
			log.Printf("mcqgenie %s listening on %s (db=%s, sessions=%s)",
				version, addr, b.store.Driver(), b.cfg.SessionBackend)
			errCh <- srv.ListenAndServe()
		}()

		select {
		case err := <-errCh:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return err
		case <-ctx.Done():
		}

		log.Println("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides MCQGENIE_HTTP_ADDR)")
}
