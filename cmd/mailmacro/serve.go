package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/benjaminschreck/go-mailmacro/pkg/letter"
	"github.com/benjaminschreck/go-mailmacro/pkg/macro"
	"github.com/benjaminschreck/go-mailmacro/pkg/macro/probe"
)

type serveOptions struct {
	addr string
	dir  string
}

var serveOpts serveOptions

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve a static directory and the expansion API",
	Long: `Serve exposes a static directory and GET /api/expand.

The API takes the letter fields as query parameters (the same encoding share
links use) and expands the content for the requesting browser: the user agent,
the sw/sh screen parameters or viewport client hints, the color scheme hint and
Accept-Language all feed the environment variables.`,
	RunE: runServe,
}

func init() {
	flags := serveCmd.Flags()
	flags.StringVar(&serveOpts.addr, "addr", ":8000", "listen address")
	flags.StringVar(&serveOpts.dir, "dir", ".", "directory to serve")
}

type expandResponse struct {
	Letter   letter.Letter `json:"letter"`
	Expanded string        `json:"expanded"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	config, err := engineConfig()
	if err != nil {
		return err
	}
	engine := macro.NewWithConfig(config)

	srv := &http.Server{
		Addr:              serveOpts.addr,
		Handler:           newServeMux(engine, serveOpts.dir),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("serving", zap.String("addr", srv.Addr), zap.String("dir", serveOpts.dir))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	logger.Info("server stopped")
	return nil
}

func newServeMux(engine *macro.Engine, dir string) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("GET /", http.FileServer(http.Dir(dir)))
	mux.HandleFunc("GET /api/expand", expandHandler(engine))
	return mux
}

func expandHandler(engine *macro.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		l, ok := letter.FromQuery(r.URL.Query())
		if !ok {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "no letter fields in query"})
			return
		}

		opts := []macro.Option{macro.WithProbe(probe.FromRequest(r))}
		if lang := r.Header.Get("Accept-Language"); lang != "" {
			opts = append(opts, macro.WithLocale(probe.LookupLocale(lang)))
		}
		e := engine.Derive(opts...)
		writeJSON(w, http.StatusOK, expandResponse{
			Letter:   l,
			Expanded: e.Expand(r.Context(), l.Content, l.Record()),
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Warn("write response", zap.Error(err))
	}
}
