package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/LucasDotTrade/lucas-brain/internal/model"
	"github.com/LucasDotTrade/lucas-brain/internal/store"
)

var servePort int

// validator is the slice of the pipeline the HTTP layer needs.
type validator interface {
	Run(ctx context.Context, input model.PackageInput) (*model.PackageVerdict, error)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP validation server",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		env, err := initPipeline(ctx, "serve")
		if err != nil {
			return err
		}
		defer env.Close()

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: newRouter(env.Pipeline, env.Store),
		}

		// Graceful shutdown
		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			_ = srv.Shutdown(context.Background())
		}()

		zap.L().Info("starting server", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

// newRouter builds the API surface: synchronous validation plus read access
// to stored verdicts.
func newRouter(v validator, st store.Store) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Post("/validate", func(w http.ResponseWriter, r *http.Request) {
		var input model.PackageInput
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
			return
		}
		if input.Channel == "" {
			input.Channel = model.ChannelAPI
		}

		verdict, err := v.Run(r.Context(), input)
		if err != nil {
			zap.L().Warn("validation request rejected", zap.Error(err))
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, verdict)
	})

	r.Get("/packages", func(w http.ResponseWriter, r *http.Request) {
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
		filter := store.PackageFilter{
			ClientIdentifier: r.URL.Query().Get("client"),
			Verdict:          model.Verdict(r.URL.Query().Get("verdict")),
			Limit:            limit,
			Offset:           offset,
		}

		packages, err := st.ListPackages(r.Context(), filter)
		if err != nil {
			zap.L().Error("list packages failed", zap.Error(err))
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "list packages failed"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"packages": packages, "count": len(packages)})
	})

	r.Get("/packages/{id}", func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		pkg, err := st.GetPackage(r.Context(), id)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				writeJSON(w, http.StatusNotFound, map[string]string{"error": "package not found"})
				return
			}
			zap.L().Error("get package failed", zap.String("id", id), zap.Error(err))
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "get package failed"})
			return
		}
		writeJSON(w, http.StatusOK, pkg)
	})

	return r
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
