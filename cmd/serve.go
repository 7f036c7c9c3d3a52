package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/sells-group/layout-cli/internal/config"
	"github.com/sells-group/layout-cli/internal/drawing"
	"github.com/sells-group/layout-cli/internal/export"
	"github.com/sells-group/layout-cli/internal/layout"
	"github.com/sells-group/layout-cli/internal/model"
	"github.com/sells-group/layout-cli/internal/plan"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the layout engine over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		if servePort != 0 {
			cfg.Server.Port = servePort
		}
		if err := cfg.Validate("serve"); err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		srv := &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
			Handler:           buildRouter(newEngine(cfg), cfg),
			ReadHeaderTimeout: 10 * time.Second,
		}

		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()

		zap.L().Info("starting server", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return eris.Wrap(err, "server listen")
		}
		return nil
	},
}

// layoutResponse is the body returned by POST /v1/layouts.
type layoutResponse struct {
	Result  *model.Result `json:"result"`
	GeoJSON any           `json:"geojson"`
}

type errorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

func buildRouter(engine *layout.Engine, c *config.Config) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: c.Server.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	opts := drawing.DefaultOptions()
	opts.Locale = c.Output.Locale

	r.Route("/v1/layouts", func(r chi.Router) {
		r.Use(rateLimit(c.Server.RateLimit, c.Server.Burst))
		r.Use(limitBody(c.Server.MaxBodyBytes))

		r.Post("/", func(w http.ResponseWriter, req *http.Request) {
			p, boundary, ok := decodePlan(w, req, c.Layout)
			if !ok {
				return
			}
			res, err := engine.Run(req.Context(), boundary, p.Parameters)
			if err != nil {
				writeError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, layoutResponse{Result: res, GeoJSON: export.GeoJSON(res, opts)})
		})

		r.Post("/validate", func(w http.ResponseWriter, req *http.Request) {
			p, boundary, ok := decodePlan(w, req, c.Layout)
			if !ok {
				return
			}
			normalized, err := layout.Validate(boundary, p.Parameters)
			if err != nil {
				writeError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, map[string]any{
				"status":     "ok",
				"vertices":   len(normalized),
				"parameters": p.Parameters,
			})
		})
	})
	return r
}

// decodePlan reads a plan document from the request body. Boundary files
// are not read over HTTP; the plan must carry inline coordinates.
func decodePlan(w http.ResponseWriter, r *http.Request, defaults model.LayoutParameters) (*plan.Plan, model.Boundary, bool) {
	data, err := io.ReadAll(r.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse{Error: "request body too large"})
			return nil, nil, false
		}
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return nil, nil, false
	}

	p, err := plan.Parse(data, defaults)
	if err != nil {
		if model.IsConfigurationError(err) {
			writeError(w, err)
		} else {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid plan document"})
		}
		return nil, nil, false
	}
	if len(p.Boundary.Coordinates) == 0 {
		writeError(w, model.NewConfigurationError("layout_boundary", "coordinates are required"))
		return nil, nil, false
	}
	boundary, err := p.SiteBoundary()
	if err != nil {
		writeError(w, err)
		return nil, nil, false
	}
	return p, boundary, true
}

func writeError(w http.ResponseWriter, err error) {
	var ce *model.ConfigurationError
	if errors.As(err, &ce) {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: ce.Error(), Field: ce.Field})
		return
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "request cancelled"})
		return
	}
	zap.L().Error("layout failed", zap.Error(err))
	writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "layout failed"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Debug("write response", zap.Error(err))
	}
}

// rateLimit shares one token bucket across all callers. A non-positive rps
// disables limiting.
func rateLimit(rps float64, burst int) func(http.Handler) http.Handler {
	limit := rate.Limit(rps)
	if rps <= 0 {
		limit = rate.Inf
	}
	limiter := rate.NewLimiter(limit, max(burst, 1))
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				w.Header().Set("Retry-After", "1")
				writeJSON(w, http.StatusTooManyRequests, errorResponse{Error: "rate limit exceeded"})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func limitBody(n int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if n > 0 {
				r.Body = http.MaxBytesReader(w, r.Body, n)
			}
			next.ServeHTTP(w, r)
		})
	}
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		zap.L().Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("elapsed", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
