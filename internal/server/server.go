package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/vistalabs/vista/internal/catalog"
	"github.com/vistalabs/vista/internal/handler"
	"github.com/vistalabs/vista/internal/idempotency"
	"github.com/vistalabs/vista/internal/logger"
	"github.com/vistalabs/vista/internal/metrics"
	"github.com/vistalabs/vista/internal/production"
	"github.com/vistalabs/vista/internal/sse"
)

// Store is the part of the storage backend the HTTP layer reads directly
type Store interface {
	handler.Pinger
	handler.SnapshotExporter
}

// Options carries listener and middleware settings
type Options struct {
	Port            int
	APIKey          string
	TrustedProxies  []string
	StoreDriver     string
	MaxRequestBytes int64
}

// Deps are the services the routes dispatch to. Backup and Events may be nil.
type Deps struct {
	Store       Store
	Catalog     catalog.Service
	Production  production.Service
	Backup      handler.BackupRunner
	Idempotency *idempotency.Cache
	Events      *sse.Hub
}

type Server struct {
	httpServer *http.Server
	router     chi.Router
}

// NewServer creates a new Server instance
func NewServer(opts Options, deps Deps) *Server {
	r := chi.NewRouter()

	if opts.MaxRequestBytes <= 0 {
		opts.MaxRequestBytes = DefaultMaxRequestBytes
	}

	// Middleware stack
	// Chi middleware executes in order defined (outermost to innermost)
	detector := NewSuspiciousActivityDetector(opts.TrustedProxies)

	r.Use(SecurityHeadersMiddleware())
	r.Use(loggingMiddleware)
	r.Use(AuthMiddleware(opts.APIKey, detector))
	r.Use(SecurityLoggingMiddleware(detector))
	r.Use(RequestSizeLimitMiddleware(opts.MaxRequestBytes))
	r.Use(metrics.Middleware)

	// Health check routes (unversioned)
	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(deps.Store))

	// Version endpoint (public, for deployment verification)
	r.Get("/version", handler.HandleVersion(opts.StoreDriver))

	// Metrics endpoint (public, for Prometheus scraping)
	r.Handle("/metrics", promhttp.Handler())

	catalogHandlers := handler.NewCatalogHandlers(deps.Catalog)
	productionHandlers := handler.NewProductionHandlers(deps.Production)

	r.Route(APIPrefix, func(r chi.Router) {
		r.Route("/ingredients", func(r chi.Router) {
			r.Get("/", catalogHandlers.HandleListIngredients)
			r.Post("/", catalogHandlers.HandleCreateIngredient)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", catalogHandlers.HandleGetIngredient)
				r.Put("/", catalogHandlers.HandleUpdateIngredient)
				r.Delete("/", catalogHandlers.HandleDeleteIngredient)
				r.Post("/restock", catalogHandlers.HandleRestockIngredient)
			})
		})

		r.Route("/packaging", func(r chi.Router) {
			r.Get("/", catalogHandlers.HandleListPackaging)
			r.Post("/", catalogHandlers.HandleCreatePackaging)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", catalogHandlers.HandleGetPackaging)
				r.Put("/", catalogHandlers.HandleUpdatePackaging)
				r.Delete("/", catalogHandlers.HandleDeletePackaging)
				r.Post("/restock", catalogHandlers.HandleRestockPackaging)
			})
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", catalogHandlers.HandleListProducts)
			r.Post("/", catalogHandlers.HandleCreateProduct)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", catalogHandlers.HandleGetProduct)
				r.Put("/", catalogHandlers.HandleUpdateProduct)
				r.Delete("/", catalogHandlers.HandleDeleteProduct)
				r.Get("/cost", productionHandlers.HandleUnitCost)
			})
		})

		r.Route("/production", func(r chi.Router) {
			r.Post("/simulate", productionHandlers.HandleSimulate)
			if deps.Idempotency != nil {
				r.With(deps.Idempotency.Middleware).Post("/execute", productionHandlers.HandleExecute)
			} else {
				r.Post("/execute", productionHandlers.HandleExecute)
			}
			r.Get("/runs", productionHandlers.HandleListRuns)
		})

		r.Get("/analytics", handler.HandleAnalytics(deps.Store))

		if deps.Events != nil {
			r.Get("/events", sse.Handler(deps.Events))
		}

		r.Route("/admin", func(r chi.Router) {
			r.Post("/backup", handler.HandleTriggerBackup(deps.Backup))
		})
	})

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", opts.Port),
			Handler:           r,
			ReadHeaderTimeout: ReadHeaderTimeout,
		},
		router: r,
	}
}

// Handler exposes the routed middleware stack, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK, // default status
	}
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	if !rw.written {
		rw.statusCode = statusCode
		rw.written = true
		rw.ResponseWriter.WriteHeader(statusCode)
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

// Flush lets event streams push through the wrapper
func (rw *responseWriter) Flush() {
	if f, ok := rw.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// requestID reuses a caller-supplied X-Request-ID when it is sane
func requestID(r *http.Request) string {
	id := strings.TrimSpace(r.Header.Get(HeaderRequestID))
	if id == "" || len(id) > MaxRequestIDLength || strings.ContainsAny(id, " \t\r\n") {
		return logger.GenerateRequestID()
	}
	return id
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		id := requestID(r)
		ctx := logger.WithRequestID(r.Context(), id)
		r = r.WithContext(ctx)
		w.Header().Set(HeaderRequestID, id)

		// Skip logging for health check endpoints and metrics
		// Use HasPrefix to catch potential variations (e.g. /healthz/)
		if strings.HasPrefix(r.URL.Path, "/healthz") ||
			strings.HasPrefix(r.URL.Path, "/readyz") ||
			strings.HasPrefix(r.URL.Path, "/metrics") {
			next.ServeHTTP(w, r)
			return
		}

		log := logger.FromContext(ctx)

		log.Info(LogMsgRequestStarted,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"content_length", r.ContentLength,
			"user_agent", r.UserAgent())

		// Sanitize headers for logging
		sanitizedHeaders := make(http.Header)
		for k, v := range r.Header {
			if strings.EqualFold(k, HeaderAPIKey) || strings.EqualFold(k, HeaderAuthorization) {
				sanitizedHeaders[k] = []string{RedactedValue}
			} else {
				sanitizedHeaders[k] = v
			}
		}
		log.Debug(LogMsgRequestHeaders, "headers", sanitizedHeaders)

		rw := newResponseWriter(w)
		next.ServeHTTP(rw, r)

		duration := time.Since(start)
		log.Info(LogMsgRequestCompleted,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds())
	})
}

// Start starts the server
func (s *Server) Start() error {
	slog.Default().Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
