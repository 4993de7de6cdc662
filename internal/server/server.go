package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Config struct {
	BotToken        string        `env:"BOT_TOKEN,required,notEmpty"`
	DBPath          string        `env:"AUTOFILTER_DB_PATH,required"`
	LogChannelID    int64         `env:"LOG_CHANNEL_ID,required"`
	FilesChannelID  int64         `env:"FILES_CHANNEL_ID,required"`
	AdminIDs        []int64       `env:"ADMIN_IDS" envSeparator:","`
	DeleteDelay     time.Duration `env:"AUTOFILTER_DELETE_DELAY" envDefault:"30s"`
	PageSize        int           `env:"AUTOFILTER_PAGE_SIZE" envDefault:"10"`
	SupportChannel  string        `env:"AUTOFILTER_SUPPORT_CHANNEL"`
	GroupRedirect   bool          `env:"AUTOFILTER_GROUP_REDIRECT" envDefault:"false"`
	AckFirst        bool          `env:"AUTOFILTER_ACK_FIRST" envDefault:"false"`
	Workers         int           `env:"AUTOFILTER_WORKERS" envDefault:"8"`
	HTTPAddr        string        `env:"AUTOFILTER_HTTP_ADDR" envDefault:":8080"`
	ShutdownTimeout time.Duration `env:"AUTOFILTER_SHUTDOWN_TIMEOUT" envDefault:"15s"`
	LogDir          string        `env:"AUTOFILTER_LOG_DIR"`
	LogLevel        string        `env:"AUTOFILTER_LOG_LEVEL" envDefault:"info"`
	LogJSON         bool          `env:"AUTOFILTER_LOG_JSON" envDefault:"true"`
}

// Pinger reports whether the store is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// New builds the ops HTTP server exposing health and metrics endpoints
func New(addr string, store Pinger) *http.Server {
	router := chi.NewRouter()
	router.Use(loggingMiddleware)

	router.Get("/healthz", healthz)
	router.Get("/readyz", readyz(store))
	router.Handle("/metrics", promhttp.Handler())

	return &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
}

func healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func readyz(store Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := store.Ping(ctx); err != nil {
			slog.Error("Readiness check failed", "error", err)
			http.Error(w, "Store unavailable", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}
}

// loggingMiddleware logs HTTP requests with structured logging
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Create a response writer wrapper to capture status code
		wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(wrapped, r)

		slog.Debug("HTTP request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", wrapped.statusCode,
			"duration_ms", time.Since(start).Milliseconds(),
			"remote_addr", r.RemoteAddr,
		)
	})
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
