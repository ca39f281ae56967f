package main

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	appMiddleware "github.com/sharedrop/service/internal/middleware"
	"github.com/sharedrop/service/internal/response"
	"github.com/sharedrop/service/internal/share"
	"github.com/sharedrop/service/internal/storage"
)

const storageProbeTimeout = 5 * time.Second

// allMethods lists every standard HTTP method; cors matches methods literally.
var allMethods = []string{
	http.MethodGet, http.MethodHead, http.MethodPost, http.MethodPut, http.MethodPatch,
	http.MethodDelete, http.MethodConnect, http.MethodOptions, http.MethodTrace,
}

type routerDeps struct {
	logger         *slog.Logger
	shares         *share.Handler
	prober         storage.Prober
	bucket         string
	requestTimeout time.Duration
	adminSecret    string
}

func newRouter(d routerDeps) http.Handler {
	r := chi.NewRouter()
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(appMiddleware.Logger(d.logger))
	r.Use(chiMiddleware.Recoverer)
	r.Use(appMiddleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: allMethods,
		AllowedHeaders: []string{"*"},
		MaxAge:         300,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		response.OK(w, map[string]string{"status": "ok"})
	})
	r.Get("/health/storage", storageHealth(d.prober, d.bucket))
	r.Handle("/metrics", promhttp.Handler())

	// Swagger UI at /swagger/index.html
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	r.Group(func(r chi.Router) {
		r.Use(chiMiddleware.Timeout(d.requestTimeout))

		r.Get("/generate-upload-url", d.shares.GenerateUploadURL)
		r.Post("/upload-complete", d.shares.UploadComplete)
		r.Get("/download-url/{fileCode}", d.shares.DownloadURL)

		r.Group(func(r chi.Router) {
			if d.adminSecret != "" {
				r.Use(appMiddleware.RequireAdmin(d.adminSecret))
			}
			r.Get("/files", d.shares.ListFiles)
		})
	})

	return r
}

func storageHealth(prober storage.Prober, bucket string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), storageProbeTimeout)
		defer cancel()

		location, err := prober.Probe(ctx)
		if err != nil {
			slog.WarnContext(r.Context(), "storage probe failed",
				slog.String("bucket", bucket), slog.String("error", err.Error()))
			response.ServiceUnavailable(w, "object storage unreachable")
			return
		}
		response.OK(w, map[string]string{"status": "ok", "bucket": bucket, "location": location})
	}
}
