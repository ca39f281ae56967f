// Command admintoken prints a bearer token for the administrative GET /files endpoint.
//
// Usage:
//
//	ADMIN_JWT_SECRET=... go run ./cmd/admintoken -sub ops -ttl 24h
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/sharedrop/service/internal/config"
	"github.com/sharedrop/service/internal/middleware"
)

func main() {
	subject := flag.String("sub", "ops", "subject claim")
	ttl := flag.Duration("ttl", 24*time.Hour, "token lifetime")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	token, err := middleware.IssueAdminToken(cfg.AdminJWTSecret, *subject, *ttl)
	if err != nil {
		slog.Error("issue admin token", slog.String("error", err.Error()))
		os.Exit(1)
	}
	fmt.Println(token)
}
