package main

import (
	"database/sql"
	"net/http"
	"os"
	"time"

	"pet-registry/internal/adapters/auth/jwtauth"
	pg "pet-registry/internal/adapters/storage/postgres"
	"pet-registry/internal/config"
	"pet-registry/internal/platform/logger"
	"pet-registry/internal/ports/auth"
	"pet-registry/internal/router"

	"github.com/joho/godotenv"
)

func main() {
	// .env opcional (dev)
	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.NewFromEnv()

	var db *sql.DB
	if cfg.DBDSN != "" {
		opened, err := pg.Open(cfg.DBDSN)
		if err != nil {
			log.Error("postgres connection failed", map[string]any{"err": err.Error()})
			os.Exit(1)
		}
		db = opened
	}

	var verifier auth.TokenVerifier
	var issuer auth.TokenIssuer
	if cfg.JWTSecret != "" {
		tokens := jwtauth.New(jwtauth.Config{
			Secret: []byte(cfg.JWTSecret),
			TTL:    cfg.TokenTTL,
		})
		verifier = tokens
		issuer = tokens
	} else {
		log.Warn("JWT_SECRET not set, running in dev mode", nil)
	}

	r := router.NewRouter(router.Options{
		AuthVerifier: verifier,
		TokenIssuer:  issuer,
		DB:           db,
		CORSOrigins:  cfg.CORSOrigins,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	log.Info("starting server", map[string]any{"addr": srv.Addr, "storage": storageKind(db)})
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", map[string]any{"err": err.Error()})
		os.Exit(1)
	}
}

func storageKind(db *sql.DB) string {
	if db != nil {
		return "postgres"
	}
	return "memory"
}
