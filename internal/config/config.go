package config

import (
	"os"
	"time"
)

// Config agrupa la configuración del servicio, toda por env vars.
type Config struct {
	Port string

	// DSN de Postgres. Vacío = storage in-memory (modo dev).
	DBDSN string

	// Secreto HS256 para los tokens. Vacío = modo dev con secreto fijo
	// y headers X-Debug-User-ID / X-Debug-User-Role habilitados.
	JWTSecret string
	TokenTTL  time.Duration

	CORSOrigins []string
}

func Load() Config {
	return Config{
		Port:        getenv("PORT", "8080"),
		DBDSN:       getenv("DB_DSN", ""),
		JWTSecret:   getenv("JWT_SECRET", ""),
		TokenTTL:    getduration("TOKEN_TTL", 24*time.Hour),
		CORSOrigins: []string{getenv("CORS_ORIGIN", "*")},
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getduration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
