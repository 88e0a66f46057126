package router

import (
	"database/sql"
	"net/http"
	"os"

	mem "pet-registry/internal/adapters/storage/memory"
	pg "pet-registry/internal/adapters/storage/postgres"

	"pet-registry/internal/adapters/auth/jwtauth"
	"pet-registry/internal/domain/breeds"
	"pet-registry/internal/domain/pets"
	"pet-registry/internal/domain/pettypes"
	"pet-registry/internal/domain/unique"
	"pet-registry/internal/domain/users"
	"pet-registry/internal/middleware"
	"pet-registry/internal/ports/auth"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

type Options struct {
	// AuthVerifier puede ser nil (modo dev: se habilitan los headers
	// X-Debug-User-ID / X-Debug-User-Role y un secreto JWT fijo).
	AuthVerifier auth.TokenVerifier

	// TokenIssuer para /login. Si es nil se construye uno HS256 con
	// JWT_SECRET (o el secreto de dev).
	TokenIssuer auth.TokenIssuer

	// Opcional: si viene, usa Postgres. Si no, in-memory.
	DB *sql.DB

	CORSOrigins []string
}

func NewRouter(opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)

	origins := opts.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))

	devMode := opts.AuthVerifier == nil

	verifier := opts.AuthVerifier
	issuer := opts.TokenIssuer
	if verifier == nil || issuer == nil {
		secret := os.Getenv("JWT_SECRET")
		if secret == "" {
			secret = "dev-secret-not-for-production"
		}
		tokens := jwtauth.New(jwtauth.Config{Secret: []byte(secret)})
		if verifier == nil {
			verifier = tokens
		}
		if issuer == nil {
			issuer = tokens
		}
	}

	r.Use(middleware.AuthContext(verifier, devMode))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	var (
		usersRepo    users.Repository
		petTypesRepo pettypes.Repository
		breedsRepo   breeds.Repository
		petsRepo     pets.Repository
		checker      unique.Checker
	)

	// Si no te pasan DB explícita, intenta por env (para dev/handoff)
	db := opts.DB
	if db == nil {
		if dsn := os.Getenv("DB_DSN"); dsn != "" {
			opened, err := pg.Open(dsn)
			if err == nil {
				db = opened
			}
		}
	}

	if db != nil {
		usersRepo = pg.NewUsersRepo(db)
		petTypesRepo = pg.NewPetTypesRepo(db)
		breedsRepo = pg.NewBreedsRepo(db)
		petsRepo = pg.NewPetsRepo(db)
		checker = pg.NewChecks(db)
	} else {
		store := mem.NewStore()
		usersRepo = store.Users()
		petTypesRepo = store.PetTypes()
		breedsRepo = store.Breeds()
		petsRepo = store.Pets()
		checker = store
	}

	uniq := unique.NewValidator(checker)

	// Services por módulo
	usersSvc := users.NewService(usersRepo, uniq)
	petTypesSvc := pettypes.NewService(petTypesRepo, uniq)
	breedsSvc := breeds.NewService(breedsRepo, uniq)
	petsSvc := pets.NewService(petsRepo)

	// Rutas por módulo
	users.RegisterRoutes(r, usersSvc, issuer)
	pettypes.RegisterRoutes(r, petTypesSvc)
	breeds.RegisterRoutes(r, breedsSvc)
	pets.RegisterRoutes(r, petsSvc)

	return r
}
