// cmd/api/main.go
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/konnethq/konnet/internal/auth"
	"github.com/konnethq/konnet/internal/config"
	"github.com/konnethq/konnet/internal/email"
	"github.com/konnethq/konnet/internal/handler"
	"github.com/konnethq/konnet/internal/middleware"
	"github.com/konnethq/konnet/internal/model"
	"github.com/konnethq/konnet/internal/repository"
	"github.com/konnethq/konnet/internal/service"
	"github.com/konnethq/konnet/internal/sms"
	"github.com/konnethq/konnet/internal/storage"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "startup error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Initialize structured logger
	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				return slog.Attr{
					Key:   a.Key,
					Value: slog.StringValue(a.Value.Time().Format(time.RFC3339)),
				}
			}
			return a
		},
	}))
	slog.SetDefault(log)

	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := setupDatabase(cfg)
	if err != nil {
		return fmt.Errorf("setting up database: %w", err)
	}

	// Initialize repositories
	orgRepo := repository.NewOrganizationRepository(db)
	memberRepo := repository.NewMemberRepository(db)
	adminRepo := repository.NewAdminRepository(db)

	// Initialize auth services
	passwordHasher := auth.NewPasswordHasher()
	tokenManager := auth.NewTokenManager(cfg.JWT.Secret, cfg.JWT.ExpiryPeriod)

	// Initialize delivery collaborators
	emailService := email.NewService(cfg)
	smsClient := sms.NewClient(cfg)
	avatarStore, err := storage.NewMinioStore(cfg)
	if err != nil {
		return fmt.Errorf("setting up avatar storage: %w", err)
	}

	// Initialize services
	authService := service.NewAuthService(orgRepo, memberRepo, adminRepo, passwordHasher, tokenManager)
	orgService := service.NewOrganizationService(orgRepo)
	memberService := service.NewMemberService(memberRepo, orgRepo, passwordHasher, smsClient, avatarStore)
	resetService := service.NewPasswordResetService(orgRepo, memberRepo, passwordHasher, tokenManager, emailService, cfg)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService, resetService)
	orgHandler := handler.NewOrganizationHandler(orgService)
	memberHandler := handler.NewMemberHandler(memberService)

	// Principal resolution table for the auth middleware, keyed by the
	// role the verified token carries.
	lookup := middleware.PrincipalLookup{
		model.RoleOrganization: func(ctx context.Context, id uuid.UUID) (model.Principal, error) {
			return orgRepo.FindByID(ctx, id)
		},
		model.RoleMember: func(ctx context.Context, id uuid.UUID) (model.Principal, error) {
			return memberRepo.FindByID(ctx, id)
		},
		model.RoleAdmin: func(ctx context.Context, id uuid.UUID) (model.Principal, error) {
			return adminRepo.FindByID(ctx, id)
		},
	}
	authenticate := middleware.Authenticator(tokenManager, lookup)

	// Create router
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(loggingMiddleware(log))
	r.Use(recoveryMiddleware(log))
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
	})

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		// Public auth routes
		r.Route("/auth", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				r.Use(chimw.AllowContentType("application/json"))

				r.Post("/organizations/register", authHandler.RegisterOrganization)
				r.Post("/organizations/login", authHandler.LoginOrganization)
				r.Post("/members/login", authHandler.LoginMember)
				r.Post("/admins/login", authHandler.LoginAdmin)
			})
			r.Post("/logout", authHandler.Logout)

			// Admin registration requires an authenticated admin
			r.Group(func(r chi.Router) {
				r.Use(authenticate)
				r.Use(middleware.RequireRoles(model.RoleAdmin))
				r.Post("/admins/register", authHandler.RegisterAdmin)
			})
		})

		// Organization routes
		r.Route("/organizations", func(r chi.Router) {
			// Public recovery flow
			r.Post("/forgotpassword", authHandler.OrganizationForgotPassword)
			r.Put("/resetpassword/{resettoken}", authHandler.OrganizationResetPassword)

			r.Group(func(r chi.Router) {
				r.Use(authenticate)

				r.With(middleware.RequireRoles(model.RoleAdmin)).Get("/", orgHandler.List)

				r.Route("/{organizationID}", func(r chi.Router) {
					r.With(middleware.RequireRoles(model.RoleAdmin, model.RoleOrganization)).Get("/", orgHandler.Get)
					r.With(middleware.RequireRoles(model.RoleAdmin, model.RoleOrganization)).Put("/", orgHandler.Update)
					r.With(middleware.RequireRoles(model.RoleAdmin)).Delete("/", orgHandler.Delete)

					// Members scoped to one organization
					r.Route("/members", func(r chi.Router) {
						r.With(middleware.RequireRoles(model.RoleAdmin, model.RoleOrganization, model.RoleMember)).
							Get("/", memberHandler.List)
						r.With(middleware.RequireRoles(model.RoleAdmin, model.RoleOrganization)).
							Post("/", memberHandler.Create)
						r.With(middleware.RequireRoles(model.RoleAdmin, model.RoleOrganization)).
							Post("/import", memberHandler.Import)
						r.With(middleware.RequireRoles(model.RoleAdmin, model.RoleOrganization, model.RoleMember)).
							Get("/{memberID}", memberHandler.Get)
					})
				})
			})
		})

		// Member routes
		r.Route("/members", func(r chi.Router) {
			// Public recovery flow
			r.Post("/forgotpassword", authHandler.MemberForgotPassword)
			r.Put("/resetpassword/{resettoken}", authHandler.MemberResetPassword)

			r.Group(func(r chi.Router) {
				r.Use(authenticate)

				r.With(middleware.RequireRoles(model.RoleMember)).Get("/me", memberHandler.Me)
				r.With(middleware.RequireRoles(model.RoleMember)).Put("/details", memberHandler.UpdateDetails)
				r.With(middleware.RequireRoles(model.RoleMember)).Put("/password", memberHandler.UpdatePassword)
				r.With(middleware.RequireRoles(model.RoleMember)).Post("/avatar", memberHandler.UploadAvatar)

				r.With(middleware.RequireRoles(model.RoleAdmin, model.RoleOrganization, model.RoleMember)).
					Get("/search", memberHandler.Search)

				r.With(middleware.RequireRoles(model.RoleAdmin, model.RoleOrganization, model.RoleMember)).
					Post("/message/single", memberHandler.MessageMember)
				r.With(middleware.RequireRoles(model.RoleAdmin, model.RoleOrganization)).
					Post("/message/all", memberHandler.MessageMembers)

				r.With(middleware.RequireRoles(model.RoleAdmin)).Post("/sweep", memberHandler.Sweep)

				r.With(middleware.RequireRoles(model.RoleAdmin, model.RoleOrganization)).
					Delete("/{memberID}", memberHandler.Delete)
			})
		})
	})

	// Create server
	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           r,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       120 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Server error channel
	serverErrors := make(chan error, 1)

	// Start server
	go func() {
		log.Info("server starting", "port", cfg.Server.Port)
		serverErrors <- srv.ListenAndServe()
	}()

	// Shutdown channel
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt)

	// Wait for shutdown or error
	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		log.Info("shutdown started", "signal", sig)

		// Give outstanding requests a deadline for completion
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		// Gracefully shutdown the server
		if err := srv.Shutdown(ctx); err != nil {
			// If shutdown times out, forcefully close
			srv.Close()
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
	}

	return nil
}

func setupDatabase(cfg *config.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s search_path=%s",
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.User,
		cfg.Database.Password,
		cfg.Database.Name,
		cfg.Database.SSLMode,
		cfg.Database.SearchPath,
	)

	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	}

	db, err := gorm.Open(postgres.Open(dsn), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("getting database instance: %w", err)
	}

	// Configure connection pool
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(25)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)
	sqlDB.SetConnMaxIdleTime(5 * time.Minute)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return db, nil
}

func loggingMiddleware(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

			defer func() {
				log.Info("request completed",
					"method", r.Method,
					"path", r.URL.Path,
					"duration", time.Since(start),
					"status", ww.Status(),
					"size", ww.BytesWritten(),
					"requestID", chimw.GetReqID(r.Context()),
				)
			}()

			next.ServeHTTP(ww, r)
		})
	}
}

func recoveryMiddleware(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					log.Error("panic recovered",
						"panic", rvr,
						"stack", string(debug.Stack()),
						"requestID", chimw.GetReqID(r.Context()),
					)

					w.WriteHeader(http.StatusInternalServerError)
					w.Write([]byte(`{"success":false,"error":"Internal server error"}`))
					return
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
