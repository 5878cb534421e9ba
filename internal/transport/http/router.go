package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"golang.org/x/time/rate"

	"github.com/oceanpet/api/internal/application/auth"
	"github.com/oceanpet/api/internal/application/diary"
	"github.com/oceanpet/api/internal/application/folder"
	"github.com/oceanpet/api/internal/application/identity"
	"github.com/oceanpet/api/internal/application/otp"
	"github.com/oceanpet/api/internal/application/user"
	"github.com/oceanpet/api/internal/config"
	"github.com/oceanpet/api/internal/infrastructure/facebook"
	"github.com/oceanpet/api/internal/infrastructure/google"
	jwtinfra "github.com/oceanpet/api/internal/infrastructure/jwt"
	"github.com/oceanpet/api/internal/infrastructure/oauth"
	"github.com/oceanpet/api/internal/infrastructure/smtp"
	"github.com/oceanpet/api/internal/transport/http/handler"
	appmiddleware "github.com/oceanpet/api/internal/transport/http/middleware"
)

// Deps holds all infrastructure dependencies for the router.
type Deps struct {
	UserRepo     UserRepository
	IdentityRepo IdentityRepository
	OTPRepo      OTPRepository
	FolderRepo   FolderRepository
	DiaryRepo    DiaryRepository
	Mailer       smtp.Mailer
	JWTProvider  *jwtinfra.Provider
}

// NewRouter builds and returns the application router.
func NewRouter(cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// 5 requests/second, burst of 10, applied to sensitive public endpoints.
	sensitiveRL := appmiddleware.NewRateLimiter(rate.Limit(5), 10)

	identitySvc := identity.NewService(identity.ServiceDeps{
		Claims: deps.IdentityRepo,
		Users:  deps.UserRepo,
	})
	otpSvc := otp.NewService(otp.ServiceDeps{
		Store:  deps.OTPRepo,
		Users:  deps.UserRepo,
		Mailer: deps.Mailer,
		Expiry: cfg.OTPExpiry,
	})
	authSvc := auth.NewService(auth.ServiceDeps{
		Identities: identitySvc,
		OTPs:       otpSvc,
		Users:      deps.UserRepo,
		Signer:     deps.JWTProvider,
		Google:     google.NewVerifier(cfg.GoogleClientID),
		Facebook:   facebook.NewVerifier(),
	})
	userSvc := user.NewService(user.ServiceDeps{Store: deps.UserRepo})
	folderSvc := folder.NewService(folder.ServiceDeps{Store: deps.FolderRepo})
	diarySvc := diary.NewService(diary.ServiceDeps{Store: deps.DiaryRepo})

	// A provider with empty credentials stays unregistered, which disables
	// its redirect endpoints with a 404.
	providers := map[string]oauth.Provider{}
	if cfg.GoogleClientID != "" && cfg.GoogleClientSecret != "" {
		providers["google"] = oauth.NewGoogle(cfg.GoogleClientID, cfg.GoogleClientSecret,
			cfg.OAuthCallbackBaseURL+"/google/callback")
	}
	if cfg.FacebookAppID != "" && cfg.FacebookAppSecret != "" {
		providers["facebook"] = oauth.NewFacebook(cfg.FacebookAppID, cfg.FacebookAppSecret,
			cfg.OAuthCallbackBaseURL+"/facebook/callback")
	}

	healthH := handler.NewHealthHandler()
	authH := handler.NewAuthHandler(authSvc)
	oauthH := handler.NewOAuthHandler(authSvc, providers, cfg.MobileRedirectScheme)
	userH := handler.NewUserHandler(userSvc)
	folderH := handler.NewFolderHandler(folderSvc)
	diaryH := handler.NewDiaryHandler(diarySvc)

	r.Route("/v1", func(r chi.Router) {
		// ── Public routes (no auth) ──────────────────────────────────────────
		r.Get("/health-check/{action}", healthH.Ping)

		r.With(sensitiveRL.Limit).Post("/auth/register", authH.Register)
		r.With(sensitiveRL.Limit).Post("/auth/verify-otp", authH.VerifyOTP)
		r.With(sensitiveRL.Limit).Post("/auth/resend-otp", authH.ResendOTP)
		r.With(sensitiveRL.Limit).Post("/auth/login", authH.Login)
		r.With(sensitiveRL.Limit).Post("/auth/google/token", authH.GoogleToken)
		r.With(sensitiveRL.Limit).Post("/auth/facebook/token", authH.FacebookToken)

		r.Get("/auth/{provider}", oauthH.Redirect)
		r.Get("/auth/{provider}/callback", oauthH.Callback)

		// ── Authenticated routes ─────────────────────────────────────────────
		r.Group(func(r chi.Router) {
			r.Use(appmiddleware.Auth(deps.JWTProvider))

			r.Get("/users/{id}", userH.Get)
			r.Put("/users/{id}", userH.Update)

			r.Get("/folders", folderH.List)
			r.Post("/folders/sync", folderH.Sync)

			r.Get("/diary", diaryH.List)
			r.Post("/diary", diaryH.Create)
			r.Get("/diary/trash", diaryH.Trash)
			r.Put("/diary/{id}", diaryH.Update)
			r.Delete("/diary/{id}", diaryH.Delete)
			r.Post("/diary/{id}/restore", diaryH.Restore)
			r.Delete("/diary/{id}/permanent", diaryH.PermanentDelete)
		})
	})

	return r
}
