package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"complaint-desk/internal/config"
	"complaint-desk/internal/handler"
	"complaint-desk/internal/middleware"
	"complaint-desk/internal/model"
	"complaint-desk/internal/service"
	"complaint-desk/internal/validation"
)

func New(
	cfg *config.Config,
	authMiddleware *middleware.AuthMiddleware,
	validator *validation.Validator,
	authHandler *handler.AuthHandler,
	complaintHandler *handler.ComplaintHandler,
	userHandler *handler.UserHandler,
	healthHandler *handler.HealthHandler,
	docsHandler *handler.DocsHandler,
) http.Handler {
	r := chi.NewRouter()
	rateLimitMiddleware := middleware.NewRateLimitMiddleware(cfg.RateLimitRPM, cfg.AuthRateLimitRPM, "/register", "/login")

	r.Use(middleware.Recovery)
	r.Use(middleware.Logging)
	r.Use(middleware.CORS(cfg.CORSOrigins))
	r.Use(rateLimitMiddleware.Handler)

	r.Get("/health", healthHandler.Health)
	r.Get("/openapi.yaml", docsHandler.OpenAPI)
	r.Get("/swagger", docsHandler.SwaggerUI)

	authenticated := r.With(authMiddleware.RequireAuth)

	r.With(middleware.ValidateBody[model.RegisterRequest](validator)).Post("/register", authHandler.Register)
	r.With(middleware.ValidateBody[model.LoginRequest](validator)).Post("/login", authHandler.Login)

	authenticated.Get("/users/me", authHandler.Me)
	authenticated.With(middleware.ValidateBody[model.ChangePasswordRequest](validator)).Post("/users/change-password", authHandler.ChangePassword)

	authenticated.Get("/complainers/complaints", complaintHandler.List)
	authenticated.With(
		authMiddleware.RequireRoles(service.CreateComplaintRoles...),
		middleware.ValidateBody[model.CreateComplaintRequest](validator),
	).Post("/complainers/complaints", complaintHandler.Create)

	authenticated.With(authMiddleware.RequireRoles(service.ReviewComplaintRoles...)).Put("/complaints/{id}/approve", complaintHandler.Approve)
	authenticated.With(authMiddleware.RequireRoles(service.ReviewComplaintRoles...)).Put("/complaints/{id}/reject", complaintHandler.Reject)

	authenticated.With(
		authMiddleware.RequireRoles(service.CreateStaffRoles...),
		middleware.ValidateBody[model.CreateStaffRequest](validator),
	).Post("/admin/users", userHandler.CreateStaff)

	return r
}
