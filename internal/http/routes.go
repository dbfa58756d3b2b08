package http

import (
	"botrental/internal/config"
	"botrental/internal/domain"
	"botrental/internal/http/handlers"
	"botrental/internal/http/middleware"
	"botrental/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgxpool"
	redis "github.com/redis/go-redis/v9"
)

// registerValidations installs custom binding rules on gin's validator.
func registerValidations() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("rentalterm", func(fl validator.FieldLevel) bool {
			return domain.RentalTermValid(int(fl.Field().Int()))
		})
	}
}

// RegisterRoutes wires the HTTP surface: public auth endpoints, the
// authenticated user area and the role-gated admin group.
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	h *handlers.Handler,
	auth *service.AuthService,
	db *pgxpool.Pool,
	rdb *redis.Client,
	version string,
) {
	registerValidations()

	healthHandler := handlers.NewHealthHandler(db, rdb, version)

	// Health checks, no rate limiting.
	r.GET("/health", healthHandler.Health)
	r.GET("/healthz", healthHandler.Liveness)
	r.GET("/readyz", healthHandler.Readiness)

	v1 := r.Group("/api/v1")
	v1.Use(middleware.RedisRateLimit(cfg.APIRateLimit, cfg.APIRateWindow))

	// Auth flow. Code issuance carries its own tighter window.
	authGroup := v1.Group("/auth")
	authGroup.POST("/send-code",
		middleware.RedisRateLimit(cfg.AuthRateLimit, cfg.AuthRateWindow), h.SendCode)
	authGroup.POST("/verify-code", h.VerifyCode)
	authGroup.POST("/refresh", h.Refresh)

	jwt := middleware.JWT(auth)

	users := v1.Group("/users", jwt)
	users.GET("/me", h.Me)
	users.GET("/me/rentals", h.MyRentals)
	users.GET("/me/referrals", h.MyReferrals)

	v1.GET("/bots", h.ListBots)
	v1.POST("/bots/:id/rent", jwt, h.RentBot)
	v1.POST("/rentals/:id/stop", jwt, h.StopRental)
	v1.POST("/rentals/:id/start", jwt, h.StartRental)

	admin := v1.Group("/admin", jwt, middleware.RequireRole(domain.RoleAdmin, domain.RoleDev))
	admin.GET("/users", h.AdminListUsers)
	admin.GET("/users/:tg", h.AdminGetUser)
	admin.POST("/users/:tg/block", h.AdminBlockUser)
	admin.POST("/users/:tg/unblock", h.AdminUnblockUser)
	admin.POST("/users/:tg/deposit", h.AdminDeposit)
	admin.POST("/users/:tg/withdraw", h.AdminWithdraw)
	admin.POST("/users/:tg/role", h.AdminChangeRole)
	admin.DELETE("/users/:tg", h.AdminDeleteUser)
}
