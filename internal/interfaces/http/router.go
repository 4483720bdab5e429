package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gavel/internal/infrastructure/config"
	"gavel/internal/interfaces/http/handlers"
	"gavel/internal/interfaces/http/middleware"
	"gavel/internal/shared/constants"
	"gavel/internal/shared/logger"
)

// Router wires handlers onto the Gin engine.
type Router struct {
	engine               *gin.Engine
	authMiddleware       *middleware.AuthMiddleware
	planHandler          *handlers.PlanHandler
	subscriptionHandler  *handlers.SubscriptionHandler
	paymentHandler       *handlers.PaymentHandler
	paymentMethodHandler *handlers.PaymentMethodHandler
	renewalHandler       *handlers.RenewalHandler
	logger               logger.Interface
}

func NewRouter(
	authMiddleware *middleware.AuthMiddleware,
	planHandler *handlers.PlanHandler,
	subscriptionHandler *handlers.SubscriptionHandler,
	paymentHandler *handlers.PaymentHandler,
	paymentMethodHandler *handlers.PaymentMethodHandler,
	renewalHandler *handlers.RenewalHandler,
	log logger.Interface,
) *Router {
	return &Router{
		engine:               gin.New(),
		authMiddleware:       authMiddleware,
		planHandler:          planHandler,
		subscriptionHandler:  subscriptionHandler,
		paymentHandler:       paymentHandler,
		paymentMethodHandler: paymentMethodHandler,
		renewalHandler:       renewalHandler,
		logger:               log,
	}
}

// SetupRoutes configures all HTTP routes
func (r *Router) SetupRoutes(cfg *config.Config) {
	if cfg.Server.Mode == constants.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	registerValidations()

	r.engine.Use(middleware.Logger(r.logger))
	r.engine.Use(middleware.Recovery(r.logger))
	r.engine.Use(middleware.ErrorHandler(r.logger))
	r.engine.Use(middleware.CORS(cfg.Server.AllowedOrigins))
	r.engine.Use(middleware.SecurityHeaders())

	r.engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.setupPlanRoutes()
	r.setupBillingRoutes()
	r.setupAdminRoutes()
}

// setupPlanRoutes configures the public plan catalog
func (r *Router) setupPlanRoutes() {
	plans := r.engine.Group("/plans")
	{
		plans.GET("", r.planHandler.ListPlans)
		plans.GET("/:id", r.planHandler.GetPlan)
	}
}

// setupBillingRoutes configures the authenticated billing surface
func (r *Router) setupBillingRoutes() {
	billing := r.engine.Group("/billing")
	billing.Use(r.authMiddleware.RequireAuth())
	{
		billing.POST("/intents", r.paymentHandler.CreateIntent)
		billing.POST("/confirm", r.paymentHandler.ConfirmPurchase)
		billing.GET("/credits", r.paymentHandler.GetCredits)
		billing.GET("/payments", r.paymentHandler.ListPayments)

		billing.GET("/subscription", r.subscriptionHandler.GetActive)
		billing.POST("/subscriptions/:id/cancel", r.subscriptionHandler.Cancel)

		billing.POST("/payment-methods", r.paymentMethodHandler.AddMethod)
		billing.GET("/payment-methods", r.paymentMethodHandler.ListMethods)
		billing.DELETE("/payment-methods/:id", r.paymentMethodHandler.RemoveMethod)
		billing.PUT("/payment-methods/:id/default", r.paymentMethodHandler.SetDefaultMethod)
	}
}

// setupAdminRoutes configures catalog management and operator endpoints.
// Admin traffic is expected to arrive through a separately authenticated
// gateway; here it shares the standard token check.
func (r *Router) setupAdminRoutes() {
	admin := r.engine.Group("/admin")
	admin.Use(r.authMiddleware.RequireAuth())
	{
		admin.POST("/plans", r.planHandler.CreatePlan)
		admin.GET("/plans", r.planHandler.ListPlans)
		admin.PATCH("/plans/:id", r.planHandler.UpdatePlan)
		admin.DELETE("/plans/:id", r.planHandler.DeactivatePlan)

		admin.GET("/subscriptions", r.subscriptionHandler.ListAll)
		admin.POST("/renewals/run", r.renewalHandler.RunSweep)
	}
}

// Engine returns the underlying Gin engine
func (r *Router) Engine() *gin.Engine {
	return r.engine
}
