package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/smartlaundry/backend/api/controllers"
	"github.com/smartlaundry/backend/api/middleware"
	"github.com/smartlaundry/backend/internal/cart"
	"github.com/smartlaundry/backend/internal/catalog"
	"github.com/smartlaundry/backend/internal/content"
	"github.com/smartlaundry/backend/internal/identity"
	"github.com/smartlaundry/backend/internal/notifications"
	"github.com/smartlaundry/backend/internal/orders"
	"github.com/smartlaundry/backend/internal/payments"
	"github.com/smartlaundry/backend/pkg/config"
	"github.com/smartlaundry/backend/pkg/logger"
	"github.com/smartlaundry/backend/pkg/metrics"
	"github.com/smartlaundry/backend/pkg/redis"
)

// Deps bundles everything the HTTP surface needs.
type Deps struct {
	Config        *config.Config
	Logger        *logger.Logger
	DB            controllers.Pinger
	Redis         *redis.Client
	Registry      *prometheus.Registry
	Identity      identity.Service
	Catalog       catalog.Service
	Cart          cart.Service
	Orders        orders.Service
	Payments      payments.Service
	Notifications notifications.Service
	Content       content.Service
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	registry := deps.Registry
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	httpMetrics := metrics.NewHTTPMetrics(registry)

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.CORS(),
		middleware.Logging(logg),
		middleware.Metrics(httpMetrics),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterEmailLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.DB, deps.Redis))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	r.Route("/api/v1", func(r chi.Router) {
		// Public surface.
		r.Route("/auth", func(r chi.Router) {
			r.With(middleware.AuthRateLimit(registerPolicy, deps.Redis, logg)).Post("/register", controllers.AuthRegister(deps.Identity, logg))
			r.With(middleware.AuthRateLimit(loginPolicy, deps.Redis, logg)).Post("/login", controllers.AuthLogin(deps.Identity, logg))
			r.Post("/refresh", controllers.AuthRefresh(deps.Identity, logg))
			r.With(middleware.AuthRateLimit(loginPolicy, deps.Redis, logg)).Post("/forgot-password", controllers.ForgotPassword(deps.Identity, logg))
			r.Post("/reset-password", controllers.ResetPassword(deps.Identity, logg))
		})

		r.Route("/services", func(r chi.Router) {
			r.Get("/", controllers.ListServices(deps.Catalog, logg))
			r.Get("/categories", controllers.ListCategories(deps.Catalog, logg))
			r.Get("/categories/{categoryId}", controllers.CategoryServices(deps.Catalog, logg))
			r.Get("/{serviceId}", controllers.ServiceDetail(deps.Catalog, logg))
			r.Get("/{serviceId}/options", controllers.ServiceOptions(deps.Catalog, logg))
			r.Get("/{serviceId}/reviews", controllers.ServiceReviews(deps.Catalog, logg))
		})

		r.Route("/content", func(r chi.Router) {
			r.Get("/faqs", controllers.FAQList(deps.Content, logg))
			r.Get("/faqs/categories", controllers.FAQCategories(deps.Content, logg))
			r.Get("/config", controllers.SiteConfigList(deps.Content, logg))
			r.Get("/config/{key}", controllers.SiteConfigByKey(deps.Content, logg))
			r.Get("/banners", controllers.BannerList(deps.Content, logg))
			r.Post("/contact", controllers.ContactSubmit(deps.Content, logg))
		})

		// Authenticated surface.
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, logg))

			r.Post("/auth/logout", controllers.AuthLogout(deps.Identity, logg))
			r.Post("/auth/change-password", controllers.ChangePassword(deps.Identity, logg))
			r.Route("/auth/otp", func(r chi.Router) {
				r.Post("/generate", controllers.GenerateOTP(deps.Identity, logg))
				r.Post("/verify", controllers.VerifyOTP(deps.Identity, logg))
			})

			r.Route("/profile", func(r chi.Router) {
				r.Get("/", controllers.ProfileGet(deps.Identity, logg))
				r.Put("/", controllers.ProfileUpdate(deps.Identity, logg))
			})
			r.Get("/dashboard", controllers.Dashboard(deps.Orders, logg))

			r.Post("/services/{serviceId}/reviews", controllers.CreateServiceReview(deps.Catalog, logg))

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", controllers.CartList(deps.Cart, logg))
				r.Post("/", controllers.CartAdd(deps.Cart, logg))
				r.Get("/summary", controllers.CartSummary(deps.Cart, logg))
				r.Delete("/", controllers.CartClear(deps.Cart, logg))
				r.Put("/{itemId}", controllers.CartUpdateQuantity(deps.Cart, logg))
				r.Post("/{itemId}/update-quantity", controllers.CartUpdateQuantity(deps.Cart, logg))
				r.Delete("/{itemId}", controllers.CartRemove(deps.Cart, logg))
			})

			r.Route("/orders", func(r chi.Router) {
				r.Get("/", controllers.OrderList(deps.Orders, logg))
				r.Post("/", controllers.OrderCreate(deps.Orders, logg))
				r.Get("/{orderId}", controllers.OrderDetail(deps.Orders, logg))
				r.Get("/{orderId}/tracking", controllers.OrderTracking(deps.Orders, logg))
				r.Post("/{orderId}/cancel", controllers.OrderCancel(deps.Orders, logg))
				r.With(middleware.RequireAdmin(logg)).
					Post("/{orderId}/update-status", controllers.AdminOrderUpdateStatus(deps.Orders, logg))
			})

			r.Route("/payments", func(r chi.Router) {
				r.Get("/", controllers.PaymentList(deps.Payments, logg))
				r.Get("/{paymentId}", controllers.PaymentDetail(deps.Payments, logg))
			})

			r.Route("/notifications", func(r chi.Router) {
				r.Get("/", controllers.NotificationList(deps.Notifications, logg))
				r.Get("/unread-count", controllers.NotificationUnreadCount(deps.Notifications, logg))
				r.Post("/{notificationId}/read", controllers.NotificationMarkRead(deps.Notifications, logg))
				r.Post("/read-all", controllers.NotificationMarkAllRead(deps.Notifications, logg))
			})
		})

		// Admin surface.
		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, logg))
			r.Use(middleware.RequireAdmin(logg))

			r.Put("/orders/{orderId}/status", controllers.AdminOrderUpdateStatus(deps.Orders, logg))
			r.Get("/contact-messages", controllers.AdminContactList(deps.Content, logg))
			r.Put("/contact-messages/{messageId}/status", controllers.AdminContactUpdateStatus(deps.Content, logg))
		})
	})

	return r
}
