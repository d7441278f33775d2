package subscriptionsystem

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magabrotheeeer/subscription-system/internal/http/handlers/health"
	notificationlist "github.com/magabrotheeeer/subscription-system/internal/http/handlers/notification/list"
	paymentcreate "github.com/magabrotheeeer/subscription-system/internal/http/handlers/payment/create"
	paymentlist "github.com/magabrotheeeer/subscription-system/internal/http/handlers/payment/list"
	paymentsetstatus "github.com/magabrotheeeer/subscription-system/internal/http/handlers/payment/setstatus"
	methodcreate "github.com/magabrotheeeer/subscription-system/internal/http/handlers/paymentmethod/create"
	methodlist "github.com/magabrotheeeer/subscription-system/internal/http/handlers/paymentmethod/list"
	methodread "github.com/magabrotheeeer/subscription-system/internal/http/handlers/paymentmethod/read"
	methodremove "github.com/magabrotheeeer/subscription-system/internal/http/handlers/paymentmethod/remove"
	methodupdate "github.com/magabrotheeeer/subscription-system/internal/http/handlers/paymentmethod/update"
	subscriptioncancel "github.com/magabrotheeeer/subscription-system/internal/http/handlers/subscription/cancel"
	subscriptioncreate "github.com/magabrotheeeer/subscription-system/internal/http/handlers/subscription/create"
	subscriptionlist "github.com/magabrotheeeer/subscription-system/internal/http/handlers/subscription/list"
	subscriptionread "github.com/magabrotheeeer/subscription-system/internal/http/handlers/subscription/read"
	subscriptionupdate "github.com/magabrotheeeer/subscription-system/internal/http/handlers/subscription/update"
	userinfo "github.com/magabrotheeeer/subscription-system/internal/http/handlers/user/info"
	userlist "github.com/magabrotheeeer/subscription-system/internal/http/handlers/user/list"
	userlogin "github.com/magabrotheeeer/subscription-system/internal/http/handlers/user/login"
	userlogout "github.com/magabrotheeeer/subscription-system/internal/http/handlers/user/logout"
	userregister "github.com/magabrotheeeer/subscription-system/internal/http/handlers/user/register"
	userremove "github.com/magabrotheeeer/subscription-system/internal/http/handlers/user/remove"
	userupdate "github.com/magabrotheeeer/subscription-system/internal/http/handlers/user/update"
	"github.com/magabrotheeeer/subscription-system/internal/http/middlewarectx"
	"github.com/magabrotheeeer/subscription-system/internal/lib/jwt"
	notificationservice "github.com/magabrotheeeer/subscription-system/internal/services/notification"
	paymentservice "github.com/magabrotheeeer/subscription-system/internal/services/payment"
	paymentmethodservice "github.com/magabrotheeeer/subscription-system/internal/services/paymentmethod"
	subscriptionservice "github.com/magabrotheeeer/subscription-system/internal/services/subscription"
	userservice "github.com/magabrotheeeer/subscription-system/internal/services/user"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, jwtMaker jwt.Maker,
	userService *userservice.UserService,
	subscriptionService *subscriptionservice.SubscriptionService,
	paymentMethodService *paymentmethodservice.PaymentMethodService,
	paymentService *paymentservice.PaymentService,
	notificationService *notificationservice.NotificationService,
) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	// Открытые конечные точки
	r.Post("/user/register", userregister.New(logger, userService).ServeHTTP)
	r.Post("/user/login", userlogin.New(logger, userService).ServeHTTP)
	r.Post("/user/logout", userlogout.New(logger).ServeHTTP)
	r.Get("/user/list", userlist.New(logger, userService).ServeHTTP)

	// Группа с проверкой токена из cookie
	r.Group(func(r chi.Router) {
		r.Use(middlewarectx.JWTMiddleware(jwtMaker, logger))
		r.Use(middlewarectx.RateLimitMiddleware(logger))

		r.Get("/user/info", userinfo.New(logger, userService).ServeHTTP)
		r.Put("/user/update", userupdate.New(logger, userService).ServeHTTP)
		r.Delete("/user/delete", userremove.New(logger, userService).ServeHTTP)

		r.Post("/subscription/new", subscriptioncreate.New(logger, subscriptionService).ServeHTTP)
		r.Get("/subscription/info/{id}", subscriptionread.New(logger, subscriptionService).ServeHTTP)
		r.Get("/subscription/list", subscriptionlist.New(logger, subscriptionService).ServeHTTP)
		r.Put("/subscription/update/{id}", subscriptionupdate.New(logger, subscriptionService).ServeHTTP)
		r.Delete("/subscription/cancel/{id}", subscriptioncancel.New(logger, subscriptionService).ServeHTTP)

		r.Post("/payment_method/new", methodcreate.New(logger, paymentMethodService).ServeHTTP)
		r.Get("/payment_method/info/{id}", methodread.New(logger, paymentMethodService).ServeHTTP)
		r.Get("/payment_method/list", methodlist.New(logger, paymentMethodService).ServeHTTP)
		r.Put("/payment_method/update/{id}", methodupdate.New(logger, paymentMethodService).ServeHTTP)
		r.Delete("/payment_method/delete/{id}", methodremove.New(logger, paymentMethodService).ServeHTTP)

		r.Post("/payment/new", paymentcreate.New(logger, paymentService).ServeHTTP)
		r.Get("/payment/list", paymentlist.New(logger, paymentService).ServeHTTP)
		r.Post("/payment/set_status", paymentsetstatus.New(logger, paymentService).ServeHTTP)

		r.Get("/notification/", notificationlist.New(logger, notificationService).ServeHTTP)
	})

	r.Get("/health", health.New(logger).ServeHTTP)
	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
