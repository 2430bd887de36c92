package api

import (
	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/fitflow/fitflow-web/internal/api/handler"
	"github.com/fitflow/fitflow-web/internal/api/middleware"
	"github.com/fitflow/fitflow-web/internal/api/view"
	"github.com/fitflow/fitflow-web/internal/core/ports"
	"github.com/fitflow/fitflow-web/internal/core/service"
	ophttp "github.com/fitflow/fitflow-web/internal/infrastructure/http"
	"github.com/fitflow/fitflow-web/internal/infrastructure/http/handlers"
)

// LoginPath is where the route guard and the error handler send signed-out browsers.
const LoginPath = "/admin/login"

// Dependencies are the adapters the router wires into services and handlers.
type Dependencies struct {
	Store   ports.SessionStore
	Backend ports.Backend
	Guard   ports.SubmitGuard
	Log     zerolog.Logger
}

// Options configures the browser-facing cookies.
type Options struct {
	SessionKey    []byte
	CSRFKey       []byte
	SessionMaxAge int
	CookieSecure  bool
	// Registerer receives the HTTP metrics; nil means the default registry.
	Registerer prometheus.Registerer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies, opts Options) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true

	renderer, err := view.NewRenderer()
	if err != nil {
		return nil, err
	}
	e.Renderer = renderer
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log, deps.Store, LoginPath)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(deps.Log))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "fitflow",
		Registerer: opts.Registerer,
	}))

	// --- Dependencies ---
	authService := service.NewAuthService(deps.Backend, deps.Store, deps.Log)
	clientService := service.NewClientService(deps.Backend, deps.Log)
	subscriptionService := service.NewSubscriptionService(deps.Backend)
	expenseService := service.NewExpenseService(deps.Backend)
	dashboardService := service.NewDashboardService(deps.Backend)
	profileService := service.NewProfileService(deps.Backend)
	paymentService := service.NewPaymentService(deps.Backend, deps.Guard, deps.Log)
	sequencer := service.NewSequencer()

	authHandler := handler.NewAuthHandler(authService)
	clientHandler := handler.NewClientHandler(clientService, subscriptionService, sequencer)
	subscriptionHandler := handler.NewSubscriptionHandler(subscriptionService)
	expenseHandler := handler.NewExpenseHandler(expenseService)
	dashboardHandler := handler.NewDashboardHandler(dashboardService, subscriptionService)
	profileHandler := handler.NewProfileHandler(profileService, dashboardService)
	paymentHandler := handler.NewPaymentHandler(paymentService, clientService, subscriptionService)

	// --- Operational routes (no session) ---
	ophttp.RegisterOps(e, map[string]handlers.Pinger{
		"session_store": deps.Store,
		"backend":       deps.Backend,
	})

	// --- Browser routes ---
	web := e.Group("",
		session.Middleware(sessions.NewCookieStore(opts.SessionKey)),
		middleware.SessionID(middleware.SessionOptions{MaxAge: opts.SessionMaxAge, Secure: opts.CookieSecure}),
		middleware.CSRF(opts.CSRFKey, opts.CookieSecure, deps.Log),
	)

	web.GET("/", authHandler.Home)
	web.GET("/admin/login", authHandler.AdminLoginPage)
	web.POST("/admin/login", authHandler.AdminLogin)
	web.GET("/client/login", authHandler.ClientLoginPage)
	web.POST("/client/login", authHandler.ClientLogin)
	web.GET("/forgot-password", authHandler.ForgotPasswordPage)
	web.POST("/forgot-password", authHandler.ForgotPassword)
	web.POST("/logout", authHandler.Logout)

	// --- Protected routes ---
	protected := web.Group("", middleware.Guard(deps.Store, LoginPath, deps.Log))

	protected.GET("/dashboard/admin", dashboardHandler.Admin)
	protected.GET("/dashboard/admin/chart.png", dashboardHandler.AdminChart)
	protected.GET("/dashboard/client", dashboardHandler.Client)

	// Only a signed-in admin may register another admin.
	protected.GET("/admin/create", authHandler.CreateAdminPage)
	protected.POST("/admin/create", authHandler.CreateAdmin)

	protected.GET("/addClient", clientHandler.NewPage)
	protected.POST("/addClient", clientHandler.Create)
	protected.GET("/clients", clientHandler.List)
	protected.GET("/api/clients/search", clientHandler.Search)
	protected.POST("/clients/:id/update", clientHandler.Update)
	protected.POST("/clients/:id/delete", clientHandler.Delete)

	protected.GET("/subscriptions", subscriptionHandler.List)
	protected.POST("/subscriptions", subscriptionHandler.Create)
	protected.GET("/subscriptions/choose", subscriptionHandler.ChoosePage)
	protected.POST("/subscriptions/select", subscriptionHandler.Select)

	protected.GET("/addExpense", expenseHandler.NewPage)
	protected.POST("/addExpense", expenseHandler.Add)
	protected.GET("/expenses", expenseHandler.List)

	protected.GET("/markCashPayment", paymentHandler.CashPage)
	protected.POST("/markCashPayment", paymentHandler.MarkCash)
	protected.GET("/payment", paymentHandler.MobilePage)
	protected.POST("/payment", paymentHandler.StartMobile)
	protected.GET("/payments", paymentHandler.History)

	protected.GET("/update", profileHandler.ClientPage)
	protected.POST("/update", profileHandler.UpdateClient)
	protected.GET("/admin/update", profileHandler.AdminPage)
	protected.POST("/admin/update", profileHandler.UpdateAdmin)

	return e, nil
}

// requestLogger feeds echo's request log into zerolog.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		LogValuesFunc: func(_ echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Error != nil {
				ev = log.Warn().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
