package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/hazelworks/finbook/internal/api/service"
	"github.com/hazelworks/finbook/internal/api/store"
	"github.com/hazelworks/finbook/pkg/httpx"
	"github.com/hazelworks/finbook/pkg/jwtx"
	"github.com/hazelworks/finbook/pkg/slogx"

	_ "github.com/hazelworks/finbook/api/docs" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	policy       *Policy
	verifier     *jwtx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store              store.Store
	AuthService        *service.AuthService
	UserService        *service.UserService
	CategoryService    *service.CategoryService
	BudgetService      *service.BudgetService
	TransactionService *service.TransactionService
}

func NewRouter(
	verifier *jwtx.Verifier,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		policy:       NewPolicy(),
		verifier:     verifier,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	guard := &Guard{Policy: r.policy, Verifier: verifier, Store: st}

	// Logging wraps the guard so rejected requests still get a log line
	// with a request ID.
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
		guard.Middleware(),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerUsers()
	r.registerCategories()
	r.registerBudgets()
	r.registerTransactions()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Finbook API
//	@version		0.1.0
//	@description	Personal finance records: accounts, categories, budgets, and transactions.
//	@description
//	@description				Login returns an HS256-signed bearer token; pass it on every non-public request.
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT access token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAuth() {
	h := &AuthHandler{AuthService: r.AuthService}

	// Both endpoints take credentials, so both get the strict per-IP limit.
	r.Mux.Handle("POST /api/auth/signup",
		httpx.Chain(http.HandlerFunc(h.HandleSignup),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
	r.Mux.Handle("POST /api/auth/login",
		httpx.Chain(http.HandlerFunc(h.HandleLogin),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
}

func (r *Router) registerUsers() {
	h := &UsersHandler{UserService: r.UserService}

	r.Mux.HandleFunc("GET /api/users", h.HandleList)
	r.Mux.HandleFunc("GET /api/users/me", h.HandleMe)
	r.Mux.HandleFunc("GET /api/users/{id}", h.HandleGet)
	r.Mux.HandleFunc("PUT /api/users/{id}", h.HandleUpdate)
	r.Mux.HandleFunc("DELETE /api/users/{id}", h.HandleDelete)
}

func (r *Router) registerCategories() {
	h := &CategoriesHandler{CategoryService: r.CategoryService}

	r.Mux.HandleFunc("POST /api/categories", h.HandleCreate)
	r.Mux.HandleFunc("GET /api/categories", h.HandleList)
	r.Mux.HandleFunc("GET /api/categories/{id}", h.HandleGet)
	r.Mux.HandleFunc("PUT /api/categories/{id}", h.HandleUpdate)
	r.Mux.HandleFunc("DELETE /api/categories/{id}", h.HandleDelete)
}

func (r *Router) registerBudgets() {
	h := &BudgetsHandler{BudgetService: r.BudgetService}

	r.Mux.HandleFunc("POST /api/budgets", h.HandleCreate)
	r.Mux.HandleFunc("GET /api/budgets", h.HandleList)
	r.Mux.HandleFunc("GET /api/budgets/{id}", h.HandleGet)
	r.Mux.HandleFunc("PUT /api/budgets/{id}", h.HandleUpdate)
	r.Mux.HandleFunc("DELETE /api/budgets/{id}", h.HandleDelete)
}

func (r *Router) registerTransactions() {
	h := &TransactionsHandler{TransactionService: r.TransactionService}

	r.Mux.HandleFunc("POST /api/transactions", h.HandleCreate)
	r.Mux.HandleFunc("GET /api/transactions", h.HandleList)
	r.Mux.HandleFunc("GET /api/transactions/user/{userID}", h.HandleListByUser)
	r.Mux.HandleFunc("GET /api/transactions/{id}", h.HandleGet)
	r.Mux.HandleFunc("PUT /api/transactions/{id}", h.HandleUpdate)
	r.Mux.HandleFunc("DELETE /api/transactions/{id}", h.HandleDelete)
}

func (r *Router) registerSystem() {
	// Health endpoints are unauthenticated; monitoring may poll often.
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}
