package router

import (
	"movie-api/common"
	"movie-api/handler"
	"net/http"
	"time"

	_ "movie-api/docs"

	httpSwagger "github.com/swaggo/http-swagger/v2"
)

// authPolicy says whether a route sits behind the authentication gate.
type authPolicy int

const (
	public authPolicy = iota
	protected
	// legacyOpen routes are protected unless Options.LegacyOpenRoutes is set.
	legacyOpen
)

type route struct {
	pattern string
	handle  func(http.ResponseWriter, *http.Request) *common.AppError
	auth    authPolicy
}

// Options configures the middleware around the routes.
type Options struct {
	Tokens           handler.TokenParser
	LegacyOpenRoutes bool
	StaticDir        string
	AllowedOrigins   []string
	StoreTimeout     time.Duration

	// RateLimiter is optional. Nil disables rate limiting.
	RateLimiter *handler.RateLimiter
}

func (o Options) requiresAuth(p authPolicy) bool {
	switch p {
	case protected:
		return true
	case legacyOpen:
		return !o.LegacyOpenRoutes
	}
	return false
}

func routes(movies *handler.MovieHandler, users *handler.UserHandler, auth *handler.AuthHandler) []route {
	return []route{
		{"POST /login", auth.Login, public},

		{"GET /movies", movies.ListMovies, protected},
		{"GET /movies/{id}", movies.GetMovie, legacyOpen},
		{"POST /movies", movies.CreateMovie, legacyOpen},
		{"PUT /movies/{id}", movies.UpdateMovie, legacyOpen},
		{"DELETE /movies/{id}", movies.DeleteMovie, legacyOpen},

		{"GET /users", users.ListUsers, protected},
		{"GET /users/{username}", users.GetUser, protected},
		{"POST /users", users.Register, public},
		{"PUT /users/{username}", users.UpdateUser, protected},
		{"DELETE /users/{username}", users.DeleteUser, legacyOpen},
		{"POST /users/{username}/movies/{movieId}", users.AddFavorite, legacyOpen},
		{"DELETE /users/{username}/movies/{movieId}", users.RemoveFavorite, legacyOpen},
	}
}

func NewRouter(movies *handler.MovieHandler, users *handler.UserHandler, auth *handler.AuthHandler, opts Options) http.Handler {
	mux := http.NewServeMux()

	staticDir := opts.StaticDir
	if staticDir == "" {
		staticDir = "public"
	}

	// Public endpoints
	mux.HandleFunc("GET /{$}", handler.Welcome)
	mux.HandleFunc("GET /health", handler.HealthCheck)
	mux.HandleFunc("GET /documentation", handler.Documentation(staticDir))
	mux.Handle("GET /swagger/", httpSwagger.WrapHandler)
	mux.Handle("GET /", http.FileServer(http.Dir(staticDir)))

	authenticate := handler.AuthMiddleware(opts.Tokens)
	withTimeout := handler.TimeoutMiddleware(opts.StoreTimeout)

	for _, rt := range routes(movies, users, auth) {
		var h http.Handler = handler.ErrorHandlingMiddleware(rt.handle)
		h = withTimeout(h)
		if opts.requiresAuth(rt.auth) {
			h = authenticate(h)
		}
		mux.Handle(rt.pattern, h)
	}

	var h http.Handler = mux
	if opts.RateLimiter != nil {
		h = opts.RateLimiter.Middleware(h)
	}
	h = handler.CORSMiddleware(opts.AllowedOrigins)(h)
	h = handler.LoggingMiddleware(h)
	return handler.RecoverMiddleware(h)
}
