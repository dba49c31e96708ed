package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	rh "github.com/coreybb/daybrief/route-handlers"
	"github.com/coreybb/daybrief/webutil"
)

const (
	deleteUserPath    = "/delete-user/{userId}"
	validateFeedPath  = "/validate-feed"
	checkScanPath     = "/check-scan"
	fetchArticlesPath = "/fetch-articles"
)

// SetupRoutes wires the middleware stack and binds each handler to its
// route. Paths live at the root; the frontend consumes them as-is.
func SetupRoutes(
	userHandler *rh.UserHandler,
	feedHandler *rh.FeedHandler,
	scanHandler *rh.ScanHandler,
	articleHandler *rh.ArticleHandler,
	allowedOrigin string,
) http.Handler {
	r := chi.NewRouter()

	// Middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)    // Log every request
	r.Use(middleware.Recoverer) // Recover from panics
	r.Use(CORS(allowedOrigin))
	r.Use(SetHeader(webutil.HeaderContentType, webutil.ContentTypeJSONUTF8)) // Default Content-Type

	r.Delete(deleteUserPath, webutil.MakeHandler(userHandler.HandleDeleteUser))
	r.Post(validateFeedPath, webutil.MakeHandler(feedHandler.HandleValidateFeed))
	r.Get(checkScanPath, webutil.MakeHandler(scanHandler.HandleCheckScan))
	r.Post(fetchArticlesPath, webutil.MakeHandler(articleHandler.HandleFetchArticles))

	// Health check endpoint
	r.Get("/healthz", handleHealthCheck)

	return r
}

// handleHealthCheck responds to a health check request.
func handleHealthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set(webutil.HeaderContentType, webutil.ContentTypeTextPlainUTF8)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}
