package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/satishccy/splitrix/pkg/response"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

// ViewerKey is the context key for the requesting wallet address.
const ViewerKey ContextKey = "viewer_address"

// ViewerHeader names the header clients use to identify their wallet.
const ViewerHeader = "X-Viewer-Address"

// ViewerMiddleware requires a wallet address on every request. All balance
// views are computed from the viewer's perspective, so a request without one
// is unanswerable.
func ViewerMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		viewer := strings.TrimSpace(r.Header.Get(ViewerHeader))
		if viewer == "" {
			response.Unauthorized(w, ViewerHeader+" header required")
			return
		}
		if !strings.HasPrefix(viewer, "0x") {
			response.Unauthorized(w, "viewer address must start with 0x")
			return
		}

		ctx := context.WithValue(r.Context(), ViewerKey, strings.ToLower(viewer))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetViewer extracts the viewer address from the request context
func GetViewer(ctx context.Context) (string, bool) {
	viewer, ok := ctx.Value(ViewerKey).(string)
	return viewer, ok
}
