package middleware

import "net/http"

const (
	headerAllowOrigin   = "Access-Control-Allow-Origin"
	headerAllowMethods  = "Access-Control-Allow-Methods"
	headerAllowHeaders  = "Access-Control-Allow-Headers"
	headerExposeHeaders = "Access-Control-Expose-Headers"
	headerMaxAge        = "Access-Control-Max-Age"

	allowedMethods  = "GET, HEAD, OPTIONS"
	preflightMaxAge = "600"
)

// CORS allows any origin to read every response, whether or not the request carried an Origin header.
// Preflight requests are answered here and never reach next.
func CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set(headerAllowOrigin, "*")
		h.Set(headerExposeHeaders, "X-Request-ID")

		if isPreflight(r) {
			h.Set(headerAllowMethods, allowedMethods)
			if requested := r.Header.Get("Access-Control-Request-Headers"); requested != "" {
				h.Set(headerAllowHeaders, requested)
			}
			h.Set(headerMaxAge, preflightMaxAge)
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func isPreflight(r *http.Request) bool {
	return r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != ""
}
