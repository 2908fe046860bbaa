package middleware

import "net/http"

// FeatureGate redirects to redirectTo when the feature is disabled. The
// decision is a pure function of the injected flag; nothing is read from
// the environment at request time.
func FeatureGate(enabled bool, redirectTo string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !enabled {
				http.Redirect(w, r, redirectTo, http.StatusTemporaryRedirect)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
