package httphandler

import (
	"net/http"
	"strings"
)

// AllowContentTypes admits JSON bodies everywhere and multipart forms on
// the upload surfaces (returns, bulk catalog).
func AllowContentTypes(next http.Handler) http.Handler {
	hf := func(w http.ResponseWriter, r *http.Request) {
		if r.ContentLength == 0 {
			next.ServeHTTP(w, r)
			return
		}

		ct := r.Header.Get("Content-Type")
		switch {
		case strings.HasPrefix(ct, "application/json"),
			strings.HasPrefix(ct, "multipart/form-data"):
			next.ServeHTTP(w, r)
		default:
			http.Error(w, "invalid media type", http.StatusUnsupportedMediaType)
		}
	}
	return http.HandlerFunc(hf)
}
