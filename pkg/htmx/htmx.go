package htmx

import "net/http"

// IsHxRequest reports whether the request was issued by htmx.
func IsHxRequest(r *http.Request) bool {
	return r.Header.Get("Hx-Request") == "true"
}

// ReplaceURL replaces the browser's current address bar entry without
// creating a new history entry.
func ReplaceURL(w http.ResponseWriter, url string) {
	w.Header().Set("HX-Replace-Url", url)
}

// Redirect instructs htmx to perform a client-side redirect.
func Redirect(w http.ResponseWriter, url string) {
	w.Header().Set("HX-Redirect", url)
}
