package authkit

import "net/http"

// htmx request headers consumed by the negotiation layer.
const (
	HXRequest = "HX-Request"
	HXBoosted = "HX-Boosted"
	HXTarget  = "HX-Target"
)

// htmx response headers used when steering the client after form submissions.
const (
	HXRedirect   = "HX-Redirect"
	HXRefresh    = "HX-Refresh"
	HXReswap     = "HX-Reswap"
	HXRetarget   = "HX-Retarget"
	HXPushURL    = "HX-Push-Url"
	HXReplaceURL = "HX-Replace-Url"
)

// IsHTMX reports whether the request was issued by the htmx client library
// as an asynchronous partial-page request. Such requests expect fragment
// responses and must never receive a wrapped full document.
func IsHTMX(r *http.Request) bool {
	return r.Header.Get(HXRequest) == "true"
}

// IsBoosted reports whether the request is an hx-boost navigation. Boosted
// requests still carry HX-Request but swap the whole body on the client.
func IsBoosted(r *http.Request) bool {
	return r.Header.Get(HXBoosted) == "true"
}

// Target returns the id of the element targeted by the triggering htmx
// attribute, if any.
func Target(r *http.Request) string {
	return r.Header.Get(HXTarget)
}

// Redirect sends the client to url in a transport-appropriate way: a
// HX-Redirect header for htmx requests (a Location header would be swallowed
// by the fetch layer) and a regular 303 redirect otherwise.
func Redirect(w http.ResponseWriter, r *http.Request, url string) {
	if IsHTMX(r) {
		w.Header().Set(HXRedirect, url)
		w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(w, r, url, http.StatusSeeOther)
}
