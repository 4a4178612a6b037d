// Package playback models the browser-side playback sequence: federate
// a session token, resolve the live manifest, hand both to the player
// together with a fixed bag of tuning settings.
package playback

import (
	"net/url"
	"strings"
)

// Query parameters the media server expects on every manifest and
// segment request.
const (
	AuthSchemeParam = "x-auth-scheme"
	AuthScheme      = "federated-token"
	AuthTokenParam  = "x-auth-ft"
)

// TokenParams renders the fixed authentication parameter pair for a
// token. Parameter order is part of the contract with the player's
// request hook, so this does not go through url.Values.
func TokenParams(token string) string {
	return AuthSchemeParam + "=" + AuthScheme + "&" + AuthTokenParam + "=" + url.QueryEscape(token)
}

// RewriteURL appends the authentication parameters to a media URL,
// extending an existing query string rather than clobbering it. This
// is the pure form of the hook installed into the player.
func RewriteURL(raw, token string) string {
	sep := "?"
	if strings.Contains(raw, "?") {
		sep = "&"
	}
	return raw + sep + TokenParams(token)
}
