package domain

import "strings"

// Kind distinguishes authenticated users from guest sessions.
type Kind string

const (
	// KindUser is an authenticated user identified by an externally issued token.
	KindUser Kind = "user"
	// KindGuest is an unauthenticated browser session identified by a
	// client-held opaque token.
	KindGuest Kind = "guest"
)

// GuestTokenPrefix marks tokens generated for guest sessions.
const GuestTokenPrefix = "guest_"

// Identity describes who a cart or order operation acts for.
type Identity struct {
	// Kind is the identity type.
	Kind Kind `json:"kind"`
	// Token is the user bearer token for KindUser, or the guest session
	// token for KindGuest.
	Token string `json:"-"`
}

// User builds an authenticated identity from a bearer token.
func User(token string) Identity {
	return Identity{Kind: KindUser, Token: token}
}

// Guest builds a guest identity from a session token.
func Guest(token string) Identity {
	return Identity{Kind: KindGuest, Token: token}
}

// IsGuest reports whether the identity is a guest session.
func (i Identity) IsGuest() bool {
	return i.Kind == KindGuest
}

// Valid reports whether the identity can perform operations.
// An empty token is "cannot perform operation", never a silent success.
func (i Identity) Valid() bool {
	return i.Token != ""
}

// Key returns a stable storage key component for per-identity state.
func (i Identity) Key() string {
	return string(i.Kind) + ":" + i.Token
}

// TokensFromHeaders extracts the user bearer token and the guest session
// token from their transport headers. Either may be empty.
func TokensFromHeaders(authorization, guestSession string) (userToken, guestToken string) {
	const bearerPrefix = "Bearer "
	if strings.HasPrefix(authorization, bearerPrefix) {
		userToken = strings.TrimSpace(strings.TrimPrefix(authorization, bearerPrefix))
	}
	guestToken = strings.TrimSpace(guestSession)
	return userToken, guestToken
}
