package domain

// PrincipalKind distinguishes the two kinds of authenticated principal.
type PrincipalKind string

const (
	KindShopper  PrincipalKind = "shopper"
	KindMerchant PrincipalKind = "merchant"
)

// Session is the authenticated principal for this client. At most one session
// is active at a time. The token, when present, is opaque to the client and
// never proactively revalidated.
type Session struct {
	PrincipalID string        `json:"id"`
	Token       string        `json:"token,omitempty"`
	Kind        PrincipalKind `json:"kind"`
}

// Authenticated reports whether the session identifies a principal.
func (s Session) Authenticated() bool {
	return s.PrincipalID != ""
}
