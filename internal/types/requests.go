package types

// LoginRequest represents a login or signup request. The password travels
// with the request but verification is delegated to the configured verifier;
// the default accepts any credentials for a non-empty email.
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password,omitempty"`
}

// LoginResponse carries the established session and its bearer token.
type LoginResponse struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

// CandidateListResponse is the roster view returned by the list endpoint,
// optionally narrowed by a search term.
type CandidateListResponse struct {
	Candidates []Candidate `json:"candidates"`
	Count      int         `json:"count"`
}
