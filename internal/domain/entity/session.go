package entity

// Session is the authenticated user's credential, identity and role as persisted locally.
type Session struct {
	Token  string `json:"token"`  // Bearer credential sent on protected routes.
	UserID string `json:"userId"` // Identifier of the signed-in user.
	Role   Role   `json:"role"`   // Role reported by the API at login.
}

// IsAdmin reports whether the session acts with administrative rights.
func (s *Session) IsAdmin() bool {
	return s != nil && s.Role == RoleAdmin
}

// Authenticated reports whether the session carries a credential.
func (s *Session) Authenticated() bool {
	return s != nil && s.Token != ""
}
