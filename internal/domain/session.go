package domain

// User identifies the signed-in user.
type User struct {
	Username string
}

// Credentials is the durable record written on login and cleared on logout.
// Both fields are written and cleared together.
type Credentials struct {
	Token    string `toml:"token"`
	Username string `toml:"username"`
}

// Valid reports whether both token and username are present.
func (c Credentials) Valid() bool {
	return c.Token != "" && c.Username != ""
}

// LoginRequest holds the form-encoded fields sent to the token endpoint.
type LoginRequest struct {
	Username string
	Password string
}

// RegisterRequest is the JSON body sent to the registration endpoint.
type RegisterRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// TokenResponse is returned by the token endpoint.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// RegisteredUser is the user record returned by the registration endpoint.
type RegisteredUser struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Role     string `json:"role"`
	ID       int    `json:"id"`
	IsActive bool   `json:"is_active"`
}
