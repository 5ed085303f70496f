package entity

// User is the account profile returned by the users and auth endpoints.
type User struct {
	ID           string `json:"_id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Role         Role   `json:"role"`
	ProfileImage string `json:"profileImage,omitempty"`
}

// Credentials is the login form.
type Credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Registration is the sign-up form. The optional profile image travels as a separate multipart part.
type Registration struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// AuthResult is the normalised login/register response.
type AuthResult struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}
