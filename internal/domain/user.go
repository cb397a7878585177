package domain

// User is the profile returned by the backend for the authenticated user
type User struct {
	ID       string `json:"id"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Document string `json:"document,omitempty"`
	Weight   string `json:"weight,omitempty"`
}

// SignUpRequest is the account creation body
type SignUpRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Document string `json:"document"`
	FullName string `json:"fullName" validate:"required,max=100"`
	Weight   string `json:"weight"`
}

// Tokens is the access/refresh token pair issued by the backend
type Tokens struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken,omitempty"`
}
