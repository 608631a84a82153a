package dto

// LoginRequest describes username/password payload.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UserResponse is a staff account without its password.
type UserResponse struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	Role     string `json:"role"`
}

// LoginResponse returns the signed-in user and the session token.
type LoginResponse struct {
	User  UserResponse `json:"user"`
	Token string       `json:"token"`
}

// UserRequest creates or updates an account. An empty password keeps the stored one.
type UserRequest struct {
	Username string `json:"username" binding:"required"`
	Name     string `json:"name"`
	Role     string `json:"role"`
	Password string `json:"password"`
}
