package model

const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

// User represents a registered account
type User struct {
	ID           int    `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"` // Do not expose password hash in JSON responses
	Authority    string `json:"authority"`
}

// RegisterUserRequest is used for user self-registration
type RegisterUserRequest struct {
	Username  string `json:"username" binding:"required,max=20"`
	Password  string `json:"password" binding:"required,max=20"`
	Authority string `json:"authority" binding:"required,max=10"`
}

// UserResponse is the wire shape of a user; the password hash is never mapped out
type UserResponse struct {
	ID        int    `json:"id"`
	Username  string `json:"username"`
	Authority string `json:"authority"`
}
