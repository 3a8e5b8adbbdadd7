package dto

// LoginRequest body de POST /api/auth/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// UserDTO usuario autenticado.
type UserDTO struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// LoginResponse token JWT y datos del usuario.
type LoginResponse struct {
	Token     string  `json:"token"`
	ExpiresIn int     `json:"expires_in"` // segundos
	User      UserDTO `json:"user"`
}
