package dto

// RegisterRequest cadastro de usuário.
type RegisterRequest struct {
	Name            string   `json:"name"`
	Email           string   `json:"email" validate:"required,email"`
	Password        string   `json:"password" validate:"required,min=6"`
	Role            string   `json:"role"`
	SchoolID        string   `json:"school_id"`
	AssignedSchools []string `json:"assigned_schools"`
	GEE             string   `json:"gee"`
}

// LoginRequest credenciais de login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UserResponse usuário sem campos sensíveis.
type UserResponse struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Email           string   `json:"email"`
	Role            string   `json:"role"`
	SchoolID        string   `json:"school_id,omitempty"`
	AssignedSchools []string `json:"assigned_schools,omitempty"`
	GEE             string   `json:"gee,omitempty"`
	Active          bool     `json:"active"`
	AvatarURL       string   `json:"avatar_url,omitempty"`
}

// LoginResponse token e usuário autenticado.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
