package httpdto

// RegisterSucceeded is the message constant returned on successful
// registration.
const RegisterSucceeded = "REGISTER_SUCCEEDED"

// RegisterRequest is used for POST /register
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterResponse is returned after successful registration
type RegisterResponse struct {
	Message string `json:"message"`
}

// LoginRequest is used for POST /login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is returned after successful login
type LoginResponse struct {
	Token string `json:"token"`
}
