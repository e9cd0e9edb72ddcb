package auth

import "time"

// SignupRequest запрос на регистрацию
type SignupRequest struct {
	Email     string  `json:"email"`
	Password  string  `json:"password"`
	FirstName *string `json:"fname,omitempty"`
	LastName  *string `json:"lname,omitempty"`
	Phone     *string `json:"phone,omitempty"`
}

// SignupResponse ответ на регистрацию
type SignupResponse struct {
	Message string `json:"message"`
	UserID  int64  `json:"userId"`
}

// LoginRequest запрос на вход
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse токен доступа
type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	UserID    int64     `json:"userId"`
	Role      string    `json:"role"`
}
