package http

type FieldViolation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ErrorResponse struct {
	Code    string           `json:"code"`
	Message string           `json:"message"`
	Data    []FieldViolation `json:"data,omitempty"`
}

type SignupRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

type SignupResponse struct {
	Status string `json:"status"`
	Data   struct {
		UserID string `json:"user_id"`
		Email  string `json:"email"`
		Name   string `json:"name"`
	} `json:"data"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Status string `json:"status"`
	Data   struct {
		Token  string `json:"token"`
		UserID string `json:"userId"`
	} `json:"data"`
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

type StatusResponse struct {
	Status string `json:"status"`
	Data   struct {
		UserStatus string `json:"user_status"`
	} `json:"data"`
}
