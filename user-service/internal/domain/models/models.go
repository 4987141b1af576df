package models

type User struct {
	UID                   string `json:"uuid,omitempty"`
	Email                 string `json:"email" validate:"required,email"`
	Pass                  string `json:"pass,omitempty" validate:"required,min=8"`
	Name                  string `json:"name"`
	LastName              string `json:"lastname"`
	Phone                 string `json:"phone"`
	Role                  string `json:"role"`
	RequirePasswordChange bool   `json:"require_password_change,omitempty"`
}
