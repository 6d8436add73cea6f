package models

// LoginPayload is the body for POST /auth/login
type LoginPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResult carries the bearer token issued to an operator.
type LoginResult struct {
	AccessToken string `json:"accessToken"`
	ExpiresAt   string `json:"expiresAt"`
}

// PublicTokenPayload is the body for POST /auth/public
type PublicTokenPayload struct {
	Ismartid string `json:"ismartid"`
	IsStaff  bool   `json:"is_staff"`
}

// PublicToken is a delegated token plus the devices it grants access to.
type PublicToken struct {
	Token     string          `json:"token"`
	Orangepis []TokenOrangepi `json:"orangepis"`
}

type TokenOrangepi struct {
	OrangepiID   int64    `json:"orangepi_id"`
	OrangepiName string   `json:"orangepi_name"`
	URLs         []string `json:"urls"`
}
