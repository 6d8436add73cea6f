package models

// Admin is an operator account.
type Admin struct {
	ModelFields
	Username     string `json:"username"`
	PasswordHash string `json:"passwordHash,omitempty"`
}

// AdminQuery holds the query parameters of GET /admin. Zero values are not sent.
type AdminQuery struct {
	PageNum  int
	PageSize int
	ID       int64
	Username string
}

// AdminCreatePayload is the body for POST /admin
type AdminCreatePayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AdminUpdatePayload is the body for PUT /admin. Nil fields are left untouched.
type AdminUpdatePayload struct {
	ID       int64   `json:"id"`
	Username *string `json:"username,omitempty"`
	Password *string `json:"password,omitempty"`
}
