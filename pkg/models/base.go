package models

// ModelFields are the bookkeeping columns every backend record carries.
type ModelFields struct {
	ID        int64   `json:"id"`
	CreatedAt string  `json:"createdAt,omitempty"`
	UpdatedAt string  `json:"updatedAt,omitempty"`
	DeletedAt *string `json:"deletedAt,omitempty"`
}

// PrimaryKey returns the record id. Stores index their collections by it.
func (m ModelFields) PrimaryKey() int64 {
	return m.ID
}

// PageMeta describes the page a paginated list endpoint returned.
type PageMeta struct {
	Total   int `json:"total"`
	Current int `json:"current"`
	Size    int `json:"size"`
}

// Paginated is the {items, page} envelope used by list endpoints that paginate.
type Paginated[T any] struct {
	Items []T      `json:"items"`
	Page  PageMeta `json:"page"`
}

// Deleted is the payload of every DELETE endpoint.
type Deleted struct {
	Deleted bool `json:"deleted"`
}

// IDPayload is the body DELETE endpoints expect.
type IDPayload struct {
	ID int64 `json:"id"`
}
