package domain

// Customer represents a person who can book trips.
// Customers are immutable once created: no update or delete operation is
// defined anywhere in the system.
type Customer struct {
	ID    int64   `json:"id"`
	Name  string  `json:"name"`
	Email string  `json:"email"`           // globally unique
	Phone *string `json:"phone,omitempty"` // nil when not provided; unique when present
}
