package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin    = "admin"
	RoleVendedor = "vendedor"
)

// User usuario del panel. SalespersonID vincula al vendedor cuando el rol es vendedor.
type User struct {
	ID            string    `db:"id"`
	Username      string    `db:"username"`
	PasswordHash  string    `db:"password_hash"` // bcrypt
	Role          string    `db:"role"`
	SalespersonID *string   `db:"salesperson_id"`
	CreatedAt     time.Time `db:"created_at"`
}
