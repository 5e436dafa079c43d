package identity

import "time"

type Role string

const (
	RoleCustomer Role = "customer"
	RoleManager  Role = "manager"
	RoleAdmin    Role = "admin"
)

// Profile is a storefront account row. Staff roles live in the managers
// table, not here; everyone defaults to customer.
type Profile struct {
	ID        uint
	Email     string
	Password  string
	FullName  string
	CreatedAt time.Time
}

// Manager grants a staff role scoped to one branch. Admins have an
// empty branch and see everything.
type Manager struct {
	Email  string
	Branch string
	Role   Role
}

// User is the resolved identity handed to handlers after token
// verification.
type User struct {
	ID     uint   `json:"id"`
	Email  string `json:"email"`
	Name   string `json:"name,omitempty"`
	Role   Role   `json:"role"`
	Branch string `json:"branch,omitempty"`
}
