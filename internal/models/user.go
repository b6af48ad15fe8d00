package models

// Role is the capability tier of a user.
type Role string

const (
	RoleClient Role = "client"
	RoleSales  Role = "sales"
	RoleStaff  Role = "staff"
)

// SellerEligible reports whether the role makes a user part of the
// round-robin seller pool.
func (r Role) SellerEligible() bool {
	return r == RoleSales || r == RoleStaff
}

// User represents a registered user of the platform.
type User struct {
	UserID       string `json:"userID" db:"user_id"`
	Email        string `json:"email" db:"email"`
	FirstName    string `json:"firstName" db:"first_name"`
	LastName     string `json:"lastName" db:"last_name"`
	PasswordHash string `json:"-" db:"password_hash"`
	Role         Role   `json:"role" db:"role"`
	IsActive     bool   `json:"isActive" db:"is_active"`
	AuditFields
}

// FullName joins first and last name for notification templates.
func (u User) FullName() string {
	if u.FirstName == "" && u.LastName == "" {
		return u.Email
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// Principal is the authenticated caller passed into operations that require
// authorization. Capabilities are checked against the typed role, never by
// probing attributes at runtime.
type Principal struct {
	UserID string
	Role   Role
}

// IsStaff reports whether the principal holds the staff capability.
func (p Principal) IsStaff() bool {
	return p.Role == RoleStaff
}
