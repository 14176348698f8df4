package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role represents user roles in the system
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
	RoleUser    Role = "user"
)

// User represents a panel user in the system
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email        string             `bson:"email" json:"email"`
	PasswordHash string             `bson:"password_hash" json:"-"`
	Role         Role               `bson:"role" json:"role"`
	FirstName    string             `bson:"first_name" json:"first_name"`
	LastName     string             `bson:"last_name" json:"last_name"`
	IsActive     bool               `bson:"is_active" json:"is_active"`
	LastLogin    *time.Time         `bson:"last_login,omitempty" json:"last_login,omitempty"`
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at" json:"updated_at"`
}

// LoginRequest represents a login request
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest represents a user registration request
type RegisterRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      Role   `json:"role,omitempty"`
}

// LoginResponse represents a successful login response
type LoginResponse struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refresh_token"`
	User         User   `json:"user"`
}

// RegisterResponse carries the created user plus the approval message.
// Token is empty when the account still needs admin approval.
type RegisterResponse struct {
	Token   string `json:"token,omitempty"`
	User    User   `json:"user"`
	Message string `json:"message"`
}

// Claims represents JWT claims
type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Role   Role   `json:"role"`
	Exp    int64  `json:"exp"`
}

// IsValidRole checks if a role is valid
func IsValidRole(role Role) bool {
	switch role {
	case RoleAdmin, RoleManager, RoleUser:
		return true
	default:
		return false
	}
}

// IsPrivileged reports whether the role sees every record rather than
// only its own (sales, work orders, customers).
func (r Role) IsPrivileged() bool {
	return r == RoleAdmin || r == RoleManager
}

// ActiveOnRegistration reports whether an account with this role is
// usable immediately. Plain users wait for admin approval.
func (r Role) ActiveOnRegistration() bool {
	return r == RoleAdmin || r == RoleManager
}

// HasPermission checks if a user has permission for a specific action
func (u *User) HasPermission(action string) bool {
	switch u.Role {
	case RoleAdmin:
		return true
	case RoleManager:
		return action != "delete_user" && action != "manage_users" &&
			action != "delete_vehicle" && action != "delete_customer"
	case RoleUser:
		switch action {
		case "view_customers", "view_vehicles", "view_sales",
			"create_customer", "create_vehicle", "create_sale",
			"create_work_order", "update_work_order", "view_work_orders":
			return true
		default:
			return false
		}
	default:
		return false
	}
}
