package entity

type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleAdmin UserRole = "admin"
)

type User struct {
	Base
	Email        string   `db:"email"`
	PasswordHash string   `db:"password"`
	Name         string   `db:"name"`
	Role         UserRole `db:"role"`
}
