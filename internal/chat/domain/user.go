package domain

// Role workforce role carried in the identity token
type Role string

const (
	// RoleAdmin full administrative access
	RoleAdmin Role = "admin"
	// RoleManager department manager
	RoleManager Role = "manager"
	// RoleEmployee regular employee
	RoleEmployee Role = "employee"
)

// User a read-only directory entry. Account management lives outside this
// service; the chat core only resolves destinations, rosters and display
// names from it.
type User struct {
	ID         string `bson:"_id" json:"id"`
	Firstname  string `bson:"firstname" json:"firstname"`
	Lastname   string `bson:"lastname" json:"lastname"`
	Email      string `bson:"email" json:"email"`
	Role       Role   `bson:"role" json:"role"`
	Department string `bson:"department,omitempty" json:"department,omitempty"`
	Active     bool   `bson:"active" json:"active"`
}

// FullName display name used when enriching conversation summaries.
func (u *User) FullName() string {
	return u.Firstname + " " + u.Lastname
}
