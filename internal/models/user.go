package models

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User is a record in the users collection. Password holds the bcrypt hash
// and must never be serialized to clients; response types redeclare the
// fields they expose.
type User struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	Password    string `json:"password"`
	Email       string `json:"email,omitempty"`
	DisplayName string `json:"display_name"`
	Role        string `json:"role"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
