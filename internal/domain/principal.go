package domain

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Principal is the authenticated identity of the signed-in actor.
type Principal struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
	Role  Role   `json:"role"`
}

func (p Principal) Valid() bool {
	return p.Email != "" && (p.Role == RoleUser || p.Role == RoleAdmin)
}
