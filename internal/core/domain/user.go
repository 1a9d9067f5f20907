package domain

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User is the pool record kept in the document store, keyed by the account UID.
type User struct {
	Role        string             `json:"role" bson:"role"`
	TotalPoints map[string]float64 `json:"totalPoints" bson:"totalPoints"`
}

// NewUser returns a fresh pool record with no points.
func NewUser(role string) *User {
	if role == "" {
		role = RoleUser
	}
	return &User{Role: role, TotalPoints: map[string]float64{}}
}

// CachedUser is the short summary rendered in page headers.
type CachedUser struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}
