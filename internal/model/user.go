package model

// Profile names recognised by the backend authorization layer.
const (
	ProfileAdministrator = "ADMINISTRATOR"
	ProfileAgent         = "AGENT"
)

// Profile is the authorization profile embedded in the session token.
type Profile struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Status string `json:"status"`
}

// User is the read-only projection decoded from the session token. It is
// never persisted on its own; it is recomputed whenever the token changes.
type User struct {
	ID      int     `json:"id"`
	Name    string  `json:"name"`
	Email   string  `json:"email"`
	Profile Profile `json:"profile"`
}

// IsAdministrator reports whether the user holds the ADMINISTRATOR profile.
func (u *User) IsAdministrator() bool {
	return u != nil && u.Profile.Name == ProfileAdministrator
}
