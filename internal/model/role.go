package model

import "fmt"

// Role identifies which kind of profile owns a user's resources.  The role
// is fixed at registration: every account maps to exactly one profile row in
// the table belonging to its role.  Authorization and ownership checks key
// off the profile id, never the account id.
type Role string

const (
	RoleGym       Role = "gym"
	RoleTrainer   Role = "trainer"
	RoleGymSeeker Role = "gym_seeker"
)

// ParseRole validates a raw role string at the boundary.  Downstream code
// works with the typed Role and never re-inspects string shape.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleGym, RoleTrainer, RoleGymSeeker:
		return Role(s), nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

func (r Role) String() string { return string(r) }
