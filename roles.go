package shippin

// Role identifies the actor kind a session belongs to. The backend exposes a
// separate endpoint set per role; everything else in the client is written
// once and dispatches through EndpointsFor.
type Role string

const (
	RoleSeller  Role = "seller"
	RolePartner Role = "partner"
)

// IsValid checks if the role is one of the predefined valid roles
func (r Role) IsValid() bool {
	switch r {
	case RoleSeller, RolePartner:
		return true
	default:
		return false
	}
}

func (r Role) String() string {
	return string(r)
}

// ParseRole safely parses a string into a Role type
func ParseRole(s string) (Role, bool) {
	role := Role(s)
	return role, role.IsValid()
}

// AllRoles returns every registered role
func AllRoles() []Role {
	return []Role{
		RoleSeller,
		RolePartner,
	}
}

// RoleEndpoints is the immutable backend operation set for one role.
// LoginRoute is the client-side view the role's flows redirect to.
type RoleEndpoints struct {
	Login          string
	Signup         string
	ForgotPassword string
	Profile        string
	Shipments      string
	Logout         string
	LoginRoute     string
}

var roleEndpoints = map[Role]RoleEndpoints{
	RoleSeller: {
		Login:          "/seller/login",
		Signup:         "/seller/signup",
		ForgotPassword: "/seller/forgot_password",
		Profile:        "/seller/me",
		Shipments:      "/seller/shipments",
		Logout:         "/seller/logout",
		LoginRoute:     "/seller/login",
	},
	RolePartner: {
		Login:          "/partner/login",
		Signup:         "/partner/signup",
		ForgotPassword: "/partner/forgot_password",
		Profile:        "/partner/me",
		Shipments:      "/partner/shipments",
		Logout:         "/partner/logout",
		LoginRoute:     "/partner/login",
	},
}

// EndpointsFor resolves the backend operation set for a role. Every role that
// survives ParseRole has a fully populated record; there is no missing-role
// case.
func EndpointsFor(role Role) RoleEndpoints {
	return roleEndpoints[role]
}
