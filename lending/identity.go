package lending

// Caller roles.
const (
	RoleAdmin    = "admin"
	RoleBorrower = "borrower"
)

// Identity is the authenticated caller, passed explicitly into every
// operation. There is no ambient session state below the HTTP layer.
type Identity struct {
	ID   string
	Role string
}

func (id Identity) IsAdmin() bool { return id.Role == RoleAdmin }
