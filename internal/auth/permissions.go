package auth

// Scope names. A scope is granted when the user's role holds an active
// permission of the same name.
const (
	// ScopeUsers allows listing and managing users, roles and permissions.
	ScopeUsers = "users"
	// ScopeMe allows reading the caller's own profile.
	ScopeMe = "me"
	// ScopeItems allows reading items.
	ScopeItems = "items"
	// ScopeGroups allows listing and managing groups.
	ScopeGroups = "groups"
)

// Scopes lists every scope with its description, in seeding order.
var Scopes = []struct {
	Name        string
	Description string
}{
	{ScopeUsers, "Read users."},
	{ScopeMe, "Read information about the current user."},
	{ScopeItems, "Read items."},
	{ScopeGroups, "Read groups."},
}
