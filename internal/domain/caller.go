package domain

// Caller identity of the request author, supplied by the auth middleware and trusted as is
type Caller struct {
	UserID  int64
	IsAdmin bool
}

// IsPrivileged reports whether the caller has the administrative capability
func (c Caller) IsPrivileged() bool {
	return c.IsAdmin
}

// CanManage reports whether the caller may act on a resource owned by ownerID
func (c Caller) CanManage(ownerID int64) bool {
	return c.IsAdmin || (c.UserID > 0 && c.UserID == ownerID)
}
