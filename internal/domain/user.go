package domain

type User struct {
	ID           int64  `db:"id" json:"id"`
	Username     string `db:"username" json:"username"`
	PasswordHash string `db:"password" json:"-"`
	IsAdmin      bool   `db:"is_admin" json:"is_admin"`
}

// Owns reports whether u owns t.
func (u *User) Owns(t *Task) bool {
	return u != nil && t != nil && t.UserID == u.ID
}

// CanAccess reports whether u may read or change t: owners and admins can.
func (u *User) CanAccess(t *Task) bool {
	if u == nil || t == nil {
		return false
	}
	return u.IsAdmin || u.Owns(t)
}
