// Package models defines the user record persisted by the directory and
// the partial form used by PATCH requests.
package models

import "github.com/dmitrijs2005/userdirectory/internal/timex"

// User is the sole managed entity. ID is zero until storage assigns one.
// Address and Tel are optional and nil when unset.
type User struct {
	ID        int64      `json:"id"`
	Mail      string     `json:"mail"`
	FirstName string     `json:"firstName"`
	LastName  string     `json:"lastName"`
	BirthDate timex.Date `json:"birthDate"`
	Address   *string    `json:"address"`
	Tel       *string    `json:"tel"`
}

// HasID reports whether storage already assigned an identity.
func (u *User) HasID() bool {
	return u.ID != 0
}

// Clone returns a deep copy so callers never share the optional fields.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	c := *u
	c.Address = cloneString(u.Address)
	c.Tel = cloneString(u.Tel)
	return &c
}

// UserPatch carries any subset of the user fields. A nil field means
// "keep the stored value". The id is never taken from a patch.
type UserPatch struct {
	Mail      *string     `json:"mail"`
	FirstName *string     `json:"firstName"`
	LastName  *string     `json:"lastName"`
	BirthDate *timex.Date `json:"birthDate"`
	Address   *string     `json:"address"`
	Tel       *string     `json:"tel"`
}

// Merge builds the candidate for a PATCH: every field comes from p when
// present and from current otherwise; the id always comes from current.
func Merge(current *User, p *UserPatch) *User {
	merged := current.Clone()
	if p == nil {
		return merged
	}

	if p.Mail != nil {
		merged.Mail = *p.Mail
	}
	if p.FirstName != nil {
		merged.FirstName = *p.FirstName
	}
	if p.LastName != nil {
		merged.LastName = *p.LastName
	}
	if p.BirthDate != nil && !p.BirthDate.IsZero() {
		merged.BirthDate = *p.BirthDate
	}
	if p.Address != nil {
		merged.Address = cloneString(p.Address)
	}
	if p.Tel != nil {
		merged.Tel = cloneString(p.Tel)
	}

	return merged
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
