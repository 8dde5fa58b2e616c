package models

import "time"

// Parent is the aggregate root. Every child, quiz, quest, and gift is an
// embedded value owned by the parent document; mutations load the whole
// parent, change it in memory, and save it back in one write.
type Parent struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	PhoneNumber  string    `json:"phoneNumber,omitempty"`
	Children     []Child   `json:"children"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// FindChild returns a pointer into the parent's children slice, or nil if
// no child has the given ID.
func (p *Parent) FindChild(childID string) *Child {
	for i := range p.Children {
		if p.Children[i].ID == childID {
			return &p.Children[i]
		}
	}
	return nil
}
