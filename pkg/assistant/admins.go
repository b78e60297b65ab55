package assistant

import "strings"

// Admin is an entry in the store's admin directory.
type Admin struct {
	Name     string
	Keywords []string
}

// AdminDirectory resolves "notify ..." targets. When no name keyword
// matches, the secondary admin is the deterministic default.
type AdminDirectory struct {
	Primary   Admin
	Secondary Admin
}

// DefaultAdminDirectory returns the store's admin contacts.
func DefaultAdminDirectory() AdminDirectory {
	return AdminDirectory{
		Primary:   Admin{Name: "Karim", Keywords: []string{"karim", "كريم"}},
		Secondary: Admin{Name: "Walid", Keywords: []string{"walid", "وليد"}},
	}
}

// Resolve picks the admin addressed by the message, falling back to the
// secondary admin when neither name is mentioned.
func (d AdminDirectory) Resolve(message string) Admin {
	lower := strings.ToLower(message)
	for _, kw := range d.Primary.Keywords {
		if strings.Contains(lower, kw) {
			return d.Primary
		}
	}
	for _, kw := range d.Secondary.Keywords {
		if strings.Contains(lower, kw) {
			return d.Secondary
		}
	}
	return d.Secondary
}
