package auth

import "strings"

// AllowList is the fixed set of admin emails. It is built once from
// configuration and never mutated.
type AllowList struct {
	emails map[string]struct{}
}

// NewAllowList normalizes emails to trimmed lowercase and drops blanks.
func NewAllowList(emails []string) AllowList {
	set := make(map[string]struct{}, len(emails))
	for _, e := range emails {
		if e = normalizeEmail(e); e != "" {
			set[e] = struct{}{}
		}
	}
	return AllowList{emails: set}
}

// ParseAllowList splits a comma-separated setting such as ADMIN_EMAILS.
func ParseAllowList(value string) AllowList {
	return NewAllowList(strings.Split(value, ","))
}

func (a AllowList) Contains(email string) bool {
	_, ok := a.emails[normalizeEmail(email)]
	return ok
}

func (a AllowList) Len() int {
	return len(a.emails)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
