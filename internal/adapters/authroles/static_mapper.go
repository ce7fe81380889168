// Package authroles maps identity provider groups onto application roles.
package authroles

import (
	domainauth "github.com/linkpilot/linkpilot-api/internal/domain/auth"
)

// StaticRoleMapper maps groups by simple string membership rules.
// Members of AdminGroup get admin, members of SEOGroup get seo, and
// everyone else falls back to the writer role.
type StaticRoleMapper struct {
	AdminGroup string
	SEOGroup   string
}

func (m StaticRoleMapper) Map(groups []string) domainauth.Role {
	for _, g := range groups {
		if m.AdminGroup != "" && g == m.AdminGroup {
			return domainauth.RoleAdmin
		}
	}
	for _, g := range groups {
		if m.SEOGroup != "" && g == m.SEOGroup {
			return domainauth.RoleSEO
		}
	}
	return domainauth.RoleWriter
}
