package auth

import (
	"strings"

	"github.com/hdops/turnos-admin/internal/model"
)

// Permission binds a navigable view to the profiles allowed to open it.
type Permission struct {
	Route           string
	AllowedProfiles []string
}

// permissions is the authorization table for every navigable screen and
// gated action. Entries ending in "/" match by prefix to cover
// parameterised routes such as "/agents/42".
var permissions = []Permission{
	{Route: "/", AllowedProfiles: []string{model.ProfileAdministrator}},

	{Route: "/agents", AllowedProfiles: []string{model.ProfileAdministrator}},
	{Route: "/agents/", AllowedProfiles: []string{model.ProfileAdministrator}},
	{Route: "/teams", AllowedProfiles: []string{model.ProfileAdministrator}},
	{Route: "/notifications", AllowedProfiles: []string{model.ProfileAdministrator}},

	{Route: "/turnos", AllowedProfiles: []string{model.ProfileAdministrator}},
	{Route: "/salario", AllowedProfiles: []string{model.ProfileAdministrator}},
	{Route: "/export", AllowedProfiles: []string{model.ProfileAdministrator}},

	{Route: "/ponto", AllowedProfiles: []string{model.ProfileAgent, model.ProfileAdministrator}},
}

// CanAccess reports whether the given user may open the route.
func CanAccess(user *model.User, route string) bool {
	if user == nil {
		return false
	}
	perm := findPermission(route)
	if perm == nil {
		return false
	}
	for _, p := range perm.AllowedProfiles {
		if p == user.Profile.Name {
			return true
		}
	}
	return false
}

// AccessibleRoutes lists every route the user may open.
func AccessibleRoutes(user *model.User) []string {
	if user == nil {
		return nil
	}
	var routes []string
	for _, perm := range permissions {
		for _, p := range perm.AllowedProfiles {
			if p == user.Profile.Name {
				routes = append(routes, perm.Route)
				break
			}
		}
	}
	return routes
}

func findPermission(route string) *Permission {
	for i := range permissions {
		if permissions[i].Route == route {
			return &permissions[i]
		}
	}
	// Parameterised routes match by prefix.
	for i := range permissions {
		if strings.HasSuffix(permissions[i].Route, "/") &&
			strings.HasPrefix(route, permissions[i].Route) {
			return &permissions[i]
		}
	}
	return nil
}
