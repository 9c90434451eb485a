package auth

import "github.com/zkcargopass/cargopass/pkg/rbac"

const (
	ScopeAuthAdmin = "auth:admin"
	ScopeAuthLogIn = "auth:log-in"
	ScopeAPILogin  = "api:login"

	ScopeCustomCreate    = "custom:create"
	ScopeCustomReadSelf  = "custom:read:self"
	ScopeCustomReadAll   = "custom:read:all"
	ScopeCustomWriteSelf = "custom:write:self"
	ScopeCustomWriteAll  = "custom:write:all"
	ScopeCustomDelete    = "custom:delete"

	ScopeImporterCreate    = "importer:create"
	ScopeImporterReadSelf  = "importer:read:self"
	ScopeImporterReadAll   = "importer:read:all"
	ScopeImporterWriteSelf = "importer:write:self"
	ScopeImporterWriteAll  = "importer:write:all"
	ScopeImporterDelete    = "importer:delete"
)

const (
	RoleUser     = "USER"
	RoleCustom   = "CUSTOM"
	RoleImporter = "IMPORTER"
	RoleAdmin    = "ADMIN"
)

// Vocabulary is the closed set of scopes a role may grant.
var Vocabulary = []string{
	ScopeAuthAdmin, ScopeAuthLogIn, ScopeAPILogin,
	ScopeCustomCreate, ScopeCustomReadSelf, ScopeCustomReadAll,
	ScopeCustomWriteSelf, ScopeCustomWriteAll, ScopeCustomDelete,
	ScopeImporterCreate, ScopeImporterReadSelf, ScopeImporterReadAll,
	ScopeImporterWriteSelf, ScopeImporterWriteAll, ScopeImporterDelete,
}

// DefaultRoles returns the role definitions. ADMIN is a superset of CUSTOM
// and IMPORTER, and both of those are supersets of USER.
func DefaultRoles() map[string]rbac.Role {
	return map[string]rbac.Role{
		RoleUser: {
			Scopes: []string{ScopeAuthLogIn, ScopeAPILogin},
		},
		RoleCustom: {
			Scopes: []string{
				ScopeCustomCreate, ScopeCustomReadSelf, ScopeCustomReadAll,
				ScopeCustomWriteSelf, ScopeCustomWriteAll, ScopeCustomDelete,
			},
			Inherits: []string{RoleUser},
		},
		RoleImporter: {
			Scopes: []string{
				ScopeImporterCreate, ScopeImporterReadSelf, ScopeImporterReadAll,
				ScopeImporterWriteSelf, ScopeImporterWriteAll, ScopeImporterDelete,
			},
			Inherits: []string{RoleUser},
		},
		RoleAdmin: {
			Scopes:   []string{ScopeAuthAdmin},
			Inherits: []string{RoleCustom, RoleImporter},
		},
	}
}

// NewRoleTable builds the immutable table from DefaultRoles.
func NewRoleTable() (*rbac.Table, error) {
	return rbac.NewTable(DefaultRoles(), rbac.WithVocabulary(Vocabulary))
}
