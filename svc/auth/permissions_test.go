package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zkcargopass/cargopass/pkg/scopes"
	"github.com/zkcargopass/cargopass/svc/auth"
)

func TestNewRoleTable(t *testing.T) {
	t.Parallel()

	table, err := auth.NewRoleTable()
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{auth.RoleUser, auth.RoleCustom, auth.RoleImporter, auth.RoleAdmin}, table.Roles())

	user := table.ScopesFor(auth.RoleUser)
	custom := table.ScopesFor(auth.RoleCustom)
	importer := table.ScopesFor(auth.RoleImporter)
	admin := table.ScopesFor(auth.RoleAdmin)

	assert.ElementsMatch(t, []string{auth.ScopeAuthLogIn, auth.ScopeAPILogin}, user)
	assert.Subset(t, custom, user)
	assert.Subset(t, importer, user)
	assert.Subset(t, admin, custom)
	assert.Subset(t, admin, importer)
	assert.Contains(t, admin, auth.ScopeAuthAdmin)

	assert.NotContains(t, custom, auth.ScopeImporterCreate)
	assert.NotContains(t, importer, auth.ScopeCustomCreate)
	assert.NotContains(t, custom, auth.ScopeAuthAdmin)

	assert.Nil(t, table.ScopesFor("GUEST"))
}

func TestVocabulary(t *testing.T) {
	t.Parallel()

	for _, s := range auth.Vocabulary {
		assert.True(t, scopes.IsValid(s), s)
	}
	assert.Len(t, scopes.NormalizeScopes(auth.Vocabulary), len(auth.Vocabulary), "vocabulary has duplicates")

	for role, def := range auth.DefaultRoles() {
		assert.NoError(t, scopes.Validate(def.Scopes, auth.Vocabulary), role)
	}
}

func TestAccessPolicyConstructors(t *testing.T) {
	t.Parallel()

	assert.True(t, auth.Public().Public)
	assert.True(t, auth.Logout().Logout)

	login := auth.Login()
	assert.True(t, login.Login)
	assert.NotNil(t, login.RequiredScopes)
	assert.Empty(t, login.RequiredScopes)

	assert.NotNil(t, auth.Authenticated().RequiredScopes)
	assert.Nil(t, auth.AccessPolicy{}.RequiredScopes)

	in := []string{auth.ScopeCustomCreate}
	p := auth.Scopes(in...)
	in[0] = auth.ScopeAuthAdmin
	assert.Equal(t, []string{auth.ScopeCustomCreate}, p.RequiredScopes)
	assert.NotNil(t, auth.Scopes().RequiredScopes)
}
