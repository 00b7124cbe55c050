// admin_test.go - Tests for the admin user management endpoints

package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"go-tree-catalog/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListUsersRequiresAdmin(t *testing.T) {
	env := newTestEnv(t)
	alice := env.registerUser(t, "alice", "a@x.com", "secret1")

	w := env.doJSON(t, http.MethodGet, "/api/admin/users", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = env.doJSON(t, http.MethodGet, "/api/admin/users", nil, alice)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestListUsersWithTreeCounts(t *testing.T) {
	env := newTestEnv(t)
	alice := env.registerUser(t, "alice", "a@x.com", "secret1")
	env.registerUser(t, "bob", "b@x.com", "secret2")
	env.createTree(t, alice, "Oak")
	env.createTree(t, alice, "Birch")
	admin := env.createAdmin(t, "root", "root@x.com", "adminpass")

	w := env.doJSON(t, http.MethodGet, "/api/admin/users", nil, admin)
	require.Equal(t, http.StatusOK, w.Code)
	users := decode(t, w)["users"].([]any)
	require.Len(t, users, 3)

	counts := map[string]float64{}
	for _, u := range users {
		row := u.(map[string]any)
		counts[row["username"].(string)] = row["trees_count"].(float64)
		// No password in any admin row.
		_, leaked := row["password"]
		assert.False(t, leaked)
	}
	assert.Equal(t, float64(2), counts["alice"])
	assert.Equal(t, float64(0), counts["bob"], "users with no trees still appear")
	assert.Equal(t, float64(0), counts["root"])
}

func TestDeleteUserOrphansTheirTrees(t *testing.T) {
	env := newTestEnv(t)
	alice := env.registerUser(t, "alice", "a@x.com", "secret1")
	treeID := env.createTree(t, alice, "Oak")
	admin := env.createAdmin(t, "root", "root@x.com", "adminpass")

	var aliceRow models.User
	require.NoError(t, env.db.Where("username = ?", "alice").First(&aliceRow).Error)

	w := env.doJSON(t, http.MethodDelete, fmt.Sprintf("/api/admin/users/%d", aliceRow.ID), nil, admin)
	require.Equal(t, http.StatusOK, w.Code)

	// Alice's session is gone.
	w = env.doJSON(t, http.MethodGet, "/api/auth/check", nil, alice)
	assert.Equal(t, false, decode(t, w)["loggedIn"])

	// Her tree survives as unowned.
	w = env.doJSON(t, http.MethodGet, fmt.Sprintf("/api/trees/%d", treeID), nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	tree := decode(t, w)["tree"].(map[string]any)
	assert.Nil(t, tree["created_by"])
	assert.Nil(t, tree["creator_name"])
}

func TestDeleteUserRequiresAdmin(t *testing.T) {
	env := newTestEnv(t)
	env.registerUser(t, "alice", "a@x.com", "secret1")
	bob := env.registerUser(t, "bob", "b@x.com", "secret2")

	var aliceRow models.User
	require.NoError(t, env.db.Where("username = ?", "alice").First(&aliceRow).Error)

	w := env.doJSON(t, http.MethodDelete, fmt.Sprintf("/api/admin/users/%d", aliceRow.ID), nil, bob)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAdminCannotDeleteSelf(t *testing.T) {
	env := newTestEnv(t)
	admin := env.createAdmin(t, "root", "root@x.com", "adminpass")

	var adminRow models.User
	require.NoError(t, env.db.Where("username = ?", "root").First(&adminRow).Error)

	w := env.doJSON(t, http.MethodDelete, fmt.Sprintf("/api/admin/users/%d", adminRow.ID), nil, admin)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var count int64
	env.db.Model(&models.User{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestDeleteUnknownUser(t *testing.T) {
	env := newTestEnv(t)
	admin := env.createAdmin(t, "root", "root@x.com", "adminpass")

	w := env.doJSON(t, http.MethodDelete, "/api/admin/users/9999", nil, admin)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
