// admin.go - Admin user management handlers

package handlers

import (
	"net/http"
	"strconv"

	"go-tree-catalog/apperrors"
	"go-tree-catalog/middleware"

	"github.com/gin-gonic/gin"
)

// ListUsers returns every account with its owned-tree count, newest first.
func (h *Handler) ListUsers(c *gin.Context) {
	ctx, cancel := h.storageCtx()
	defer cancel()

	users, err := h.users.ListWithTreeCounts(ctx)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "users": users})
}

// DeleteUser removes an account. The acting admin cannot target themselves;
// trees owned by the account stay in the catalog as unowned. Any live
// sessions of the deleted account are destroyed.
func (h *Handler) DeleteUser(c *gin.Context) {
	identity, _ := middleware.Identity(c)

	targetID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		h.fail(c, apperrors.ErrNotFound)
		return
	}

	ctx, cancel := h.storageCtx()
	defer cancel()

	if err := h.users.Delete(ctx, identity, uint(targetID)); err != nil {
		h.fail(c, err)
		return
	}
	h.sessions.DestroyAllForUser(uint(targetID))

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "user deleted"})
}
