// user.go - Profile and avatar upload handlers

package handlers

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"go-tree-catalog/middleware"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

var allowedAvatarExts = map[string]bool{
	".jpeg": true,
	".jpg":  true,
	".png":  true,
	".gif":  true,
}

var allowedAvatarMimes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/gif":  true,
}

// Profile returns the acting user's record from the users table, not the
// session snapshot.
func (h *Handler) Profile(c *gin.Context) {
	identity, _ := middleware.Identity(c)

	ctx, cancel := h.storageCtx()
	defer cancel()

	user, err := h.users.GetByID(ctx, identity.UserID)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "user": user})
}

// UploadAvatar accepts a multipart image, stores it under the upload
// directory and updates both the users table and every live session of the
// acting user.
func (h *Handler) UploadAvatar(c *gin.Context) {
	identity, _ := middleware.Identity(c)

	fh, err := c.FormFile("avatar")
	if err != nil {
		badRequest(c, "no file uploaded")
		return
	}
	if fh.Size > h.cfg.MaxAvatarBytes {
		badRequest(c, fmt.Sprintf("file exceeds the %d byte limit", h.cfg.MaxAvatarBytes))
		return
	}

	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if !allowedAvatarExts[ext] || !allowedAvatarMimes[fh.Header.Get("Content-Type")] {
		badRequest(c, "only jpeg, jpg, png and gif images are allowed")
		return
	}

	dir := filepath.Join(h.cfg.UploadDir, "avatars")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		h.fail(c, err)
		return
	}

	// Unique name per upload so a new avatar never overwrites the old path.
	name := fmt.Sprintf("%d-%s%s", identity.UserID, uuid.NewString(), ext)
	if err := c.SaveUploadedFile(fh, filepath.Join(dir, name)); err != nil {
		h.fail(c, err)
		return
	}

	avatarPath := "/uploads/avatars/" + name

	ctx, cancel := h.storageCtx()
	defer cancel()

	if err := h.users.UpdateAvatar(ctx, identity.UserID, avatarPath); err != nil {
		h.fail(c, err)
		return
	}
	h.sessions.UpdateAvatar(identity.UserID, &avatarPath)

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "avatar updated", "avatar": avatarPath})
}
