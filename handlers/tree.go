// tree.go - Catalog CRUD handlers

package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"go-tree-catalog/apperrors"
	"go-tree-catalog/middleware"
	"go-tree-catalog/models"
	"go-tree-catalog/store"

	"github.com/gin-gonic/gin"
)

// TreeInput is the body of POST /api/trees and PUT /api/trees/:id. Facts is
// kept raw so a malformed value can be tolerated instead of failing the bind.
type TreeInput struct {
	Name           string          `json:"name" binding:"required"`
	ScientificName string          `json:"scientificName" binding:"required"`
	Description    string          `json:"description" binding:"required"`
	Habitat        string          `json:"habitat" binding:"required"`
	Image          string          `json:"image" binding:"required"`
	Facts          json.RawMessage `json:"facts"`
}

func (in *TreeInput) fields() store.TreeFields {
	// A facts value that is absent, null or not a string-to-string object is
	// treated as an empty map, never as a validation failure.
	facts := models.FactMap{}
	if len(in.Facts) > 0 {
		var m models.FactMap
		if err := json.Unmarshal(in.Facts, &m); err == nil && m != nil {
			facts = m
		}
	}
	return store.TreeFields{
		Name:           in.Name,
		ScientificName: in.ScientificName,
		Description:    in.Description,
		Habitat:        in.Habitat,
		Image:          in.Image,
		Facts:          facts,
	}
}

// treeID parses the :id path parameter. A non-numeric id addresses nothing,
// so it maps to 404.
func treeID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, apperrors.ErrNotFound
	}
	return uint(id), nil
}

// ListTrees returns every tree, newest first. Public.
func (h *Handler) ListTrees(c *gin.Context) {
	ctx, cancel := h.storageCtx()
	defer cancel()

	trees, err := h.trees.List(ctx)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "trees": trees})
}

// GetTree returns a single tree. Public.
func (h *Handler) GetTree(c *gin.Context) {
	id, err := treeID(c)
	if err != nil {
		h.fail(c, err)
		return
	}

	ctx, cancel := h.storageCtx()
	defer cancel()

	tree, err := h.trees.GetByID(ctx, id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "tree": tree})
}

// CreateTree inserts a tree owned by the acting user.
func (h *Handler) CreateTree(c *gin.Context) {
	identity, _ := middleware.Identity(c)

	var input TreeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, "name, scientificName, description, habitat and image are required")
		return
	}

	ctx, cancel := h.storageCtx()
	defer cancel()

	id, err := h.trees.Create(ctx, identity.UserID, input.fields())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "tree added", "id": id})
}

// UpdateTree overwrites a tree's mutable fields, owner or admin only.
func (h *Handler) UpdateTree(c *gin.Context) {
	identity, _ := middleware.Identity(c)

	id, err := treeID(c)
	if err != nil {
		h.fail(c, err)
		return
	}

	var input TreeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, "name, scientificName, description, habitat and image are required")
		return
	}

	ctx, cancel := h.storageCtx()
	defer cancel()

	if err := h.trees.Update(ctx, id, identity, input.fields()); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// DeleteTree removes a tree, owner or admin only.
func (h *Handler) DeleteTree(c *gin.Context) {
	identity, _ := middleware.Identity(c)

	id, err := treeID(c)
	if err != nil {
		h.fail(c, err)
		return
	}

	ctx, cancel := h.storageCtx()
	defer cancel()

	if err := h.trees.Delete(ctx, id, identity); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "tree deleted"})
}
