// trees.go - Catalog store: CRUD over tree records

package store

import (
	"context"
	"fmt"
	"time"

	"go-tree-catalog/apperrors"
	"go-tree-catalog/models"
	"go-tree-catalog/policy"
	"go-tree-catalog/session"

	"gorm.io/gorm"
)

// TreeStore persists catalog entries.
type TreeStore struct {
	db *gorm.DB
}

// NewTreeStore returns a TreeStore backed by db.
func NewTreeStore(db *gorm.DB) *TreeStore {
	return &TreeStore{db: db}
}

// TreeRecord is a tree joined with its creator's username. CreatorName is
// nil when the owning account has been deleted.
type TreeRecord struct {
	ID             uint           `json:"id"`
	Name           string         `json:"name"`
	ScientificName string         `json:"scientific_name"`
	Description    string         `json:"description"`
	Habitat        string         `json:"habitat"`
	Image          string         `json:"image"`
	Facts          models.FactMap `json:"facts"`
	CreatedBy      *uint          `json:"created_by"`
	CreatorName    *string        `json:"creator_name"`
	CreatedAt      time.Time      `json:"created_at"`
}

// TreeFields is the mutable portion of a tree, as submitted by a client.
type TreeFields struct {
	Name           string
	ScientificName string
	Description    string
	Habitat        string
	Image          string
	Facts          models.FactMap
}

func (f *TreeFields) validate() error {
	if f.Name == "" || f.ScientificName == "" || f.Description == "" ||
		f.Habitat == "" || f.Image == "" {
		return fmt.Errorf("%w: name, scientific name, description, habitat and image are required",
			apperrors.ErrValidation)
	}
	return nil
}

// Create inserts a new tree owned by ownerID and returns its id. A missing
// facts map defaults to empty.
func (s *TreeStore) Create(ctx context.Context, ownerID uint, fields TreeFields) (uint, error) {
	if err := fields.validate(); err != nil {
		return 0, err
	}
	if fields.Facts == nil {
		fields.Facts = models.FactMap{}
	}

	tree := models.Tree{
		Name:           fields.Name,
		ScientificName: fields.ScientificName,
		Description:    fields.Description,
		Habitat:        fields.Habitat,
		Image:          fields.Image,
		Facts:          fields.Facts,
		CreatedBy:      &ownerID,
	}
	if err := s.db.WithContext(ctx).Create(&tree).Error; err != nil {
		return 0, wrapDBError(err)
	}
	return tree.ID, nil
}

// GetByID returns a single record with the creator's username joined in.
func (s *TreeStore) GetByID(ctx context.Context, id uint) (*TreeRecord, error) {
	var rec TreeRecord
	err := s.db.WithContext(ctx).
		Table("trees").
		Select("trees.*, users.username AS creator_name").
		Joins("LEFT JOIN users ON users.id = trees.created_by").
		Where("trees.id = ?", id).
		Take(&rec).Error
	if err != nil {
		return nil, wrapDBError(err)
	}
	return &rec, nil
}

// List returns every tree newest first, each with its creator's username.
// The ordering is stable across calls: ties on created_at break on id.
func (s *TreeStore) List(ctx context.Context) ([]TreeRecord, error) {
	var recs []TreeRecord
	err := s.db.WithContext(ctx).
		Table("trees").
		Select("trees.*, users.username AS creator_name").
		Joins("LEFT JOIN users ON users.id = trees.created_by").
		Order("trees.created_at DESC, trees.id DESC").
		Scan(&recs).Error
	if err != nil {
		return nil, wrapDBError(err)
	}
	if recs == nil {
		recs = []TreeRecord{}
	}
	return recs, nil
}

// Update overwrites all mutable fields of the tree in a single statement
// after validating the input and consulting the policy against the stored
// owner. Ownership and creation time never change on update.
func (s *TreeStore) Update(ctx context.Context, id uint, actor session.Identity, fields TreeFields) error {
	if err := fields.validate(); err != nil {
		return err
	}
	if fields.Facts == nil {
		fields.Facts = models.FactMap{}
	}

	var tree models.Tree
	if err := s.db.WithContext(ctx).First(&tree, id).Error; err != nil {
		return wrapDBError(err)
	}
	if !policy.CanModify(actor, tree.CreatedBy) {
		return apperrors.ErrForbidden
	}

	err := s.db.WithContext(ctx).Model(&models.Tree{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"name":            fields.Name,
			"scientific_name": fields.ScientificName,
			"description":     fields.Description,
			"habitat":         fields.Habitat,
			"image":           fields.Image,
			"facts":           fields.Facts,
		}).Error
	return wrapDBError(err)
}

// Delete removes the tree after consulting the policy against its owner.
func (s *TreeStore) Delete(ctx context.Context, id uint, actor session.Identity) error {
	var tree models.Tree
	if err := s.db.WithContext(ctx).First(&tree, id).Error; err != nil {
		return wrapDBError(err)
	}
	if !policy.CanModify(actor, tree.CreatedBy) {
		return apperrors.ErrForbidden
	}
	return wrapDBError(s.db.WithContext(ctx).Delete(&models.Tree{}, id).Error)
}
