// tree.go - Defines the Tree model for the database

package models

import "time"

// Tree is a catalog entry. All descriptive fields are required non-empty;
// Image holds either a URL or a data-URI payload. CreatedBy is nullable so
// that deleting the owning user can orphan the tree instead of removing it.
type Tree struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	Name           string    `json:"name" gorm:"not null"`
	ScientificName string    `json:"scientific_name" gorm:"not null"`
	Description    string    `json:"description" gorm:"not null"`
	Habitat        string    `json:"habitat" gorm:"not null"`
	Image          string    `json:"image" gorm:"not null"`
	Facts          FactMap   `json:"facts" gorm:"type:text"`
	CreatedBy      *uint     `json:"created_by" gorm:"index"`
	Creator        *User     `json:"-" gorm:"foreignKey:CreatedBy;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;"`
	CreatedAt      time.Time `json:"created_at"`
}

// HasRequiredFields reports whether every mandatory field is non-empty.
func (t *Tree) HasRequiredFields() bool {
	return t.Name != "" && t.ScientificName != "" && t.Description != "" &&
		t.Habitat != "" && t.Image != ""
}
