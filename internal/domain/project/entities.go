package project

import (
	"errors"
	"time"
)

var ErrNotFound = errors.New("project not found")

// Project is read-only to this service; creation and the percent
// configuration are owned by the project management surface.
type Project struct {
	ID             uint64    `gorm:"primaryKey;column:id" json:"-"`
	ProjectID      string    `gorm:"size:32;uniqueIndex:ux_projects_project_id" json:"project_id"`
	Name           string    `gorm:"size:200" json:"name"`
	CreatorID      string    `gorm:"size:32;index" json:"creator_id"`
	CreatorPercent float64   `gorm:"type:decimal(6,2)" json:"creator_percent"`
	BucketPercent  float64   `gorm:"type:decimal(6,2)" json:"bucket_percent"`
	IsActive       bool      `gorm:"default:true" json:"is_active"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Project) TableName() string { return "projects" }
