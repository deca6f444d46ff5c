package mysql

import (
	"context"

	"gorm.io/gorm"

	projectDomain "github.com/Parthsuii/fintech/internal/domain/project"
)

type ProjectRepository struct{ db *gorm.DB }

func NewProjectRepository(db *gorm.DB) *ProjectRepository { return &ProjectRepository{db: db} }

func (r *ProjectRepository) GetByProjectID(ctx context.Context, projectID string) (*projectDomain.Project, error) {
	var out projectDomain.Project
	res := r.db.WithContext(ctx).Where("project_id = ?", projectID).First(&out)
	return &out, translate(res.Error)
}
