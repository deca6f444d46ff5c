package project

import "context"

type Repository interface {
	// GetByProjectID returns the project regardless of its active flag;
	// settlement must proceed even for projects deactivated after funding.
	GetByProjectID(ctx context.Context, projectID string) (*Project, error)
}
