package project

import "context"

// Repository provides read access to projects.
type Repository interface {
	Get(ctx context.Context, id string) (*Project, error)
	List(ctx context.Context) ([]Project, error)
}
