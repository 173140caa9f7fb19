package memory

import (
	"github.com/google/uuid"

	"github.com/tallyhq/tally/internal/domain/project"
	"github.com/tallyhq/tally/internal/domain/user"
)

// DemoUsers returns the demo users seeded in development mode.
func DemoUsers() []user.User {
	return []user.User{
		{ID: uuid.NewString(), Name: "User 1"},
		{ID: uuid.NewString(), Name: "User 2"},
	}
}

// DemoProjects returns the demo projects seeded in development mode.
func DemoProjects() []project.Project {
	return []project.Project{
		{ID: uuid.NewString(), Name: "Project 1"},
		{ID: uuid.NewString(), Name: "Project 2"},
	}
}
