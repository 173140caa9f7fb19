package project

// Project represents a project hours are logged against
type Project struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
