package user

// User represents someone who logs hours
type User struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
