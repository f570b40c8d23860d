package model

type User struct {
	ID    int    `json:"id,omitempty"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`

	// Password is only ever populated on signup requests.
	Password string `json:"password,omitempty"`
}
