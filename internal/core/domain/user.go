package domain

// User represents a registered customer.
type User struct {
	UserID       string `json:"userID"` // Primary Key (UUID)
	Username     string `json:"username"`
	Email        string `json:"email"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	PasswordHash string `json:"-"`
	IsActive     bool   `json:"isActive"`
	AuditFields
}

func (u *User) GetUserID() string    { return u.UserID }
func (u *User) GetUsername() string  { return u.Username }
func (u *User) GetEmail() string     { return u.Email }
func (u *User) GetFirstName() string { return u.FirstName }
func (u *User) GetLastName() string  { return u.LastName }
