package entity

// Profile is the account of a customer or an admin.
type Profile struct {
	BaseNoDelete
	Email        string `db:"email"`
	PasswordHash string `db:"password"`
	FullName     string `db:"full_name"`
	Phone        string `db:"phone"`
	IsAdmin      bool   `db:"is_admin"`
}
