package entities

// User is an account that can appear as buyer or seller on an order.
// PasswordHash is the bcrypt hash of the signup password, never the
// plaintext.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
}
