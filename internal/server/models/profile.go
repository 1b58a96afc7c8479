package models

// Profile holds the public identity of a user.
type Profile struct {
	UserID      string
	DisplayName string
}
