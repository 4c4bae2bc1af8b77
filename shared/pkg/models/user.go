package models

// User is keyed by Email. PasswordHash is whatever the configured hasher produced.
type User struct {
	Email        string `json:"email" dynamodbav:"email"`
	FullName     string `json:"fullname" dynamodbav:"fullname"`
	PasswordHash string `json:"-" dynamodbav:"password"`
}
