package models

// Order is written once at placement and never changed. Total is kept exactly as submitted.
type Order struct {
	OrderID string `json:"order_id" dynamodbav:"order_id"`
	Email   string `json:"email" dynamodbav:"email"`
	Name    string `json:"name" dynamodbav:"name"`
	Phone   string `json:"phone" dynamodbav:"phone"`
	Address string `json:"address" dynamodbav:"address"`
	Total   string `json:"total" dynamodbav:"total"`
}
