package models

type User struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type Purchase struct {
	ID       int64   `json:"id"`
	UserID   int64   `json:"user_id"`
	ItemName string  `json:"item_name"`
	Price    float64 `json:"price"`
	Paid     bool    `json:"paid"`
}

type Payment struct {
	ID         int64 `json:"id"`
	UserID     int64 `json:"user_id"`
	PurchaseID int64 `json:"purchase_id"`
}
