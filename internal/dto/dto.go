// Package dto содержит тела запросов и ответов публичного HTTP-API координатора.
package dto

// Identity описывает способ входа нового пользователя.
type Identity struct {
	Email    string `json:"email"`
	Password string `json:"password,omitempty"`
	Provider string `json:"provider"`
}

// SagaCreateProfile — тело POST /create_account.
type SagaCreateProfile struct {
	Identity Identity `json:"identity"`
	Phone    string   `json:"phone,omitempty"`
	Name     string   `json:"name,omitempty"`
}

// User — пользователь, возвращаемый сервисом Users.
type User struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
	Name  string `json:"name,omitempty"`
}

// NewStore — тело POST /create_store.
type NewStore struct {
	UserID              uint   `json:"user_id"`
	Name                string `json:"name"`
	Slug                string `json:"slug"`
	ShortDescription    string `json:"short_description,omitempty"`
	LongDescription     string `json:"long_description,omitempty"`
	Phone               string `json:"phone,omitempty"`
	Email               string `json:"email,omitempty"`
	DefaultLanguage     string `json:"default_language,omitempty"`
}

// Store — магазин, возвращаемый сервисом Stores.
type Store struct {
	ID     uint `json:"id"`
	UserID uint `json:"user_id"`
}

// PriceRow — одна позиция корзины в привязке к валюте.
type PriceRow struct {
	ProductID uint    `json:"product_id"`
	Quantity  uint    `json:"quantity"`
	Price     float64 `json:"price"`
}

// ConvertCart — тело POST /create_order.
type ConvertCart struct {
	CustomerID   uint       `json:"customer_id"`
	Currency     string     `json:"currency"`
	Prices       []PriceRow `json:"prices"`
	Address      string     `json:"address"`
	ReceiverName string     `json:"receiver_name"`
	ReceiverPhone string    `json:"receiver_phone"`
}

// BuyNow — тело POST /buy_now, сокращённая форма ConvertCart на один товар.
type BuyNow struct {
	CustomerID    uint    `json:"customer_id"`
	ProductID     uint    `json:"product_id"`
	Quantity      uint    `json:"quantity"`
	Price         float64 `json:"price"`
	Currency      string  `json:"currency"`
	Address       string  `json:"address"`
	ReceiverName  string  `json:"receiver_name"`
	ReceiverPhone string  `json:"receiver_phone"`
}

// ToConvertCart normalizes a BuyNow payload into a single-line ConvertCart.
func (b BuyNow) ToConvertCart() ConvertCart {
	return ConvertCart{
		CustomerID: b.CustomerID,
		Currency:   b.Currency,
		Prices: []PriceRow{
			{ProductID: b.ProductID, Quantity: b.Quantity, Price: b.Price},
		},
		Address:       b.Address,
		ReceiverName:  b.ReceiverName,
		ReceiverPhone: b.ReceiverPhone,
	}
}

// Order — заказ, возвращаемый сервисом Orders.
type Order struct {
	ID         uint   `json:"id"`
	Slug       string `json:"slug"`
	CustomerID uint   `json:"customer_id"`
	StoreID    uint   `json:"store_id"`
	ProductID  uint   `json:"product_id"`
	State      string `json:"state"`
}

// Invoice — счёт, возвращаемый сервисом Billing.
type Invoice struct {
	ID         uint    `json:"id"`
	CustomerID uint    `json:"customer_id"`
	Amount     float64 `json:"amount"`
	Currency   string  `json:"currency"`
}

// OrderStatusUpdate — один элемент BillingOrdersVec.
type OrderStatusUpdate struct {
	OrderID    uint   `json:"order_id"`
	CustomerID uint   `json:"customer_id"`
	Status     string `json:"status"`
}

// BillingOrdersVec — тело POST /orders/update_state.
type BillingOrdersVec struct {
	Orders []OrderStatusUpdate `json:"orders"`
}

// UpdateStatePayload — тело POST /orders/{slug}/set_state.
type UpdateStatePayload struct {
	State   string `json:"state"`
	TrackID string `json:"track_id,omitempty"`
	Comment string `json:"comment,omitempty"`
}

// ResetRequest — тело POST /email_verify и /reset_password.
type ResetRequest struct {
	Email string `json:"email"`
}

// PasswordResetApply — тело POST /reset_password_apply.
type PasswordResetApply struct {
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}

// EmailVerifyApply — тело POST /email_verify_apply.
type EmailVerifyApply struct {
	Token string `json:"token"`
}
