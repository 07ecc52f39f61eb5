package model

import "time"

type User struct {
	UserID           string     `json:"user_id" db:"user_id"`
	Name             string     `json:"name" db:"name"`
	Email            string     `json:"email" db:"email"`
	PasswordHash     string     `json:"-" db:"password_hash"`
	HasPaid          bool       `json:"has_paid" db:"has_paid"`
	StripeCustomerID *string    `json:"stripe_customer_id,omitempty" db:"stripe_customer_id"`
	PaymentDate      *time.Time `json:"payment_date,omitempty" db:"payment_date"`
	CreatedAt        time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at" db:"updated_at"`
}

type SignUpReq struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type LoginReq struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type UserRes struct {
	UserID  string `json:"user_id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	HasPaid bool   `json:"has_paid"`
}

func (u *User) ToRes() UserRes {
	return UserRes{
		UserID:  u.UserID,
		Name:    u.Name,
		Email:   u.Email,
		HasPaid: u.HasPaid,
	}
}
