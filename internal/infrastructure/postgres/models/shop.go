package models

import "time"

type ShopModel struct {
	ID                  string `gorm:"primaryKey;type:uuid"`
	Name                string
	Email               string `gorm:"uniqueIndex"`
	Phone               string
	Street              string
	Street2             string
	City                string
	State               string
	PostalCode          string
	Latitude            *float64
	Longitude           *float64
	ImageURL            string
	Subscription        string
	SubscriptionEndDate *time.Time `gorm:"index:idx_shops_subscription_end"`
	IsSetupComplete     bool
	GatewayAccountID    string
	BankDetails         string
	GatewayOrderID      string
	GatewayPaymentID    string
	PaidAt              *time.Time
	PushOptIn           bool
	PushToken           string
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

func (ShopModel) TableName() string { return "shops" }
