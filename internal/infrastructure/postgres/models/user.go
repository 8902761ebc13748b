package models

type UserModel struct {
	ID        string `gorm:"primaryKey;type:uuid"`
	Name      string
	Email     string `gorm:"uniqueIndex"`
	Phone     string
	Cart      string `gorm:"type:jsonb;default:'{}'"`
	PushOptIn bool
	PushToken string
}

func (UserModel) TableName() string { return "users" }
