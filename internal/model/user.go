package model

// User is the only persisted record. ID is assigned by the database.
type User struct {
	ID    int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	Name  string `json:"name" gorm:"type:text;not null"`
	Email string `json:"email" gorm:"type:text;not null"`
}

// TableName pins the table name independently of gorm's naming strategy.
func (User) TableName() string {
	return "users"
}
