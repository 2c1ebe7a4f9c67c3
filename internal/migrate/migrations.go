package migrate

import "gorm.io/gorm"

// Table snapshots are frozen per migration so later model changes do not
// rewrite history.

type usersV1 struct {
	ID    int64  `gorm:"primaryKey;autoIncrement"`
	Name  string `gorm:"type:text;not null"`
	Email string `gorm:"type:text;not null"`
}

func (usersV1) TableName() string { return "users" }

// Migrations returns the built-in schema history in order.
func Migrations() []Migration {
	return []Migration{
		{
			ID: "0001_create_users",
			Up: func(tx *gorm.DB) error {
				if tx.Migrator().HasTable(&usersV1{}) {
					return nil
				}
				return tx.Migrator().CreateTable(&usersV1{})
			},
		},
	}
}
