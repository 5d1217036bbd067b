// Package model contains the GORM persistence models. They mirror the
// database schema and are mapped to domain entities at the repository
// boundary.
package model

import "time"

// AccountModel mirrors the existing 'users' table: uid is assigned by the
// database, uname and email carry unique constraints, password stores the
// bcrypt hash and phone is nullable.
type AccountModel struct {
	ID           int64   `gorm:"column:uid;primaryKey;autoIncrement"`
	Username     string  `gorm:"column:uname;type:varchar(100);not null;uniqueIndex:users_uname_key"`
	Email        string  `gorm:"column:email;type:varchar(255);not null;uniqueIndex:users_email_key"`
	PasswordHash string  `gorm:"column:password;type:varchar(255);not null"`
	Phone        *string `gorm:"column:phone;type:varchar(32)"`
	CreatedAt    time.Time
}

// TableName explicitly sets the table name for GORM.
func (AccountModel) TableName() string {
	return "users"
}
