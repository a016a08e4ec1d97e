// Package model contains the GORM persistence models mirroring the database schema.
package model

import "time"

// CredentialModel mirrors the 'credentials' table. Username is the natural
// unique key; there is no surrogate id because nothing references this table.
type CredentialModel struct {
	Username     string `gorm:"type:varchar(255);primary_key"`
	PasswordHash string `gorm:"type:varchar(255);not null"`
	Role         string `gorm:"type:varchar(50);not null"`
	CreatedAt    time.Time
}

// TableName explicitly sets the table name for GORM.
func (CredentialModel) TableName() string {
	return "credentials"
}
