package model

// BookModel mirrors the 'books' table. Every column except the serial id is
// text on purpose: price, availability and rating are stored exactly as the
// source site displays them.
type BookModel struct {
	ID           uint   `gorm:"primary_key;autoIncrement"`
	Title        string `gorm:"type:varchar(255);not null;index"`
	Price        string `gorm:"type:varchar(100)"`
	Availability string `gorm:"type:varchar(255)"`
	Rating       string `gorm:"type:varchar(50)"`
}

// TableName explicitly sets the table name for GORM.
func (BookModel) TableName() string {
	return "books"
}
