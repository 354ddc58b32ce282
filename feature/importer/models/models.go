package models

import "time"

// Bank holds the card details of exactly one User.
// It has no upstream identity; it is reached through its owner.
type Bank struct {
	ID         uint   `gorm:"column:id;primaryKey" json:"id"`
	CardExpire string `gorm:"column:card_expire;size:255;not null" json:"card_expire"`
	CardNumber string `gorm:"column:card_number;size:255;not null" json:"card_number"`
	CardType   string `gorm:"column:card_type;size:255;not null" json:"card_type"`
	Currency   string `gorm:"column:currency;size:255;not null" json:"currency"`
	IBAN       string `gorm:"column:iban;size:255;not null" json:"iban"`
}

// TableName overrides the table name.
func (Bank) TableName() string {
	return "bank"
}

// User is an imported upstream user, keyed by DummyID.
type User struct {
	ID        uint      `gorm:"column:id;primaryKey" json:"id"`
	BankID    *uint     `gorm:"column:bank_id;uniqueIndex:uniq_user_bank_id" json:"bank_id"`
	Bank      *Bank     `gorm:"foreignKey:BankID" json:"bank,omitempty"`
	DummyID   int       `gorm:"column:dummy_id;uniqueIndex:uniq_user_dummy_id;not null" json:"dummy_id"`
	FirstName string    `gorm:"column:first_name;size:255;not null" json:"first_name"`
	LastName  string    `gorm:"column:last_name;size:255;not null" json:"last_name"`
	Email     string    `gorm:"column:email;size:255;not null" json:"email"`
	Phone     string    `gorm:"column:phone;size:255;not null" json:"phone"`
	Username  string    `gorm:"column:username;size:255;not null" json:"username"`
	BirthDate time.Time `gorm:"column:birth_date;type:date;not null" json:"birth_date"`
	Height    int       `gorm:"column:height;not null" json:"height"`
	Weight    int       `gorm:"column:weight;not null" json:"weight"`
	Address   string    `gorm:"column:address;size:255;not null" json:"address"`
	City      string    `gorm:"column:city;size:255;not null" json:"city"`
	Posts     []Post    `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"posts,omitempty"`
}

// TableName overrides the table name.
func (User) TableName() string {
	return "user"
}

// Post is an imported upstream post, keyed by DummyID.
type Post struct {
	ID        uint   `gorm:"column:id;primaryKey" json:"id"`
	UserID    uint   `gorm:"column:user_id;not null;index:idx_post_user_id" json:"user_id"`
	Title     string `gorm:"column:title;size:255;not null" json:"title"`
	Body      string `gorm:"column:body;type:text;not null" json:"body"`
	Reactions int    `gorm:"column:reactions;not null" json:"reactions"`
	DummyID   int    `gorm:"column:dummy_id;uniqueIndex:uniq_post_dummy_id;not null" json:"dummy_id"`
}

// TableName overrides the table name.
func (Post) TableName() string {
	return "post"
}

// All returns the models in dependency order, for auto-migration.
func All() []any {
	return []any{&Bank{}, &User{}, &Post{}}
}

// RequiredColumns lists the columns the importer writes, per table.
func RequiredColumns() map[string][]string {
	return map[string][]string{
		"bank": {"id", "card_expire", "card_number", "card_type", "currency", "iban"},
		"user": {"id", "bank_id", "dummy_id", "first_name", "last_name", "email", "phone",
			"username", "birth_date", "height", "weight", "address", "city"},
		"post": {"id", "user_id", "title", "body", "reactions", "dummy_id"},
	}
}
