package models

import (
	"time"

	"order-menu/core/reconcile"
	"order-menu/core/utils"
)

// DefaultCountry is the country stored when none is given.
const DefaultCountry = "China Office"

// Item is a row of the menu_items table.
type Item struct {
	ID          int       `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Category    *string   `gorm:"column:category;size:100;index" json:"category"`
	Name        string    `gorm:"column:name;size:255;not null" json:"name"`
	Tag         *string   `gorm:"column:tag;size:255;index;comment:Restaurant name" json:"tag"`
	Country     string    `gorm:"column:country;size:50;default:'China Office';index" json:"country"`
	Subtitle    *string   `gorm:"column:subtitle;size:255" json:"subtitle"`
	Description *string   `gorm:"column:description;type:text" json:"description"`
	Price       *string   `gorm:"column:price;size:50" json:"price"`
	Image       *string   `gorm:"column:image;type:longtext;comment:Base64 encoded image" json:"image"`
	CreatedAt   time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at" json:"updated_at"`
}

// TableName overrides the table name used by Item.
func (Item) TableName() string {
	return "menu_items"
}

func (i *Item) PrimaryKey() int       { return i.ID }
func (i *Item) SetPrimaryKey(key int) { i.ID = key }

// Input is a menu item as submitted by clients and export files.
// Scalar fields are decoded loosely: numbers are stored as their text form.
type Input struct {
	ID          any `json:"id"`
	Category    any `json:"category"`
	Name        any `json:"name"`
	Tag         any `json:"tag"`
	Country     any `json:"country"`
	Subtitle    any `json:"subtitle"`
	Description any `json:"description"`
	Price       any `json:"price"`
	Image       any `json:"image"`
}

// Entry converts the input into a reconcile entry.
func (in Input) Entry() reconcile.Entry {
	return reconcile.Entry{
		ID: reconcile.Normalize(in.ID),
		Row: &Item{
			Category:    utils.OptionalString(in.Category),
			Name:        utils.TextOrEmpty(in.Name),
			Tag:         utils.OptionalString(in.Tag),
			Country:     utils.TextOrEmpty(in.Country),
			Subtitle:    utils.OptionalString(in.Subtitle),
			Description: utils.OptionalString(in.Description),
			Price:       utils.OptionalString(in.Price),
			Image:       utils.OptionalString(in.Image),
		},
	}
}
