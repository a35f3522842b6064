package models

import (
	"bytes"
	"encoding/json"
	"time"

	"order-menu/core/database"
	"order-menu/core/reconcile"
	"order-menu/core/utils"
)

const (
	// DefaultCountry is the country stored when none is given.
	DefaultCountry = "China Office"
	// DateLayout renders the default order date, e.g. "3/14/2024, 6:05:09 PM".
	DateLayout = "1/2/2006, 3:04:05 PM"
)

// Order is a row of the orders table.
type Order struct {
	ID        int           `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name      string        `gorm:"column:name;size:255;not null;index" json:"name"`
	Country   string        `gorm:"column:country;size:50;default:'China Office';index" json:"country"`
	Order     string        `gorm:"column:order;type:text;comment:Order details" json:"order"`
	Items     database.JSON `gorm:"column:items;comment:Order items array" json:"items"`
	Date      string        `gorm:"column:date;size:100;index;comment:Order date string" json:"date"`
	CreatedAt time.Time     `gorm:"column:created_at;index" json:"-"`
	UpdatedAt time.Time     `gorm:"column:updated_at" json:"-"`
}

// TableName overrides the table name used by Order.
func (Order) TableName() string {
	return "orders"
}

func (o *Order) PrimaryKey() int       { return o.ID }
func (o *Order) SetPrimaryKey(key int) { o.ID = key }

// Input is an order as submitted by clients and export files.
type Input struct {
	ID      any             `json:"id"`
	Name    any             `json:"name"`
	Country any             `json:"country"`
	Order   any             `json:"order"`
	Items   json.RawMessage `json:"items" swaggertype:"array,object"`
	Date    any             `json:"date"`
}

// Entry converts the input into a reconcile entry. Blank fields are stored
// empty, blank items become an empty list and a blank date becomes now
// rendered with DateLayout.
func (in Input) Entry(now time.Time) reconcile.Entry {
	items := database.JSON(bytes.TrimSpace(in.Items))
	switch string(items) {
	case "", "null", "false", "0", `""`:
		items = database.JSON("[]")
	}

	date := utils.TextOrEmpty(in.Date)
	if date == "" {
		date = now.Format(DateLayout)
	}

	return reconcile.Entry{
		ID: reconcile.Normalize(in.ID),
		Row: &Order{
			Name:    utils.TextOrEmpty(in.Name),
			Country: utils.TextOrEmpty(in.Country),
			Order:   utils.TextOrEmpty(in.Order),
			Items:   items,
			Date:    date,
		},
	}
}
