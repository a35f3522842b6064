package models

import (
	"time"

	"order-menu/core/database"
)

// HiddenRestaurantsKey is the key of the hidden restaurants setting.
const HiddenRestaurantsKey = "hiddenRestaurants"

// Setting is a row of the settings table.
type Setting struct {
	ID        int           `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	Key       string        `gorm:"column:key;size:100;not null;uniqueIndex" json:"key"`
	Value     database.JSON `gorm:"column:value" json:"value"`
	CreatedAt time.Time     `gorm:"column:created_at" json:"-"`
	UpdatedAt time.Time     `gorm:"column:updated_at" json:"-"`
}

// TableName overrides the table name used by Setting.
func (Setting) TableName() string {
	return "settings"
}
