// Package schema creates and upgrades the order-menu tables.
//
// CreateTables migrates menu_items, orders and settings and seeds the hidden
// restaurants setting. BackfillCountry upgrades databases created before the
// country column existed. Describe prints what the connected schema holds and
// doubles as a connectivity check.
package schema
