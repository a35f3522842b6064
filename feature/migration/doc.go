// Package migration imports and exports the order-menu data as JSON files.
//
// The files are the ones produced by the document-store export:
//
//   - menu-items-export.json: an array of menu items, or {"items": [...]}.
//   - orders-export.json: an array of orders, or {"orders": [...]}.
//   - settings-export.json: {"hiddenRestaurants": [...]}.
//
// Files are read from a local directory or from an object storage bucket.
// Import clears each collection it has data for and writes the records in
// batches (10 menu items, 50 orders by default), keeping the ids from the
// files where they are valid.
package migration
