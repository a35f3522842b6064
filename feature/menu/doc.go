// Package menu exposes the menu_items table over HTTP.
//
// A save replaces the whole menu inside one transaction. Clients importing a
// large menu in several requests flag each request as a migration batch, which
// keeps the items saved by earlier batches. Explicit ids that collide with a
// stored row, or that are out of range, are replaced by auto-assigned ones.
//
// # Endpoints
//
//   - GET  /api/menu-items: {items: [...]} ordered by id.
//   - POST /api/menu-items: {items: [...], migration?: bool}, also ?migration=true.
package menu
