// Package orders exposes the orders table over HTTP.
//
// Orders are written one at a time as upserts, or as a batch that makes the
// table hold exactly the submitted list. Missing fields get defaults: an empty
// name and text, an empty items list, the current time as the date and
// "China Office" as the country.
//
// # Endpoints
//
//   - GET    /api/orders: {orders: [...]}, newest first.
//   - POST   /api/orders: {order: {...}} upsert, returns {success, id}.
//   - POST   /api/orders/batch: {orders: [...]}.
//   - DELETE /api/orders/:id
//   - DELETE /api/orders
package orders
