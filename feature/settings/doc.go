// Package settings stores application-wide key/value settings.
//
// Each key holds one JSON document. Writes are upserts and rows are never
// deleted. The only key served over HTTP is hiddenRestaurants, the list of
// restaurant names hidden from the menu.
package settings
