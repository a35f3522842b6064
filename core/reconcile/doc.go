// Package reconcile implements the batch reconciliation used to synchronize a
// client-supplied collection against a persisted table.
//
// A batch is a full replacement (or an incremental merge) of a table's rows.
// The reconciler computes which persisted keys disappear from the batch, deletes
// them in a single statement, and then writes every incoming record in input
// order, all inside one transaction.
//
// # Identifiers
//
// Incoming identifiers are loosely typed (numbers, numeric strings, nothing at all).
// Normalize turns them into an Identifier: either an explicit positive key that fits
// a signed 32-bit column, or Auto, meaning the store assigns one.
//
// # Deletion Policies
//
//   - DeleteAll: every persisted row is removed before writing.
//   - DeleteMissing: persisted rows whose key is not an explicit key of the batch are removed.
//   - InsertOnly: nothing is removed; rows are added or updated alongside existing ones.
//
// # Conflict Fallback
//
// An explicit write that fails is classified by kind (duplicate key, out of range,
// data too long, other). The first three are retried once as an auto-assigned insert;
// anything else aborts the batch and rolls the transaction back.
//
// # Usage
//
//	r := reconcile.New(db, logger)
//	res, err := r.Reconcile(ctx, table, entries, reconcile.DeleteMissing)
package reconcile
