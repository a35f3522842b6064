package reconcile

import (
	"context"
	"fmt"

	"order-menu/core/apperr"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Reconciler applies batches to tables inside a single transaction.
type Reconciler struct {
	db       *gorm.DB
	logger   *zap.Logger
	classify Classifier
}

// Option configures a Reconciler.
type Option func(*Reconciler)

// WithClassifier replaces the default failure classifier.
func WithClassifier(c Classifier) Option {
	return func(r *Reconciler) {
		r.classify = c
	}
}

// New creates a Reconciler over db.
func New(db *gorm.DB, logger *zap.Logger, opts ...Option) *Reconciler {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := &Reconciler{
		db:       db,
		logger:   logger,
		classify: Classify,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Reconcile deletes according to policy, then writes every entry in input order.
// Either the whole batch commits or nothing does; failures are returned as
// *apperr.StorageError.
func (r *Reconciler) Reconcile(ctx context.Context, table Table, entries []Entry, policy Policy) (*Result, error) {
	l := r.logger.With(zap.String("table", table.Name), zap.Stringer("policy", policy))

	result := &Result{Keys: make([]int, 0, len(entries))}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		deleted, err := r.applyDeletes(tx, table, entries, policy)
		if err != nil {
			return err
		}
		result.Deleted = deleted

		written := make(map[int]struct{}, len(entries))
		for i, entry := range entries {
			reassigned, err := r.write(tx, l, table, entry, written)
			if err != nil {
				return fmt.Errorf("failed to write %s record %d: %w", table.Name, i, err)
			}
			if reassigned {
				result.Reassigned++
			}
			key := entry.Row.PrimaryKey()
			written[key] = struct{}{}
			result.Keys = append(result.Keys, key)
		}
		return nil
	})
	if err != nil {
		l.Error("Reconciliation rolled back", zap.Error(err))
		return nil, apperr.Storage(err)
	}

	result.Success = true
	result.Count = len(entries)
	l.Debug("Reconciliation committed",
		zap.Int("count", result.Count),
		zap.Int64("deleted", result.Deleted),
		zap.Int("reassigned", result.Reassigned),
	)
	return result, nil
}

// Save writes a single entry without deleting anything and returns its final key.
func (r *Reconciler) Save(ctx context.Context, table Table, entry Entry) (int, error) {
	res, err := r.Reconcile(ctx, table, []Entry{entry}, InsertOnly)
	if err != nil {
		return 0, err
	}
	return res.Keys[0], nil
}

// applyDeletes executes the deletion plan as one statement.
func (r *Reconciler) applyDeletes(tx *gorm.DB, table Table, entries []Entry, policy Policy) (int64, error) {
	var existing []int
	if policy == DeleteMissing {
		if err := tx.Model(table.Model).Pluck(table.keyColumn(), &existing).Error; err != nil {
			return 0, fmt.Errorf("failed to load existing %s keys: %w", table.Name, err)
		}
	}

	plan := PlanDeletes(policy, existing, entries)
	if plan.IsEmpty() {
		return 0, nil
	}

	var res *gorm.DB
	if plan.All {
		res = tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(table.Model)
	} else {
		res = tx.Where(table.keyColumn()+" IN ?", plan.Keys).Delete(table.Model)
	}
	if res.Error != nil {
		return 0, fmt.Errorf("failed to delete from %s: %w", table.Name, res.Error)
	}
	return res.RowsAffected, nil
}

// write stores one entry. It reports whether the entry's explicit key was
// replaced by an assigned one.
func (r *Reconciler) write(tx *gorm.DB, l *zap.Logger, table Table, entry Entry, written map[int]struct{}) (bool, error) {
	key, explicit := entry.ID.Key()
	if !explicit {
		return false, insertAuto(tx, entry.Row)
	}

	// A key already written by this batch would be overwritten by an upsert.
	if _, dup := written[key]; dup {
		l.Debug("Explicit key repeated in batch, assigning a new one", zap.Int("key", key))
		return true, insertAuto(tx, entry.Row)
	}

	entry.Row.SetPrimaryKey(key)
	err := insertExplicit(tx, table, entry.Row)
	if err == nil {
		return false, nil
	}

	kind := r.classify(err)
	if !kind.Recoverable() {
		return false, err
	}

	l.Warn("Explicit key rejected, assigning a new one",
		zap.Int("key", key),
		zap.Stringer("kind", kind),
		zap.Error(err),
	)
	return true, insertAuto(tx, entry.Row)
}

func insertExplicit(tx *gorm.DB, table Table, row Row) error {
	if table.Conflict == ConflictOverwrite {
		return tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(row).Error
	}
	return tx.Create(row).Error
}

func insertAuto(tx *gorm.DB, row Row) error {
	row.SetPrimaryKey(0)
	return tx.Create(row).Error
}
