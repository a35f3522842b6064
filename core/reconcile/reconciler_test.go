package reconcile

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"testing"

	"order-menu/core/apperr"
	"order-menu/core/database"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// widget is a minimal reconcilable model.
type widget struct {
	ID   int    `gorm:"column:id;primaryKey;autoIncrement"`
	Name string `gorm:"column:name;size:64;not null"`
}

func (widget) TableName() string { return "widgets" }

func (w *widget) PrimaryKey() int       { return w.ID }
func (w *widget) SetPrimaryKey(key int) { w.ID = key }

func widgetTable(mode ConflictMode) Table {
	return Table{Name: "widgets", Model: &widget{}, Conflict: mode}
}

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&widget{}))
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}

func seed(t *testing.T, db *gorm.DB, rows ...widget) {
	t.Helper()
	for i := range rows {
		require.NoError(t, db.Create(&rows[i]).Error)
	}
}

func batch(pairs ...any) []Entry {
	entries := make([]Entry, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		entries = append(entries, Entry{
			ID:  Normalize(pairs[i]),
			Row: &widget{Name: pairs[i+1].(string)},
		})
	}
	return entries
}

func keys(t *testing.T, db *gorm.DB) []int {
	t.Helper()
	var ids []int
	require.NoError(t, db.Model(&widget{}).Order("id").Pluck("id", &ids).Error)
	return ids
}

func names(t *testing.T, db *gorm.DB) []string {
	t.Helper()
	var out []string
	require.NoError(t, db.Model(&widget{}).Order("name").Pluck("name", &out).Error)
	return out
}

func TestReconcile_DeleteMissing_KeySetMatchesBatch(t *testing.T) {
	db := setupDB(t)
	seed(t, db, widget{ID: 1, Name: "a"}, widget{ID: 2, Name: "b"}, widget{ID: 3, Name: "c"})

	r := New(db, zap.NewNop())
	res, err := r.Reconcile(context.Background(), widgetTable(ConflictOverwrite),
		batch(2, "b2", "not-a-number", "new", 7, "seven"), DeleteMissing)
	require.NoError(t, err)

	assert.True(t, res.Success)
	assert.Equal(t, 3, res.Count)
	assert.Equal(t, int64(2), res.Deleted)
	assert.Equal(t, 2, res.Keys[0])
	assert.Equal(t, 7, res.Keys[2])

	want := append([]int(nil), res.Keys...)
	sort.Ints(want)
	assert.Equal(t, want, keys(t, db))

	var updated widget
	require.NoError(t, db.First(&updated, 2).Error)
	assert.Equal(t, "b2", updated.Name)
}

func TestReconcile_DeleteMissing_EmptyBatchDeletesEverything(t *testing.T) {
	db := setupDB(t)
	seed(t, db, widget{ID: 4, Name: "a"}, widget{ID: 5, Name: "b"})

	res, err := New(db, nil).Reconcile(context.Background(), widgetTable(ConflictOverwrite), nil, DeleteMissing)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Count)
	assert.Equal(t, int64(2), res.Deleted)
	assert.Empty(t, keys(t, db))
}

func TestReconcile_DeleteAll(t *testing.T) {
	t.Run("Empty batch empties table", func(t *testing.T) {
		db := setupDB(t)
		seed(t, db, widget{ID: 1, Name: "a"}, widget{ID: 9, Name: "b"})

		res, err := New(db, nil).Reconcile(context.Background(), widgetTable(ConflictReassign), nil, DeleteAll)
		require.NoError(t, err)
		assert.Equal(t, 0, res.Count)
		assert.Empty(t, keys(t, db))
	})

	t.Run("Replay is idempotent", func(t *testing.T) {
		db := setupDB(t)
		seed(t, db, widget{ID: 50, Name: "stale"})
		r := New(db, nil)

		_, err := r.Reconcile(context.Background(), widgetTable(ConflictReassign),
			batch(1, "soup", nil, "noodles", 3, "rice"), DeleteAll)
		require.NoError(t, err)
		firstNames, firstKeys := names(t, db), keys(t, db)

		_, err = r.Reconcile(context.Background(), widgetTable(ConflictReassign),
			batch(1, "soup", nil, "noodles", 3, "rice"), DeleteAll)
		require.NoError(t, err)

		assert.Equal(t, []string{"noodles", "rice", "soup"}, firstNames)
		assert.Equal(t, firstNames, names(t, db))
		assert.Contains(t, keys(t, db), 1)
		assert.Contains(t, keys(t, db), 3)
		assert.Len(t, keys(t, db), len(firstKeys))
	})
}

func TestReconcile_DuplicateExplicitKeyInBatch(t *testing.T) {
	for _, mode := range []ConflictMode{ConflictOverwrite, ConflictReassign} {
		t.Run(fmt.Sprintf("mode %d", mode), func(t *testing.T) {
			db := setupDB(t)

			res, err := New(db, nil).Reconcile(context.Background(), widgetTable(mode),
				batch(5, "first", 5, "second"), DeleteAll)
			require.NoError(t, err)
			assert.Equal(t, 1, res.Reassigned)

			ids := keys(t, db)
			require.Len(t, ids, 2)
			assert.Contains(t, ids, 5)
			assert.NotEqual(t, res.Keys[0], res.Keys[1])

			var kept widget
			require.NoError(t, db.First(&kept, 5).Error)
			assert.Equal(t, "first", kept.Name)
		})
	}
}

func TestReconcile_InsertOnly(t *testing.T) {
	t.Run("Migration batches accumulate", func(t *testing.T) {
		db := setupDB(t)
		r := New(db, nil)

		first := make([]any, 0, 20)
		second := make([]any, 0, 20)
		for i := 1; i <= 10; i++ {
			first = append(first, i, fmt.Sprintf("item-%02d", i))
			second = append(second, i+10, fmt.Sprintf("item-%02d", i+10))
		}

		_, err := r.Reconcile(context.Background(), widgetTable(ConflictReassign), batch(first...), InsertOnly)
		require.NoError(t, err)
		res, err := r.Reconcile(context.Background(), widgetTable(ConflictReassign), batch(second...), InsertOnly)
		require.NoError(t, err)

		assert.Equal(t, int64(0), res.Deleted)
		ids := keys(t, db)
		assert.Len(t, ids, 20)
		assert.Equal(t, 1, ids[0])
		assert.Equal(t, 20, ids[19])
	})

	t.Run("Existing key is reassigned without overwrite", func(t *testing.T) {
		db := setupDB(t)
		seed(t, db, widget{ID: 1, Name: "original"})

		res, err := New(db, nil).Reconcile(context.Background(), widgetTable(ConflictReassign),
			batch(1, "incoming"), InsertOnly)
		require.NoError(t, err)
		assert.Equal(t, 1, res.Reassigned)
		assert.NotEqual(t, 1, res.Keys[0])

		var kept widget
		require.NoError(t, db.First(&kept, 1).Error)
		assert.Equal(t, "original", kept.Name)
		assert.Len(t, keys(t, db), 2)
	})

	t.Run("Existing key is overwritten by upsert", func(t *testing.T) {
		db := setupDB(t)
		seed(t, db, widget{ID: 1, Name: "original"})

		res, err := New(db, nil).Reconcile(context.Background(), widgetTable(ConflictOverwrite),
			batch(1, "incoming"), InsertOnly)
		require.NoError(t, err)
		assert.Equal(t, 0, res.Reassigned)
		assert.Equal(t, []int{1}, keys(t, db))
		assert.Equal(t, []string{"incoming"}, names(t, db))
	})
}

func TestReconcile_RollsBackOnStorageError(t *testing.T) {
	db := setupDB(t)
	seed(t, db, widget{ID: 1, Name: "a"}, widget{ID: 2, Name: "b"})

	boom := errors.New("disk on fire")
	err := db.Callback().Create().Before("gorm:create").Register("test:fault", func(tx *gorm.DB) {
		if w, ok := tx.Statement.Dest.(*widget); ok && w.Name == "boom" {
			_ = tx.AddError(boom)
		}
	})
	require.NoError(t, err)

	_, err = New(db, nil).Reconcile(context.Background(), widgetTable(ConflictOverwrite),
		batch(1, "a2", nil, "fresh", 3, "boom", 4, "never"), DeleteMissing)
	require.Error(t, err)

	var storageErr *apperr.StorageError
	assert.ErrorAs(t, err, &storageErr)
	assert.ErrorIs(t, err, boom)

	assert.Equal(t, []int{1, 2}, keys(t, db))
	assert.Equal(t, []string{"a", "b"}, names(t, db))
}

func TestReconcile_CustomClassifierAborts(t *testing.T) {
	db := setupDB(t)
	seed(t, db, widget{ID: 1, Name: "original"})

	r := New(db, nil, WithClassifier(func(error) FailureKind { return FailureOther }))
	_, err := r.Reconcile(context.Background(), widgetTable(ConflictReassign), batch(1, "dup"), InsertOnly)
	assert.Error(t, err)
	assert.Equal(t, []string{"original"}, names(t, db))
}

func TestSave(t *testing.T) {
	db := setupDB(t)
	seed(t, db, widget{ID: 3, Name: "keep"})
	r := New(db, nil)

	key, err := r.Save(context.Background(), widgetTable(ConflictOverwrite), Entry{ID: Normalize("12"), Row: &widget{Name: "twelve"}})
	require.NoError(t, err)
	assert.Equal(t, 12, key)

	key, err = r.Save(context.Background(), widgetTable(ConflictOverwrite), Entry{ID: Auto, Row: &widget{Name: "auto"}})
	require.NoError(t, err)
	assert.Equal(t, 13, key)

	assert.Equal(t, []int{3, 12, 13}, keys(t, db))
}
