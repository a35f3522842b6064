package reconcile

// Policy selects which persisted rows a batch removes.
type Policy int

const (
	// DeleteAll removes every persisted row before writing the batch.
	DeleteAll Policy = iota
	// DeleteMissing removes persisted rows whose key is not an explicit key of the batch.
	DeleteMissing
	// InsertOnly keeps every persisted row; the batch is added or updated alongside.
	InsertOnly
)

func (p Policy) String() string {
	switch p {
	case DeleteAll:
		return "delete_all"
	case DeleteMissing:
		return "delete_missing"
	case InsertOnly:
		return "insert_only"
	default:
		return "unknown"
	}
}

// ConflictMode selects how an explicit key that already exists is written.
type ConflictMode int

const (
	// ConflictOverwrite upserts by primary key: on duplicate, every non-key field is overwritten.
	ConflictOverwrite ConflictMode = iota
	// ConflictReassign inserts plainly: on duplicate, the record gets an auto-assigned key.
	ConflictReassign
)

// Row is a persisted model whose primary key the reconciler can set.
// Implementations must be pointers to GORM models.
type Row interface {
	PrimaryKey() int
	SetPrimaryKey(key int)
}

// Table describes the table a batch is reconciled into.
type Table struct {
	// Name is used for logging.
	Name string
	// Model is a pointer to a zero value of the table's GORM model.
	Model any
	// KeyColumn is the primary key column. Defaults to "id".
	KeyColumn string
	// Conflict selects the explicit-key write strategy.
	Conflict ConflictMode
}

func (t Table) keyColumn() string {
	if t.KeyColumn == "" {
		return "id"
	}
	return t.KeyColumn
}

// Entry is one incoming record with its normalized identifier.
type Entry struct {
	ID  Identifier
	Row Row
}

// Plan is the deletion half of a reconciliation.
type Plan struct {
	// All removes every persisted row.
	All bool
	// Keys lists the persisted keys to remove, ascending. Ignored when All is set.
	Keys []int
}

// IsEmpty returns true if the plan deletes nothing.
func (p Plan) IsEmpty() bool {
	return !p.All && len(p.Keys) == 0
}

// Result summarizes a committed reconciliation.
type Result struct {
	// Success is always true on a returned result.
	Success bool `json:"success"`
	// Count is the number of incoming records written.
	Count int `json:"count"`
	// Deleted is the number of persisted rows removed.
	Deleted int64 `json:"deleted"`
	// Reassigned counts records whose explicit key was dropped in favor of an assigned one.
	Reassigned int `json:"reassigned"`
	// Keys holds the final key of every incoming record, in input order.
	Keys []int `json:"keys"`
}
