package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func entriesFor(ids ...any) []Entry {
	entries := make([]Entry, 0, len(ids))
	for _, id := range ids {
		entries = append(entries, Entry{ID: Normalize(id)})
	}
	return entries
}

func TestPlanDeletes(t *testing.T) {
	tests := []struct {
		name     string
		policy   Policy
		existing []int
		entries  []Entry
		want     Plan
	}{
		{
			name:     "DeleteAll ignores incoming keys",
			policy:   DeleteAll,
			existing: []int{1, 2},
			entries:  entriesFor(1, 2),
			want:     Plan{All: true},
		},
		{
			name:     "DeleteMissing removes keys absent from batch",
			policy:   DeleteMissing,
			existing: []int{3, 1, 2},
			entries:  entriesFor(2, "x", 9),
			want:     Plan{Keys: []int{1, 3}},
		},
		{
			name:     "DeleteMissing with empty batch removes everything",
			policy:   DeleteMissing,
			existing: []int{5, 4},
			entries:  nil,
			want:     Plan{Keys: []int{4, 5}},
		},
		{
			name:     "DeleteMissing compares normalized keys",
			policy:   DeleteMissing,
			existing: []int{42},
			entries:  entriesFor("42"),
			want:     Plan{},
		},
		{
			name:     "InsertOnly deletes nothing",
			policy:   InsertOnly,
			existing: []int{1, 2, 3},
			entries:  nil,
			want:     Plan{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PlanDeletes(tt.policy, tt.existing, tt.entries)
			assert.Equal(t, tt.want.All, got.All)
			assert.Equal(t, tt.want.Keys, got.Keys)
			assert.Equal(t, tt.want.IsEmpty(), got.IsEmpty())
		})
	}
}

func TestPolicy_String(t *testing.T) {
	assert.Equal(t, "delete_all", DeleteAll.String())
	assert.Equal(t, "delete_missing", DeleteMissing.String())
	assert.Equal(t, "insert_only", InsertOnly.String())
}
