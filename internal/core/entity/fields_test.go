package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type sampleRecord struct {
	BaseEntity
	Name    string `db:"name" json:"name"`
	Branch  string `db:"branch" json:"branch"`
	Comment string `json:"comment"`
	Skipped string `db:"-"`
}

func TestColumns(t *testing.T) {
	cols := Columns[sampleRecord]()
	assert.Equal(t, []string{"id", "version", "created_at", "updated_at", "name", "branch"}, cols)
	assert.Equal(t, cols, Columns[*sampleRecord]())
}

func TestFields(t *testing.T) {
	rec := &sampleRecord{BaseEntity: NewBaseEntity(), Name: "Flour", Branch: "north", Comment: "x"}

	m := Fields(rec)
	assert.Equal(t, rec.ID, m["id"])
	assert.Equal(t, 1, m["version"])
	assert.Equal(t, "Flour", m["name"])
	assert.Equal(t, "north", m["branch"])
	assert.NotContains(t, m, "comment")
	assert.NotContains(t, m, "-")

	assert.Nil(t, Fields((*sampleRecord)(nil)))
	assert.Nil(t, Fields(42))
}

func TestTouch(t *testing.T) {
	b := NewBaseEntity()
	before := b.UpdatedAt
	b.Touch()
	assert.Equal(t, 2, b.Version)
	assert.False(t, b.UpdatedAt.Before(before))
}
