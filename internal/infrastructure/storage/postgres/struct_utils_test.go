package postgres

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"millstock/internal/core/entity"
	"millstock/internal/core/id"
)

type mockCatalog struct {
	entity.Catalog
	Location string `db:"location" json:"location"`
}

type mockDocument struct {
	entity.BaseDocument
	BillNo string `db:"bill_no" json:"billNo"`
}

func TestExtractDBColumns_Catalog(t *testing.T) {
	cols := ExtractDBColumns[mockCatalog]()

	expected := []string{"id", "deletion_mark", "version", "name", "location"}
	for _, col := range expected {
		assert.Contains(t, cols, col)
	}
}

func TestExtractDBColumns_Document(t *testing.T) {
	cols := ExtractDBColumns[mockDocument]()

	expected := []string{
		"id", "deletion_mark", "version",
		"created_at", "updated_at", "created_by", "updated_by",
		"bill_no",
	}
	for _, col := range expected {
		assert.Contains(t, cols, col)
	}
}

func TestStructToMap_EmbeddedFields(t *testing.T) {
	cat := mockCatalog{
		Catalog:  entity.NewCatalog("unit 1"),
		Location: "warangal",
	}
	cat.DeletionMark = true
	cat.Version = 5

	m := StructToMap(cat)

	assert.Equal(t, cat.ID, m["id"])
	assert.Equal(t, true, m["deletion_mark"])
	assert.Equal(t, 5, m["version"])
	assert.Equal(t, "unit 1", m["name"])
	assert.Equal(t, "warangal", m["location"])
}

func TestStructToMap_DocumentTimestamps(t *testing.T) {
	now := time.Now().UTC()
	doc := mockDocument{
		BaseDocument: entity.BaseDocument{
			BaseEntity: entity.BaseEntity{ID: id.New(), Version: 1},
			CreatedAt:  now,
			UpdatedAt:  now,
			CreatedBy:  "user-1",
		},
		BillNo: "PB-042",
	}

	m := StructToMap(doc)

	assert.Equal(t, now, m["created_at"])
	assert.Equal(t, "user-1", m["created_by"])
	assert.Equal(t, "PB-042", m["bill_no"])
}

func TestStructToMap_Pointer(t *testing.T) {
	cat := &mockCatalog{Catalog: entity.NewCatalog("unit 2")}

	m := StructToMap(cat)

	assert.Equal(t, "unit 2", m["name"])
}
