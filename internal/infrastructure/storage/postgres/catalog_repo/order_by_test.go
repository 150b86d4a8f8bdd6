package catalog_repo

import (
	"testing"

	"millstock/internal/core/apperror"
)

func newTestRepo() *BaseCatalogRepo[any] {
	cols := []string{"id", "name", "location", "version"}
	return NewBaseCatalogRepo[any](nil, "test_table", "TestEntity", cols, func() any { return nil })
}

func TestParseOrderBy(t *testing.T) {
	repo := newTestRepo()

	tests := []struct {
		name    string
		orderBy string
		want    string
	}{
		{name: "default", orderBy: "", want: "name ASC"},
		{name: "plain field", orderBy: "location", want: "location ASC"},
		{name: "explicit ascending", orderBy: "+name", want: "name ASC"},
		{name: "descending", orderBy: "-name", want: "name DESC"},
		{name: "id always allowed", orderBy: "id", want: "id ASC"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.parseOrderBy(tt.orderBy)
			if err != nil {
				t.Fatalf("parseOrderBy(%q) failed: %v", tt.orderBy, err)
			}
			if got != tt.want {
				t.Errorf("parseOrderBy(%q)\nwant: %s\ngot:  %s", tt.orderBy, tt.want, got)
			}
		})
	}
}

func TestParseOrderBy_RejectsUnknownColumn(t *testing.T) {
	repo := newTestRepo()

	tests := []struct {
		name    string
		orderBy string
	}{
		{name: "unknown column", orderBy: "password"},
		{name: "injection attempt", orderBy: "name; DROP TABLE test_table"},
		{name: "bare direction prefix", orderBy: "-"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := repo.parseOrderBy(tt.orderBy)
			if err == nil {
				t.Fatalf("parseOrderBy(%q) should fail", tt.orderBy)
			}
			appErr, ok := apperror.AsAppError(err)
			if !ok || appErr.Code != apperror.CodeValidation {
				t.Errorf("expected validation error, got: %v", err)
			}
		})
	}
}

func TestBaseSelect_BuildsColumnList(t *testing.T) {
	repo := newTestRepo()

	sql, _, err := repo.baseSelect().ToSql()
	if err != nil {
		t.Fatalf("ToSql failed: %v", err)
	}

	want := "SELECT id, name, location, version FROM test_table"
	if sql != want {
		t.Errorf("SQL mismatch\nwant: %s\ngot:  %s", want, sql)
	}
}
