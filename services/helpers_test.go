package services

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/GatherPoint/store"
	"github.com/doug-martin/goqu/v9"
)

// setupTestStore creates a sqlmock-backed store for service tests
func setupTestStore(t *testing.T) (*store.Store, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to create sqlmock: %v", err)
	}

	goquDB := goqu.New("postgres", db)

	cleanup := func() {
		db.Close()
	}

	return store.New(goquDB), mock, cleanup
}
