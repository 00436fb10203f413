package repo

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestAuditRepo_Log(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectExec(`INSERT INTO audit_log`).
		WithArgs(testUserID, "delete", "recipe", testRecipeID, "").
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := NewAuditRepo(db).Log(context.Background(), testUserID, "delete", "recipe", testRecipeID, ""); err != nil {
		t.Fatalf("Log: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestAuditRepo_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`SELECT id, user_id, action, resource_type, resource_id`).
		WithArgs(50, 0).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "action", "resource_type", "resource_id", "details", "created_at"}).
			AddRow(3, testUserID, "create", "recipe", testRecipeID, "", time.Now()))

	entries, err := NewAuditRepo(db).List(context.Background(), 50, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 1 || entries[0].ID != "3" || entries[0].Action != "create" {
		t.Errorf("unexpected entries: %+v", entries)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}
