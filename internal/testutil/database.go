package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"testing"

	_ "github.com/go-sql-driver/mysql"

	"littlelemon/internal/domain"
	"littlelemon/internal/infrastructure/mysql"
)

// SetupTestDB opens the integration test database. It expects a MySQL server
// on localhost:3306 with a 'littlelemon_test' database, or the DSN in
// TEST_DATABASE_DSN, and skips the test when the server is unreachable.
func SetupTestDB(t *testing.T) *sql.DB {
	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		dsn = "root:@tcp(localhost:3306)/littlelemon_test?parseTime=true"
	}

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.Ping(); err != nil {
		t.Skipf("test database not available: %v", err)
	}

	return db
}

// SetupTestTables creates the schema if it does not exist yet.
func SetupTestTables(t *testing.T, db *sql.DB) {
	if err := mysql.Migrate(context.Background(), db); err != nil {
		t.Fatalf("failed to create tables: %v", err)
	}
}

// CleanupTestDB empties every table, children first, and closes db.
func CleanupTestDB(t *testing.T, db *sql.DB) {
	if db == nil {
		return
	}

	for i := len(mysql.Tables) - 1; i >= 0; i-- {
		table := mysql.Tables[i].Name
		if _, err := db.Exec(fmt.Sprintf("DELETE FROM %s", table)); err != nil {
			t.Logf("failed to clean table %s: %v", table, err)
		}
	}

	db.Close()
}

// InsertUser creates a user with the given group memberships and returns its id.
func InsertUser(t *testing.T, db *sql.DB, username string, roles ...domain.Role) int {
	result, err := db.Exec(`INSERT INTO Users (username, email, passwordHash) VALUES (?, ?, 'x')`, username, username+"@littlelemon.test")
	if err != nil {
		t.Fatalf("failed to insert user %s: %v", username, err)
	}
	id, _ := result.LastInsertId()

	for _, role := range roles {
		if _, err := db.Exec(`INSERT INTO UserGroups (userId, groupName) VALUES (?, ?)`, id, string(role)); err != nil {
			t.Fatalf("failed to add %s to %s: %v", username, role, err)
		}
	}

	return int(id)
}

func InsertCategory(t *testing.T, db *sql.DB, slug, title string) int {
	result, err := db.Exec(`INSERT INTO Categories (slug, title) VALUES (?, ?)`, slug, title)
	if err != nil {
		t.Fatalf("failed to insert category %s: %v", slug, err)
	}
	id, _ := result.LastInsertId()
	return int(id)
}

func InsertMenuItem(t *testing.T, db *sql.DB, title, price string, categoryID int) int {
	result, err := db.Exec(`INSERT INTO MenuItems (title, price, featured, categoryId) VALUES (?, ?, 0, ?)`, title, price, categoryID)
	if err != nil {
		t.Fatalf("failed to insert menu item %s: %v", title, err)
	}
	id, _ := result.LastInsertId()
	return int(id)
}
