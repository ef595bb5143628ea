package shared

import (
	"testing"
)

func TestMigrations(t *testing.T) {
	t.Run("Load", func(t *testing.T) {
		migrations, err := loadMigrations()
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(migrations) == 0 {
			t.Fatal("expected at least one migration")
		}

		for i, m := range migrations {
			if m.Up == "" || m.Down == "" {
				t.Errorf("migration %d incomplete", m.Version)
			}
			if i > 0 && migrations[i-1].Version >= m.Version {
				t.Error("expected migrations sorted by version")
			}
		}
	})

	t.Run("Run Creates Schema", func(t *testing.T) {
		db, err := NewDatabase(":memory:")
		if err != nil {
			t.Fatalf("failed to open database: %v", err)
		}
		t.Cleanup(func() { db.Close() })

		if err := RunMigrations(db); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if _, err := db.Exec("INSERT INTO auth_state (key, value) VALUES ('k', 'v')"); err != nil {
			t.Errorf("expected auth_state table to exist, got %v", err)
		}

		var version int
		if err := db.QueryRow("SELECT MAX(version) FROM schema_migrations").Scan(&version); err != nil {
			t.Errorf("expected schema_migrations to be populated, got %v", err)
		}
	})

	t.Run("Run Is Idempotent", func(t *testing.T) {
		db, err := NewDatabase(":memory:")
		if err != nil {
			t.Fatalf("failed to open database: %v", err)
		}
		t.Cleanup(func() { db.Close() })

		if err := RunMigrations(db); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if err := RunMigrations(db); err != nil {
			t.Fatalf("expected rerun to be a no-op, got %v", err)
		}

		var count int
		if err := db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&count); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		migrations, _ := loadMigrations()
		if count != len(migrations) {
			t.Errorf("expected %d applied migrations, got %d", len(migrations), count)
		}
	})

	t.Run("Rollback", func(t *testing.T) {
		db, err := NewDatabase(":memory:")
		if err != nil {
			t.Fatalf("failed to open database: %v", err)
		}
		t.Cleanup(func() { db.Close() })

		if err := RunMigrations(db); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if err := RollbackMigration(db); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if _, err := db.Exec("INSERT INTO auth_state (key, value) VALUES ('k', 'v')"); err == nil {
			t.Error("expected auth_state table to be dropped")
		}
	})

	t.Run("Rollback With Nothing Applied", func(t *testing.T) {
		db, err := NewDatabase(":memory:")
		if err != nil {
			t.Fatalf("failed to open database: %v", err)
		}
		t.Cleanup(func() { db.Close() })

		if err := RollbackMigration(db); err == nil {
			t.Error("expected error when no migrations are applied")
		}
	})
}

func TestRemoveComments(t *testing.T) {
	in := "CREATE TABLE t ( -- trailing comment\n  id INTEGER -- another\n)"
	out := removeComments(in)

	if out != "CREATE TABLE t (\nid INTEGER\n)" {
		t.Errorf("unexpected result: %q", out)
	}
}
