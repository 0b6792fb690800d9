package db

import (
	"path/filepath"
	"strconv"
	"testing"

	"github.com/dropforge/dropforge/internal/models"
)

// setupTestDB creates a temporary database with migrations applied.
func setupTestDB(t *testing.T) *DB {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.sqlite")

	d, err := New(dbPath)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if err := d.RunMigrations(); err != nil {
		t.Fatalf("RunMigrations() error = %v", err)
	}

	t.Cleanup(func() { d.Close() })
	return d
}

func testDrop(n int) models.Drop {
	return models.Drop{
		ChainID:        1,
		Standard:       "ERC20",
		TokenAddress:   "0x4444444444444444444444444444444444444444",
		RecipientCount: n,
		RequiredTotal:  strconv.Itoa(n * 100),
		Status:         models.DropStatusPrepared,
	}
}

func TestInsertAndGetDrop(t *testing.T) {
	d := setupTestDB(t)

	id, err := d.InsertDrop(testDrop(3))
	if err != nil {
		t.Fatalf("InsertDrop() error = %v", err)
	}
	if id == 0 {
		t.Fatal("InsertDrop() returned id 0")
	}

	drop, err := d.GetDrop(id)
	if err != nil {
		t.Fatalf("GetDrop() error = %v", err)
	}
	if drop == nil {
		t.Fatal("GetDrop() returned nil for existing drop")
	}
	if drop.RecipientCount != 3 || drop.RequiredTotal != "300" {
		t.Errorf("drop = %+v", drop)
	}
	if drop.Status != models.DropStatusPrepared {
		t.Errorf("status = %q, want prepared", drop.Status)
	}
	if drop.CreatedAt == "" {
		t.Error("created_at not populated")
	}
}

func TestGetDrop_NotFound(t *testing.T) {
	d := setupTestDB(t)

	drop, err := d.GetDrop(999)
	if err != nil {
		t.Fatalf("GetDrop() error = %v", err)
	}
	if drop != nil {
		t.Errorf("GetDrop(999) = %+v, want nil", drop)
	}
}

func TestUpdateDropStatus(t *testing.T) {
	d := setupTestDB(t)

	id, err := d.InsertDrop(testDrop(1))
	if err != nil {
		t.Fatalf("InsertDrop() error = %v", err)
	}

	txHash := "0xabc123"
	if err := d.UpdateDropStatus(id, models.DropStatusSubmitted, txHash); err != nil {
		t.Fatalf("UpdateDropStatus() error = %v", err)
	}

	drop, err := d.GetDrop(id)
	if err != nil {
		t.Fatalf("GetDrop() error = %v", err)
	}
	if drop.Status != models.DropStatusSubmitted || drop.TxHash != txHash {
		t.Errorf("drop = %+v", drop)
	}
}

func TestListDrops_NewestFirstWithPagination(t *testing.T) {
	d := setupTestDB(t)

	for i := 1; i <= 5; i++ {
		if _, err := d.InsertDrop(testDrop(i)); err != nil {
			t.Fatalf("InsertDrop(%d) error = %v", i, err)
		}
	}

	drops, total, err := d.ListDrops(1, 2)
	if err != nil {
		t.Fatalf("ListDrops() error = %v", err)
	}
	if total != 5 {
		t.Errorf("total = %d, want 5", total)
	}
	if len(drops) != 2 {
		t.Fatalf("got %d drops, want 2", len(drops))
	}
	// Newest first.
	if drops[0].RecipientCount != 5 || drops[1].RecipientCount != 4 {
		t.Errorf("page 1 = %d, %d", drops[0].RecipientCount, drops[1].RecipientCount)
	}

	drops, _, err = d.ListDrops(3, 2)
	if err != nil {
		t.Fatalf("ListDrops() error = %v", err)
	}
	if len(drops) != 1 || drops[0].RecipientCount != 1 {
		t.Errorf("page 3 = %+v", drops)
	}
}

func TestListDrops_DefaultsOnBadPaging(t *testing.T) {
	d := setupTestDB(t)

	if _, err := d.InsertDrop(testDrop(1)); err != nil {
		t.Fatalf("InsertDrop() error = %v", err)
	}

	drops, total, err := d.ListDrops(0, -5)
	if err != nil {
		t.Fatalf("ListDrops() error = %v", err)
	}
	if total != 1 || len(drops) != 1 {
		t.Errorf("got %d drops, total %d", len(drops), total)
	}
}
