package memory

import (
	"context"
	"errors"
	"testing"

	"salary-benchmark-lab/internal/domain"
	"salary-benchmark-lab/internal/storage"
)

func TestPositionStore_InsertAndGet(t *testing.T) {
	store := NewPositionStore()
	ctx := context.Background()

	pos := &domain.TargetPosition{
		PositionID:  "pos-1",
		Name:        "Backend Engineer",
		Category:    "Engineering",
		Keywords:    []string{"go", "backend"},
		Competitors: []string{"Acme", "Globex"},
		CreatedAt:   1700000000000,
	}

	if err := store.Insert(ctx, pos); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	got, err := store.GetByID(ctx, "pos-1")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Name != "Backend Engineer" {
		t.Errorf("Name mismatch: got %q", got.Name)
	}
	if len(got.Competitors) != 2 {
		t.Errorf("Competitors mismatch: got %v", got.Competitors)
	}
}

func TestPositionStore_DuplicateKey(t *testing.T) {
	store := NewPositionStore()
	ctx := context.Background()

	pos := &domain.TargetPosition{PositionID: "pos-1", Name: "Backend Engineer"}

	if err := store.Insert(ctx, pos); err != nil {
		t.Fatalf("First insert failed: %v", err)
	}

	err := store.Insert(ctx, pos)
	if !errors.Is(err, storage.ErrDuplicateKey) {
		t.Errorf("Expected ErrDuplicateKey, got %v", err)
	}
}

func TestPositionStore_NotFound(t *testing.T) {
	store := NewPositionStore()

	_, err := store.GetByID(context.Background(), "nonexistent")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestPositionStore_GetAllPreservesInsertionOrder(t *testing.T) {
	store := NewPositionStore()
	ctx := context.Background()

	ids := []string{"pos-c", "pos-a", "pos-b"}
	for _, id := range ids {
		if err := store.Insert(ctx, &domain.TargetPosition{PositionID: id, Name: id}); err != nil {
			t.Fatalf("Insert %s failed: %v", id, err)
		}
	}

	all, err := store.GetAll(ctx)
	if err != nil {
		t.Fatalf("GetAll failed: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 positions, got %d", len(all))
	}
	for i, id := range ids {
		if all[i].PositionID != id {
			t.Errorf("position %d: expected %s, got %s", i, id, all[i].PositionID)
		}
	}
}

func TestPositionStore_ReturnsCopies(t *testing.T) {
	store := NewPositionStore()
	ctx := context.Background()

	pos := &domain.TargetPosition{
		PositionID: "pos-1",
		Name:       "Backend Engineer",
		Keywords:   []string{"go"},
	}
	if err := store.Insert(ctx, pos); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	got, _ := store.GetByID(ctx, "pos-1")
	got.Name = "mutated"
	got.Keywords[0] = "mutated"

	again, _ := store.GetByID(ctx, "pos-1")
	if again.Name != "Backend Engineer" || again.Keywords[0] != "go" {
		t.Errorf("store contents were mutated through returned copy: %+v", again)
	}
}

func TestPositionStore_InvalidInput(t *testing.T) {
	store := NewPositionStore()
	ctx := context.Background()

	if err := store.Insert(ctx, nil); !errors.Is(err, storage.ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput for nil, got %v", err)
	}
	if err := store.Insert(ctx, &domain.TargetPosition{}); !errors.Is(err, storage.ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput for empty ID, got %v", err)
	}
}
