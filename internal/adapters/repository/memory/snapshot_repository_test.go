package memory

import (
	"errors"
	"sync"
	"testing"

	"minebench/internal/core/domain"
	coreerrors "minebench/internal/core/errors"
)

func snapshot(gen uint64) domain.Snapshot {
	return domain.Snapshot{ID: "snap", View: "dashboard", Generation: gen}
}

func TestApply_FirstSnapshotIsStored(t *testing.T) {
	repo := NewSnapshotRepository()

	if !repo.Apply(snapshot(1)) {
		t.Fatalf("expected first snapshot to be applied")
	}

	got, err := repo.GetSnapshot("dashboard")
	if err != nil {
		t.Fatalf("GetSnapshot returned error: %v", err)
	}
	if got.Generation != 1 {
		t.Fatalf("expected generation 1, got %d", got.Generation)
	}
	if repo.Count() != 1 {
		t.Fatalf("expected 1 stored view, got %d", repo.Count())
	}
}

// A slow refresh (generation 1) finishing after a fast one (generation 2)
// must not replace it.
func TestApply_OlderGenerationIsSuppressed(t *testing.T) {
	repo := NewSnapshotRepository()

	if !repo.Apply(snapshot(2)) {
		t.Fatalf("expected generation 2 to be applied")
	}
	if repo.Apply(snapshot(1)) {
		t.Fatalf("expected generation 1 to be suppressed")
	}
	if repo.Apply(snapshot(2)) {
		t.Fatalf("expected a repeated generation to be suppressed")
	}

	got, _ := repo.GetSnapshot("dashboard")
	if got.Generation != 2 {
		t.Fatalf("expected generation 2 to remain, got %d", got.Generation)
	}
}

func TestInvalidate_ClearsOnlyWhenNewer(t *testing.T) {
	repo := NewSnapshotRepository()
	repo.Apply(snapshot(3))

	if repo.Invalidate("dashboard", 2) {
		t.Fatalf("expected an older failure not to clear a newer snapshot")
	}
	if _, err := repo.GetSnapshot("dashboard"); err != nil {
		t.Fatalf("expected snapshot to survive, got %v", err)
	}

	if !repo.Invalidate("dashboard", 4) {
		t.Fatalf("expected a newer failure to clear the snapshot")
	}
	if _, err := repo.GetSnapshot("dashboard"); !errors.Is(err, coreerrors.ErrSnapshotNotFound) {
		t.Fatalf("expected ErrSnapshotNotFound, got %v", err)
	}
	if repo.Apply(snapshot(3)) {
		t.Fatalf("expected generation 3 to stay suppressed after generation 4 failed")
	}
}

func TestGetSnapshot_UnknownView(t *testing.T) {
	repo := NewSnapshotRepository()

	if _, err := repo.GetSnapshot("nope"); !errors.Is(err, coreerrors.ErrSnapshotNotFound) {
		t.Fatalf("expected ErrSnapshotNotFound, got %v", err)
	}
}

func TestGetSnapshot_ReturnsCopy(t *testing.T) {
	repo := NewSnapshotRepository()
	repo.Apply(snapshot(1))

	got, _ := repo.GetSnapshot("dashboard")
	got.ID = "mutated"

	again, _ := repo.GetSnapshot("dashboard")
	if again.ID != "snap" {
		t.Fatalf("expected stored snapshot to be unaffected, got %q", again.ID)
	}
}

func TestApply_ConcurrentKeepsHighestGeneration(t *testing.T) {
	repo := NewSnapshotRepository()

	var wg sync.WaitGroup
	for i := 1; i <= 100; i++ {
		wg.Add(1)
		go func(gen uint64) {
			defer wg.Done()
			repo.Apply(snapshot(gen))
		}(uint64(i))
	}
	wg.Wait()

	got, err := repo.GetSnapshot("dashboard")
	if err != nil {
		t.Fatalf("GetSnapshot returned error: %v", err)
	}
	if got.Generation != 100 {
		t.Fatalf("expected generation 100, got %d", got.Generation)
	}
}
