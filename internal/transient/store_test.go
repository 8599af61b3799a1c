package transient

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func TestKey(t *testing.T) {
	k1 := Key("https://api.example.com/v1/space/visuals")
	k2 := Key("https://api.example.com/v1/space/magnetosphere")

	if k1 == k2 {
		t.Error("different URLs must hash to different keys")
	}
	if k1[:3] != "ge_" {
		t.Errorf("key missing ge_ prefix: %q", k1)
	}
	if len(k1) != 3+32 {
		t.Errorf("key should be prefix plus 32 hex chars, got %q", k1)
	}
	if k1 != Key("https://api.example.com/v1/space/visuals") {
		t.Error("key derivation must be deterministic")
	}
}

func TestMemoryStoreFreshAndStale(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	current := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return current }

	if err := store.Set(ctx, "ge_test", []byte(`{"kp":4}`), 5*time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	value, fresh, err := store.Get(ctx, "ge_test")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !fresh {
		t.Error("entry within TTL must be fresh")
	}
	if string(value) != `{"kp":4}` {
		t.Errorf("unexpected value: %s", value)
	}

	// Past the TTL the value is still returned, marked stale
	current = current.Add(6 * time.Minute)
	value, fresh, err = store.Get(ctx, "ge_test")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if fresh {
		t.Error("entry past TTL must not be fresh")
	}
	if string(value) != `{"kp":4}` {
		t.Error("stale value must remain readable")
	}
}

func TestMemoryStoreMissAndDelete(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	if value, fresh, _ := store.Get(ctx, "ge_missing"); value != nil || fresh {
		t.Error("missing key must report nil, not fresh")
	}

	store.Set(ctx, "ge_gone", []byte("x"), time.Minute)
	store.Delete(ctx, "ge_gone")
	if value, _, _ := store.Get(ctx, "ge_gone"); value != nil {
		t.Error("deleted key must be gone")
	}
}

func TestSQLiteStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "cache.db")

	store, err := NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("NewSQLiteStore failed: %v", err)
	}
	defer store.Close()

	current := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return current }

	if err := store.Set(ctx, "ge_abc", []byte(`{"r0_re":9.8}`), 5*time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	value, fresh, err := store.Get(ctx, "ge_abc")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !fresh || string(value) != `{"r0_re":9.8}` {
		t.Errorf("round trip failed: fresh=%v value=%s", fresh, value)
	}

	// Overwrite replaces the previous row
	if err := store.Set(ctx, "ge_abc", []byte(`{"r0_re":8.1}`), 5*time.Minute); err != nil {
		t.Fatalf("overwrite failed: %v", err)
	}
	value, _, _ = store.Get(ctx, "ge_abc")
	if string(value) != `{"r0_re":8.1}` {
		t.Errorf("overwrite not applied, got %s", value)
	}

	// Expired entries stay readable as stale
	current = current.Add(time.Hour)
	value, fresh, err = store.Get(ctx, "ge_abc")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if fresh {
		t.Error("expired row must not be fresh")
	}
	if value == nil {
		t.Error("expired row must still serve stale value")
	}
}

func TestSQLiteStoreMissAndDelete(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "cache.db")

	store, err := NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("NewSQLiteStore failed: %v", err)
	}
	defer store.Close()

	if value, fresh, err := store.Get(ctx, "ge_nope"); err != nil || value != nil || fresh {
		t.Errorf("missing key: value=%v fresh=%v err=%v", value, fresh, err)
	}

	store.Set(ctx, "ge_gone", []byte("x"), time.Minute)
	if err := store.Delete(ctx, "ge_gone"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if value, _, _ := store.Get(ctx, "ge_gone"); value != nil {
		t.Error("deleted key must be gone")
	}
}
