package store

import (
	"path/filepath"
	"testing"
)

func openTemp(t *testing.T) *KV {
	t.Helper()
	kv, err := Open(filepath.Join(t.TempDir(), "nested", "test.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = kv.Close() })
	return kv
}

func TestGetMissingKey(t *testing.T) {
	kv := openTemp(t)

	v, ok, err := kv.Get("Items")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ok || v != "" {
		t.Fatalf("Get(missing) = %q, %v; want \"\", false", v, ok)
	}
}

func TestSetReplaces(t *testing.T) {
	kv := openTemp(t)

	if err := kv.Set("TotalBudget", "100"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := kv.Set("TotalBudget", "250.5"); err != nil {
		t.Fatalf("Set: %v", err)
	}

	v, ok, err := kv.Get("TotalBudget")
	if err != nil || !ok {
		t.Fatalf("Get = %q, %v, %v", v, ok, err)
	}
	if v != "250.5" {
		t.Fatalf("value = %q, want 250.5", v)
	}

	if _, ok, _ := kv.UpdatedAt("TotalBudget"); !ok {
		t.Fatal("UpdatedAt reported key absent")
	}
}

func TestDeleteAndKeys(t *testing.T) {
	kv := openTemp(t)

	for _, k := range []string{"b", "a", "c"} {
		if err := kv.Set(k, k); err != nil {
			t.Fatalf("Set(%s): %v", k, err)
		}
	}
	if err := kv.Delete("b"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := kv.Delete("missing"); err != nil {
		t.Fatalf("Delete(missing): %v", err)
	}

	keys, err := kv.Keys()
	if err != nil {
		t.Fatalf("Keys: %v", err)
	}
	if len(keys) != 2 || keys[0] != "a" || keys[1] != "c" {
		t.Fatalf("Keys = %v, want [a c]", keys)
	}
}

func TestReopenPersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "persist.db")

	kv, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := kv.Set("Items", "[]"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	_ = kv.Close()

	kv, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer func() { _ = kv.Close() }()

	v, ok, err := kv.Get("Items")
	if err != nil || !ok || v != "[]" {
		t.Fatalf("after reopen Get = %q, %v, %v; want \"[]\", true, nil", v, ok, err)
	}
}
