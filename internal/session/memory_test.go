package session

import (
	"bytes"
	"testing"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore()
	if _, ok := store.Get("missing"); ok {
		t.Fatalf("expected absent key")
	}
	if err := store.Set("a", []byte(`{"x":1}`)); err != nil {
		t.Fatalf("set: %v", err)
	}
	payload, ok := store.Get("a")
	if !ok || !bytes.Equal(payload, []byte(`{"x":1}`)) {
		t.Fatalf("get = %q, %v", payload, ok)
	}
	if err := store.Remove("a"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, ok := store.Get("a"); ok {
		t.Fatalf("expected removed key to be absent")
	}
	if err := store.Remove("a"); err != nil {
		t.Fatalf("removing an absent key should not error: %v", err)
	}
}

func TestMemoryStoreGetReturnsCopy(t *testing.T) {
	store := NewMemoryStore()
	if err := store.Set("a", []byte("abc")); err != nil {
		t.Fatalf("set: %v", err)
	}
	payload, _ := store.Get("a")
	payload[0] = 'z'
	again, _ := store.Get("a")
	if string(again) != "abc" {
		t.Fatalf("stored payload mutated through returned slice")
	}
}

func TestMemoryStoreClearAndKeys(t *testing.T) {
	store := NewMemoryStore()
	_ = store.Set("b", []byte("2"))
	_ = store.Set("a", []byte("1"))
	keys := store.Keys()
	if len(keys) != 2 || keys[0] != "a" || keys[1] != "b" {
		t.Fatalf("keys = %v, want [a b]", keys)
	}
	if err := store.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if len(store.Keys()) != 0 {
		t.Fatalf("expected empty store after clear")
	}
}

func TestMemoryStoreSnapshotRestore(t *testing.T) {
	store := NewMemoryStore()
	_ = store.Set("a", []byte("1"))
	snapshot := store.Snapshot()
	_ = store.Clear()
	store.Restore(snapshot)
	payload, ok := store.Get("a")
	if !ok || string(payload) != "1" {
		t.Fatalf("restore lost payload: %q, %v", payload, ok)
	}
}
