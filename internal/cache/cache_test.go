package cache

import (
	"testing"
	"time"
)

func TestKey(t *testing.T) {
	a := Key("hosting", "alice")
	b := Key("hosting", "bob")
	c := Key("portfolio", "alice")

	if a == b || a == c {
		t.Error("keys must differ per kind and target")
	}
	if a != Key("hosting", "alice") {
		t.Error("keys must be stable")
	}
}

func TestMemory(t *testing.T) {
	m := NewMemory(time.Minute, 0)

	if _, ok := m.Get("missing"); ok {
		t.Error("missing key reported present")
	}

	m.Set("k", []byte("v"), time.Minute)
	if got, ok := m.Get("k"); !ok || string(got) != "v" {
		t.Errorf("Get = %q, %v", got, ok)
	}

	m.Delete("k")
	if _, ok := m.Get("k"); ok {
		t.Error("deleted key reported present")
	}

	m.Set("a", []byte("1"), time.Minute)
	m.Set("b", []byte("2"), time.Minute)
	m.Clear()
	if _, ok := m.Get("a"); ok {
		t.Error("cleared key reported present")
	}
}

func TestMemory_TTL(t *testing.T) {
	m := NewMemory(time.Minute, 0)
	m.Set("k", []byte("v"), 20*time.Millisecond)

	time.Sleep(50 * time.Millisecond)
	if _, ok := m.Get("k"); ok {
		t.Error("expired key reported present")
	}
}
