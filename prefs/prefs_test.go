package prefs

import (
	"fmt"
	"testing"
	"time"
)

func TestMemoryStore(t *testing.T) {
	var m Memory
	if _, ok, _ := m.Load("bg"); ok {
		t.Fatal("expected empty store")
	}
	if err := m.Save("bg", "canyon"); err != nil {
		t.Fatalf("save: %v", err)
	}
	v, ok, err := m.Load("bg")
	if err != nil || !ok || v != "canyon" {
		t.Errorf("expected canyon, got %q ok=%v err=%v", v, ok, err)
	}
}

func TestGdataStoreNilManager(t *testing.T) {
	s := NewGdataStore(nil)
	if err := s.Save("bg", "minimal"); err != nil {
		t.Fatalf("save: %v", err)
	}
	v, ok, err := s.Load("bg")
	if err != nil || !ok || v != "minimal" {
		t.Errorf("expected minimal, got %q ok=%v err=%v", v, ok, err)
	}
}

func TestGdataStoreRoundTrip(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("XDG_DATA_HOME", "")

	appName := fmt.Sprintf("backdrop_test_%d", time.Now().UnixNano())
	s, err := Open(appName)
	if err != nil {
		t.Skipf("gdata unavailable: %v", err)
	}

	if _, ok, err := s.Load("yannikApps_bg"); err != nil || ok {
		t.Fatalf("expected no stored value, got ok=%v err=%v", ok, err)
	}
	if err := s.Save("yannikApps_bg", "cyberpunk"); err != nil {
		t.Fatalf("save: %v", err)
	}

	reopened, err := Open(appName)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	v, ok, err := reopened.Load("yannikApps_bg")
	if err != nil || !ok || v != "cyberpunk" {
		t.Errorf("expected cyberpunk after reopen, got %q ok=%v err=%v", v, ok, err)
	}
}
