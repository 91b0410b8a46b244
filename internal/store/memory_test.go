package store

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

func TestNewMemoryStore(t *testing.T) {
	s := NewMemoryStore()
	if s == nil {
		t.Fatal("NewMemoryStore() = nil")
	}
	if len(s.All()) != 0 {
		t.Errorf("All() = %v items, want 0", len(s.All()))
	}
}

func TestMemoryStore_Record(t *testing.T) {
	s := NewMemoryStore()

	s.Record(PushRecord{
		WidgetKey:  "w1",
		Kind:       "funnel",
		Success:    true,
		StatusCode: 200,
		PushedAt:   time.Now(),
	})

	rec, ok := s.Get("w1")
	if !ok {
		t.Fatal("Get(w1) ok = false, want true")
	}
	if rec.Kind != "funnel" {
		t.Errorf("Kind = %q, want funnel", rec.Kind)
	}
	if !rec.Success {
		t.Error("Success = false, want true")
	}

	if _, ok := s.Get("missing"); ok {
		t.Error("Get(missing) ok = true, want false")
	}
}

func TestMemoryStore_RecordOverwrites(t *testing.T) {
	s := NewMemoryStore()
	msg := "boom"

	s.Record(PushRecord{WidgetKey: "w1", Success: true})
	s.Record(PushRecord{WidgetKey: "w1", Success: false, Error: &msg})

	all := s.All()
	if len(all) != 1 {
		t.Fatalf("All() = %v items, want 1", len(all))
	}
	if all[0].Success {
		t.Error("Success = true, want false after overwrite")
	}
	if all[0].Error == nil || *all[0].Error != "boom" {
		t.Errorf("Error = %v, want boom", all[0].Error)
	}
}

func TestMemoryStore_AllPreservesFirstSeenOrder(t *testing.T) {
	s := NewMemoryStore()
	for _, key := range []string{"c", "a", "b", "a", "c"} {
		s.Record(PushRecord{WidgetKey: key})
	}

	all := s.All()
	want := []string{"c", "a", "b"}
	if len(all) != len(want) {
		t.Fatalf("All() = %v items, want %d", len(all), len(want))
	}
	for i, key := range want {
		if all[i].WidgetKey != key {
			t.Errorf("All()[%d].WidgetKey = %q, want %q", i, all[i].WidgetKey, key)
		}
	}
}

func TestMemoryStore_ConcurrentRecord(t *testing.T) {
	s := NewMemoryStore()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s.Record(PushRecord{WidgetKey: fmt.Sprintf("w%d", i%10)})
			_ = s.All()
		}(i)
	}
	wg.Wait()

	if got := len(s.All()); got != 10 {
		t.Errorf("All() = %d items, want 10", got)
	}
}
