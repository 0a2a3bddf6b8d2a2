package store

import (
	"context"
	"errors"
	"testing"

	"github.com/qsketch/qsketch/pkg/source"
)

func bellDocument() source.Document {
	return source.Document{
		Name:  "bell",
		QBits: 2,
		CBits: 2,
		Ops: []source.OpSpec{
			{Type: "gate", Gate: "h", Bits: []int{0}},
			{Type: "gate", Gate: "cx", Bits: []int{0, 1}},
		},
	}
}

func TestMemoryStorePutAssignsID(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	defer s.Close(ctx)

	rec := &Record{Name: "bell", Circuit: bellDocument()}
	if err := s.Put(ctx, rec); err != nil {
		t.Fatalf("Put() error: %v", err)
	}
	if rec.ID == "" {
		t.Fatal("Put() did not assign an ID")
	}
	if rec.CreatedAt.IsZero() || rec.UpdatedAt.IsZero() {
		t.Error("Put() did not set timestamps")
	}

	got, err := s.Get(ctx, rec.ID)
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if got.Name != "bell" {
		t.Errorf("Name = %q, want %q", got.Name, "bell")
	}
	if got.Circuit.QBits != 2 {
		t.Errorf("Circuit.QBits = %d, want 2", got.Circuit.QBits)
	}
}

func TestMemoryStoreUpdateKeepsCreatedAt(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	defer s.Close(ctx)

	rec := &Record{Name: "bell", Circuit: bellDocument()}
	if err := s.Put(ctx, rec); err != nil {
		t.Fatalf("Put() error: %v", err)
	}
	created := rec.CreatedAt

	rec.Name = "bell-v2"
	if err := s.Put(ctx, rec); err != nil {
		t.Fatalf("Put() update error: %v", err)
	}

	got, err := s.Get(ctx, rec.ID)
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if got.Name != "bell-v2" {
		t.Errorf("Name = %q, want %q", got.Name, "bell-v2")
	}
	if !got.CreatedAt.Equal(created) {
		t.Errorf("CreatedAt changed on update: %v -> %v", created, got.CreatedAt)
	}
}

func TestMemoryStoreGetMissing(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	defer s.Close(ctx)

	if _, err := s.Get(ctx, "nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() error = %v, want %v", err, ErrNotFound)
	}
}

func TestMemoryStoreList(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	defer s.Close(ctx)

	for _, name := range []string{"a", "b", "c"} {
		if err := s.Put(ctx, &Record{Name: name, Circuit: bellDocument()}); err != nil {
			t.Fatalf("Put() error: %v", err)
		}
	}

	records, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("len(List()) = %d, want 3", len(records))
	}
	for i := 1; i < len(records); i++ {
		if records[i].CreatedAt.Before(records[i-1].CreatedAt) {
			t.Error("List() not ordered by creation time")
		}
	}
}

func TestMemoryStoreDelete(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	defer s.Close(ctx)

	rec := &Record{Name: "bell", Circuit: bellDocument()}
	if err := s.Put(ctx, rec); err != nil {
		t.Fatalf("Put() error: %v", err)
	}
	if err := s.Delete(ctx, rec.ID); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}
	if _, err := s.Get(ctx, rec.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() after delete error = %v, want %v", err, ErrNotFound)
	}
	if err := s.Delete(ctx, rec.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Delete() of missing record error = %v, want %v", err, ErrNotFound)
	}
}
