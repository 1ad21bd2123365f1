package patient

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
)

type mockRepo struct {
	items map[uuid.UUID]*Patient
}

func newMockRepo() *mockRepo {
	return &mockRepo{items: make(map[uuid.UUID]*Patient)}
}

func (m *mockRepo) Create(_ context.Context, p *Patient) error {
	p.ID = uuid.New()
	p.CreatedAt = time.Now()
	p.UpdatedAt = time.Now()
	m.items[p.ID] = p
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, id uuid.UUID) (*Patient, error) {
	p, ok := m.items[id]
	if !ok {
		return nil, fmt.Errorf("not found")
	}
	return p, nil
}

func (m *mockRepo) Update(_ context.Context, p *Patient) error {
	m.items[p.ID] = p
	return nil
}

func (m *mockRepo) Exists(_ context.Context, id uuid.UUID) (bool, error) {
	_, ok := m.items[id]
	return ok, nil
}

func (m *mockRepo) List(_ context.Context, _ string, limit, offset int) ([]*Patient, int, error) {
	var result []*Patient
	for _, p := range m.items {
		result = append(result, p)
	}
	return result, len(result), nil
}

func TestCreatePatientRequiresName(t *testing.T) {
	svc := NewService(newMockRepo())
	if err := svc.CreatePatient(context.Background(), &Patient{}); err == nil {
		t.Error("expected error for empty name")
	}
	if err := svc.CreatePatient(context.Background(), &Patient{FirstName: "Ana"}); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestDisplayName(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)

	p := &Patient{FirstName: "Juan", LastName: "Dela Cruz"}
	if err := svc.CreatePatient(context.Background(), p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	name, err := svc.DisplayName(context.Background(), p.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if name != "Juan Dela Cruz" {
		t.Errorf("expected Juan Dela Cruz, got %q", name)
	}

	if _, err := svc.DisplayName(context.Background(), uuid.New()); err == nil {
		t.Error("expected error for unknown patient")
	}
}

func TestExists(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)

	p := &Patient{FirstName: "Ana", LastName: "Reyes"}
	if err := svc.CreatePatient(context.Background(), p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ok, err := svc.Exists(context.Background(), p.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Error("expected patient to exist")
	}

	ok, _ = svc.Exists(context.Background(), uuid.New())
	if ok {
		t.Error("expected unknown id to not exist")
	}
}
