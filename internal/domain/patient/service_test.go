package patient

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/clinicmanager/clinicmanager/internal/platform/errs"
)

type mockRepo struct {
	patients map[int64]*Patient
	nextID   int64
}

func newMockRepo() *mockRepo {
	return &mockRepo{patients: map[int64]*Patient{}, nextID: 1}
}

func (m *mockRepo) Create(ctx context.Context, p *Patient) error {
	p.ID = m.nextID
	m.nextID++
	p.CreatedAt = time.Now()
	cp := *p
	m.patients[p.ID] = &cp
	return nil
}

func (m *mockRepo) GetByID(ctx context.Context, id int64) (*Patient, error) {
	p, ok := m.patients[id]
	if !ok {
		return nil, errs.NotFoundf("patient %d not found", id)
	}
	cp := *p
	return &cp, nil
}

func (m *mockRepo) GetByIdentification(ctx context.Context, identification string) (*Patient, error) {
	for _, p := range m.patients {
		if p.Identification == identification {
			cp := *p
			return &cp, nil
		}
	}
	return nil, errs.NotFoundf("patient with identification %s not found", identification)
}

func (m *mockRepo) Update(ctx context.Context, p *Patient) error {
	if _, ok := m.patients[p.ID]; !ok {
		return errs.NotFoundf("patient %d not found", p.ID)
	}
	cp := *p
	m.patients[p.ID] = &cp
	return nil
}

func (m *mockRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := m.patients[id]; !ok {
		return errs.NotFoundf("patient %d not found", id)
	}
	delete(m.patients, id)
	return nil
}

func (m *mockRepo) List(ctx context.Context, f Filter, limit, offset int) ([]*Patient, int, error) {
	var out []*Patient
	for _, p := range m.patients {
		cp := *p
		out = append(out, &cp)
	}
	return out, len(out), nil
}

func TestAdd_Succeeds(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)

	p := &Patient{FullName: "Ana Silva", Identification: "A-100"}
	if err := svc.Add(context.Background(), p); err != nil {
		t.Fatalf("Add() error: %v", err)
	}
	if p.ID == 0 {
		t.Error("expected an assigned id")
	}
}

func TestAdd_DuplicateIdentificationConflicts(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)

	if err := svc.Add(context.Background(), &Patient{FullName: "Ana", Identification: "A-100"}); err != nil {
		t.Fatalf("first Add() error: %v", err)
	}
	err := svc.Add(context.Background(), &Patient{FullName: "Impostor", Identification: "A-100"})
	if !errors.Is(err, errs.ErrConflict) {
		t.Fatalf("expected conflict for duplicate identification, got %v", err)
	}

	// Distinct identification still succeeds
	if err := svc.Add(context.Background(), &Patient{FullName: "Bruno", Identification: "B-200"}); err != nil {
		t.Fatalf("Add() with distinct identification error: %v", err)
	}
}

func TestAdd_RequiredFields(t *testing.T) {
	svc := NewService(newMockRepo())

	if err := svc.Add(context.Background(), &Patient{Identification: "A-100"}); !errors.Is(err, errs.ErrInvalid) {
		t.Errorf("expected invalid without fullName, got %v", err)
	}
	if err := svc.Add(context.Background(), &Patient{FullName: "Ana"}); !errors.Is(err, errs.ErrInvalid) {
		t.Errorf("expected invalid without identification, got %v", err)
	}
}

func TestUpdate_PatchPreservesUntouchedFields(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)

	dob := time.Date(1990, 5, 20, 0, 0, 0, 0, time.UTC)
	p := &Patient{FullName: "Ana Silva", Identification: "A-100", Phone: "555-0100", Email: "ana@x.test", DateOfBirth: dob}
	if err := svc.Add(context.Background(), p); err != nil {
		t.Fatalf("Add() error: %v", err)
	}

	newPhone := "555-0199"
	updated, err := svc.Update(context.Background(), p.ID, UpdateInput{Phone: &newPhone})
	if err != nil {
		t.Fatalf("Update() error: %v", err)
	}
	if updated.Phone != newPhone {
		t.Errorf("expected phone %q, got %q", newPhone, updated.Phone)
	}
	if updated.FullName != "Ana Silva" || updated.Email != "ana@x.test" || !updated.DateOfBirth.Equal(dob) {
		t.Error("expected untouched fields to survive the patch")
	}
	if updated.Identification != "A-100" {
		t.Error("identification must not change on update")
	}

	// Round-trip through GetById
	got, err := svc.Get(context.Background(), p.ID)
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if got.Phone != newPhone || got.FullName != "Ana Silva" {
		t.Error("expected the stored patient to match the patched result")
	}
}

func TestUpdate_MissingTarget(t *testing.T) {
	svc := NewService(newMockRepo())

	name := "Ghost"
	_, err := svc.Update(context.Background(), 42, UpdateInput{FullName: &name})
	if !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestGetByIdentification(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)

	p := &Patient{FullName: "Ana", Identification: "A-100"}
	if err := svc.Add(context.Background(), p); err != nil {
		t.Fatalf("Add() error: %v", err)
	}

	got, err := svc.GetByIdentification(context.Background(), "A-100")
	if err != nil {
		t.Fatalf("GetByIdentification() error: %v", err)
	}
	if got.ID != p.ID {
		t.Errorf("expected patient %d, got %d", p.ID, got.ID)
	}

	if _, err := svc.GetByIdentification(context.Background(), "Z-999"); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("expected not found for unknown identification, got %v", err)
	}
}

func TestDelete_TwiceFails(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)

	p := &Patient{FullName: "Ana", Identification: "A-100"}
	if err := svc.Add(context.Background(), p); err != nil {
		t.Fatalf("Add() error: %v", err)
	}

	if err := svc.Delete(context.Background(), p.ID); err != nil {
		t.Fatalf("first delete: %v", err)
	}
	if err := svc.Delete(context.Background(), p.ID); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("expected not found on second delete, got %v", err)
	}
}
