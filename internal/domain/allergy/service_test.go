package allergy

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/clinicmanager/clinicmanager/internal/domain/user"
	"github.com/clinicmanager/clinicmanager/internal/platform/errs"
)

type mockRepo struct {
	allergies map[int64]*Allergy
	nextID    int64
}

func newMockRepo() *mockRepo {
	return &mockRepo{allergies: map[int64]*Allergy{}, nextID: 1}
}

func (m *mockRepo) Create(ctx context.Context, a *Allergy) error {
	a.ID = m.nextID
	m.nextID++
	a.CreatedAt = time.Now()
	a.UpdatedAt = a.CreatedAt
	cp := *a
	m.allergies[a.ID] = &cp
	return nil
}

func (m *mockRepo) GetByID(ctx context.Context, id int64) (*Allergy, error) {
	a, ok := m.allergies[id]
	if !ok {
		return nil, errs.NotFoundf("allergy %d not found", id)
	}
	cp := *a
	return &cp, nil
}

func (m *mockRepo) Update(ctx context.Context, a *Allergy) error {
	if _, ok := m.allergies[a.ID]; !ok {
		return errs.NotFoundf("allergy %d not found", a.ID)
	}
	a.UpdatedAt = time.Now()
	cp := *a
	m.allergies[a.ID] = &cp
	return nil
}

func (m *mockRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := m.allergies[id]; !ok {
		return errs.NotFoundf("allergy %d not found", id)
	}
	delete(m.allergies, id)
	return nil
}

func (m *mockRepo) List(ctx context.Context, f Filter, limit, offset int) ([]*Allergy, int, error) {
	var out []*Allergy
	for _, a := range m.allergies {
		if f.Name != "" && !strings.Contains(strings.ToLower(a.Name), strings.ToLower(f.Name)) {
			continue
		}
		cp := *a
		out = append(out, &cp)
	}
	return out, len(out), nil
}

func TestAddRoleGates(t *testing.T) {
	svc := NewService(newMockRepo())
	ctx := context.Background()

	a := &Allergy{Name: "Penicillin"}
	if err := svc.Add(ctx, user.RoleAssistant, a); !errors.Is(err, errs.ErrForbidden) {
		t.Errorf("assistant: err = %v, want forbidden", err)
	}

	for _, role := range []string{user.RoleAdmin, user.RoleDoctor} {
		a := &Allergy{Name: "Penicillin " + role}
		if err := svc.Add(ctx, role, a); err != nil {
			t.Errorf("role %s: %v", role, err)
		}
	}
}

func TestAddValidatesInput(t *testing.T) {
	svc := NewService(newMockRepo())
	ctx := context.Background()

	cases := []struct {
		name string
		a    Allergy
	}{
		{"missing name", Allergy{}},
		{"overlong name", Allergy{Name: strings.Repeat("n", maxNameLen+1)}},
		{"overlong description", Allergy{Name: "Peanuts", Description: strings.Repeat("d", maxDescriptionLen+1)}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			a := tc.a
			if err := svc.Add(ctx, user.RoleDoctor, &a); !errors.Is(err, errs.ErrInvalid) {
				t.Errorf("err = %v, want invalid", err)
			}
		})
	}
}

func TestUpdatePreservesUntouchedFields(t *testing.T) {
	svc := NewService(newMockRepo())
	ctx := context.Background()

	a := &Allergy{Name: "Penicillin", Description: "beta-lactam antibiotics"}
	if err := svc.Add(ctx, user.RoleDoctor, a); err != nil {
		t.Fatalf("Add: %v", err)
	}

	name := "Penicillin G"
	updated, err := svc.Update(ctx, user.RoleDoctor, a.ID, UpdateInput{Name: &name})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Name != name {
		t.Errorf("Name = %q, want %q", updated.Name, name)
	}
	if updated.Description != "beta-lactam antibiotics" {
		t.Errorf("Description = %q, want preserved", updated.Description)
	}
}

func TestUpdateGatesAndMissingTarget(t *testing.T) {
	svc := NewService(newMockRepo())
	ctx := context.Background()

	name := "Latex"
	if _, err := svc.Update(ctx, user.RoleAssistant, 1, UpdateInput{Name: &name}); !errors.Is(err, errs.ErrForbidden) {
		t.Errorf("assistant: err = %v, want forbidden", err)
	}
	if _, err := svc.Update(ctx, user.RoleAdmin, 404, UpdateInput{Name: &name}); !errors.Is(err, errs.ErrNotFound) {
		t.Errorf("missing target: err = %v, want not found", err)
	}
}

func TestDeleteAdminOnly(t *testing.T) {
	svc := NewService(newMockRepo())
	ctx := context.Background()

	a := &Allergy{Name: "Penicillin"}
	if err := svc.Add(ctx, user.RoleAdmin, a); err != nil {
		t.Fatalf("Add: %v", err)
	}

	if err := svc.Delete(ctx, user.RoleDoctor, a.ID); !errors.Is(err, errs.ErrForbidden) {
		t.Errorf("doctor: err = %v, want forbidden", err)
	}
	if err := svc.Delete(ctx, user.RoleAdmin, a.ID); err != nil {
		t.Fatalf("admin delete: %v", err)
	}
	if err := svc.Delete(ctx, user.RoleAdmin, a.ID); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("second delete: err = %v, want not found", err)
	}
}

func TestQueryFiltersByName(t *testing.T) {
	svc := NewService(newMockRepo())
	ctx := context.Background()

	for _, name := range []string{"Penicillin", "Peanuts", "Latex"} {
		if err := svc.Add(ctx, user.RoleAdmin, &Allergy{Name: name}); err != nil {
			t.Fatalf("Add %s: %v", name, err)
		}
	}

	_, total, err := svc.Query(ctx, Filter{Name: "pe"}, 20, 0)
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if total != 2 {
		t.Errorf("total = %d, want 2", total)
	}
}
