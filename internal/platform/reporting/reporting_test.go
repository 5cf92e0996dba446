package reporting

import (
	"strings"
	"testing"
)

func TestPredefinedMeasures(t *testing.T) {
	if len(PredefinedMeasures) != 4 {
		t.Fatalf("expected 4 predefined measures, got %d", len(PredefinedMeasures))
	}

	expectedIDs := []string{
		"appointments-by-status",
		"patients-per-month",
		"allergy-prevalence",
		"doctor-workload",
	}

	for i, expectedID := range expectedIDs {
		if PredefinedMeasures[i].ID != expectedID {
			t.Errorf("expected measure[%d].ID = %s, got %s", i, expectedID, PredefinedMeasures[i].ID)
		}
	}
}

func TestPredefinedMeasures_HaveSQL(t *testing.T) {
	for _, m := range PredefinedMeasures {
		if m.SQL == "" {
			t.Errorf("measure %s has empty SQL", m.ID)
		}
		if m.Name == "" {
			t.Errorf("measure %s has empty name", m.ID)
		}
		if m.Description == "" {
			t.Errorf("measure %s has empty description", m.ID)
		}
	}
}

func TestFindMeasure_Exists(t *testing.T) {
	m := FindMeasure("appointments-by-status")
	if m == nil {
		t.Fatal("expected to find appointments-by-status measure")
	}
	if m.Name != "Appointments by Status" {
		t.Errorf("expected 'Appointments by Status', got %s", m.Name)
	}
}

func TestFindMeasure_NotFound(t *testing.T) {
	if m := FindMeasure("nonexistent"); m != nil {
		t.Error("expected nil for nonexistent measure")
	}
}

func TestFindMeasure_AllPredefined(t *testing.T) {
	for _, def := range PredefinedMeasures {
		found := FindMeasure(def.ID)
		if found == nil {
			t.Errorf("expected to find measure %s", def.ID)
			continue
		}
		if found.ID != def.ID {
			t.Errorf("ID mismatch: expected %s, got %s", def.ID, found.ID)
		}
	}
}

func TestDoctorWorkloadMeasure_FiltersDoctorRole(t *testing.T) {
	m := FindMeasure("doctor-workload")
	if m == nil {
		t.Fatal("expected doctor-workload measure")
	}
	if !strings.Contains(m.SQL, "role = 'doctor'") {
		t.Errorf("doctor-workload SQL must restrict to the doctor role: %s", m.SQL)
	}
}

func TestAllergyPrevalenceMeasure_CountsUnlinkedAllergies(t *testing.T) {
	m := FindMeasure("allergy-prevalence")
	if m == nil {
		t.Fatal("expected allergy-prevalence measure")
	}
	if !strings.Contains(m.SQL, "LEFT JOIN") {
		t.Errorf("allergy-prevalence SQL must keep allergies with no linked patients: %s", m.SQL)
	}
}

func TestNewHandler(t *testing.T) {
	if h := NewHandler(nil); h == nil {
		t.Fatal("expected non-nil handler")
	}
}
