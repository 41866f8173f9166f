package migrations

import "testing"

func TestAllVersionsAreSequentialAndNamed(t *testing.T) {
	all := All()
	if len(all) == 0 {
		t.Fatalf("expected at least one migration")
	}
	for i, m := range all {
		if m.Version != i+1 {
			t.Fatalf("migration %d has version %d, want %d", i, m.Version, i+1)
		}
		if m.Name == "" {
			t.Fatalf("migration %d has no name", m.Version)
		}
		if m.UpSQL == "" {
			t.Fatalf("migration %d has no SQL", m.Version)
		}
	}
}
