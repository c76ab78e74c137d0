package models

import "testing"

func TestDepartmentStatus(t *testing.T) {
	cases := []struct {
		name    string
		current int
		max     int
		want    string
	}{
		{"empty queue", 0, 10, DeptStatusAvailable},
		{"under thirty percent", 2, 10, DeptStatusAvailable},
		{"thirty percent", 3, 10, DeptStatusModerate},
		{"half full", 5, 10, DeptStatusModerate},
		{"seventy percent", 7, 10, DeptStatusBusy},
		{"eighty percent", 8, 10, DeptStatusBusy},
		{"ninety percent", 9, 10, DeptStatusFull},
		{"at capacity", 10, 10, DeptStatusFull},
		{"over capacity", 12, 10, DeptStatusFull},
		{"zero capacity", 0, 0, DeptStatusFull},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := Department{CurrentQueueSize: tc.current, MaxQueueSize: tc.max}
			if got := d.Status(); got != tc.want {
				t.Fatalf("Status(%d/%d) = %q, want %q", tc.current, tc.max, got, tc.want)
			}
		})
	}
}

func TestDepartmentIsFull(t *testing.T) {
	if (Department{CurrentQueueSize: 9, MaxQueueSize: 10}).IsFull() {
		t.Fatal("department below capacity reported full")
	}
	if !(Department{CurrentQueueSize: 10, MaxQueueSize: 10}).IsFull() {
		t.Fatal("department at capacity not reported full")
	}
	if !(Department{CurrentQueueSize: 0, MaxQueueSize: 0}).IsFull() {
		t.Fatal("zero-capacity department not reported full")
	}
}

func TestBusinessView(t *testing.T) {
	b := Business{
		ID:   "b1",
		Name: "City Clinic",
		Departments: []Department{
			{ID: "d1", Name: "Radiology", CurrentQueueSize: 10, MaxQueueSize: 10},
			{ID: "d2", Name: "Pediatrics", CurrentQueueSize: 1, MaxQueueSize: 10},
		},
	}
	view := b.View()
	if len(view.Departments) != 2 {
		t.Fatalf("expected 2 departments, got %d", len(view.Departments))
	}
	if view.Departments[0].Selectable {
		t.Fatal("full department must not be selectable")
	}
	if view.Departments[0].Status != DeptStatusFull {
		t.Fatalf("expected Full, got %s", view.Departments[0].Status)
	}
	if !view.Departments[1].Selectable {
		t.Fatal("open department must be selectable")
	}
}
