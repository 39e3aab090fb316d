package task

import (
	"testing"
	"time"
)

func TestIsValidStatus(t *testing.T) {
	tests := []struct {
		status Status
		valid  bool
	}{
		{StatusTask, true},
		{StatusProject, true},
		{StatusIdea, true},
		{StatusNotNow, true},
		{StatusBlocked, true},
		{StatusWaiting, true},
		{StatusDone, true},
		{StatusWontDo, true},
		{Status("invalid"), false},
		{Status(""), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			if got := IsValidStatus(tt.status); got != tt.valid {
				t.Errorf("IsValidStatus(%q) = %v, want %v", tt.status, got, tt.valid)
			}
		})
	}
}

func TestStatusIsActionable(t *testing.T) {
	if !StatusTask.IsActionable() {
		t.Error("StatusTask should be actionable")
	}
	for _, s := range []Status{StatusProject, StatusIdea, StatusNotNow, StatusBlocked, StatusWaiting, StatusDone, StatusWontDo} {
		if s.IsActionable() {
			t.Errorf("%q should not be actionable", s)
		}
	}
}

func TestStatusIsOpen(t *testing.T) {
	if StatusDone.IsOpen() || StatusWontDo.IsOpen() {
		t.Error("terminal statuses should not be open")
	}
	if !StatusBlocked.IsOpen() {
		t.Error("blocked should still count as open")
	}
}

func TestResolveStatus(t *testing.T) {
	tests := []struct {
		raw     string
		want    Status
		wantErr bool
	}{
		{"task", StatusTask, false},
		{"Action", StatusTask, false},
		{"action", StatusTask, false},
		{"todo", StatusTask, false},
		{"Waiting On", StatusWaiting, false},
		{"Not Now", StatusNotNow, false},
		{"Won't Do", StatusWontDo, false},
		{"DONE", StatusDone, false},
		{"bogus", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ResolveStatus(tt.raw)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ResolveStatus(%q) error = %v, wantErr %v", tt.raw, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ResolveStatus(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestResolveType(t *testing.T) {
	tests := []struct {
		raw     string
		want    Type
		wantErr bool
	}{
		{"identity", TypeIdentity, false},
		{"Compounds", TypeCompound, false},
		{"[KEYSTONE]", TypeUnblocks, false},
		{"[never miss 2x]", TypeNeverMissTwice, false},
		{"[IMPORTANT NOT URGENT]", TypeImportantNotUrgent, false},
		{"unblocks", TypeUnblocks, false},
		{"mystery", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ResolveType(tt.raw)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ResolveType(%q) error = %v, wantErr %v", tt.raw, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ResolveType(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestResolveEnergy(t *testing.T) {
	tests := []struct {
		raw     string
		want    Energy
		wantErr bool
	}{
		{"red", EnergyRed, false},
		{"Yellow", EnergyYellow, false},
		{"GREEN", EnergyGreen, false},
		{"draining", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ResolveEnergy(tt.raw)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ResolveEnergy(%q) error = %v, wantErr %v", tt.raw, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ResolveEnergy(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestTaskValidate(t *testing.T) {
	base := Task{
		ID:        "abc",
		Name:      "Write report",
		Status:    StatusTask,
		Mentioned: 1,
		CreatedAt: time.Now(),
	}

	if err := base.Validate(); err != nil {
		t.Fatalf("valid task failed validation: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Task)
	}{
		{"empty name", func(tk *Task) { tk.Name = "" }},
		{"unknown status", func(tk *Task) { tk.Status = "later" }},
		{"unknown type", func(tk *Task) { tk.Type = "urgent" }},
		{"unknown energy", func(tk *Task) { tk.Energy = "blue" }},
		{"zero mentioned", func(tk *Task) { tk.Mentioned = 0 }},
		{"blocked without blocker", func(tk *Task) { tk.Status = StatusBlocked }},
		{"waiting without blocker", func(tk *Task) { tk.Status = StatusWaiting }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tk := base
			tt.mutate(&tk)
			if err := tk.Validate(); err == nil {
				t.Errorf("expected validation error for %s", tt.name)
			}
		})
	}

	// Blocked with a named blocker is fine.
	tk := base
	tk.Status = StatusBlocked
	tk.BlockedBy = "vendor reply"
	if err := tk.Validate(); err != nil {
		t.Errorf("blocked task with blocker failed validation: %v", err)
	}
}

func TestGenerateID(t *testing.T) {
	now := time.Now()

	// Should generate a unique ID
	id := GenerateID("Test task", now, func(_ string) bool { return false })
	if len(id) < 3 {
		t.Errorf("ID too short: %s", id)
	}
	if len(id) > 8 {
		t.Errorf("ID too long: %s", id)
	}

	// Should grow if collisions exist
	existingIDs := map[string]bool{}
	existsFn := func(id string) bool {
		return existingIDs[id]
	}

	id1 := GenerateID("Test", now, existsFn)
	existingIDs[id1] = true

	// Different name should generate different ID
	id2 := GenerateID("Different", now, existsFn)
	if id1 == id2 {
		t.Error("Expected different IDs for different names")
	}
}
