package model

import "testing"

func TestRoleLevel(t *testing.T) {
	tests := []struct {
		role string
		want int
	}{
		{RoleAdmin, 3},
		{RoleEditor, 2},
		{RoleAuthor, 1},
		{RoleSubscriber, 0},
		{"", 0},
		{"superuser", 0},
	}

	for _, tt := range tests {
		if got := RoleLevel(tt.role); got != tt.want {
			t.Errorf("RoleLevel(%q) = %d, want %d", tt.role, got, tt.want)
		}
	}
}

func TestRoleAtLeast(t *testing.T) {
	// A route requiring tier T is satisfied by any role at or above T.
	tests := []struct {
		role    string
		minRole string
		want    bool
	}{
		{RoleAdmin, RoleAdmin, true},
		{RoleAdmin, RoleEditor, true},
		{RoleAdmin, RoleAuthor, true},
		{RoleEditor, RoleAdmin, false},
		{RoleEditor, RoleEditor, true},
		{RoleEditor, RoleAuthor, true},
		{RoleAuthor, RoleEditor, false},
		{RoleAuthor, RoleAuthor, true},
		{RoleSubscriber, RoleAuthor, false},
		{RoleSubscriber, RoleSubscriber, true},
		{"unknown", RoleAuthor, false},
	}

	for _, tt := range tests {
		if got := RoleAtLeast(tt.role, tt.minRole); got != tt.want {
			t.Errorf("RoleAtLeast(%q, %q) = %v, want %v", tt.role, tt.minRole, got, tt.want)
		}
	}
}

func TestIsValidRole(t *testing.T) {
	for _, r := range ValidRoles {
		if !IsValidRole(r) {
			t.Errorf("IsValidRole(%q) = false, want true", r)
		}
	}
	if IsValidRole("root") {
		t.Error("IsValidRole(\"root\") = true, want false")
	}
}

func TestIsValidPostStatus(t *testing.T) {
	for _, s := range ValidPostStatuses {
		if !IsValidPostStatus(s) {
			t.Errorf("IsValidPostStatus(%q) = false, want true", s)
		}
	}
	if IsValidPostStatus("pending") {
		t.Error("IsValidPostStatus(\"pending\") = true, want false")
	}
}
