package domain

import "testing"

func TestRoleAllows(t *testing.T) {
	tests := []struct {
		role Role
		min  Role
		want bool
	}{
		{RoleAdmin, RoleAdmin, true},
		{RoleAdmin, RoleViewer, true},
		{RoleOperator, RoleAdmin, false},
		{RoleOperator, RoleOperator, true},
		{RoleViewer, RoleOperator, false},
		{RoleViewer, RoleViewer, true},
		{Role("guest"), RoleViewer, false},
	}

	for _, tt := range tests {
		if got := tt.role.Allows(tt.min); got != tt.want {
			t.Errorf("%s.Allows(%s) = %v, want %v", tt.role, tt.min, got, tt.want)
		}
	}
}
