package rbac

import (
	"testing"
)

func TestCanPerform(t *testing.T) {
	tests := []struct {
		name   string
		role   string
		action string
		want   bool
	}{
		{
			name:   "creator создаёт",
			role:   RoleCreator,
			action: ActionCreate,
			want:   true,
		},
		{
			name:   "creator редактирует",
			role:   RoleCreator,
			action: ActionUpdate,
			want:   true,
		},
		{
			name:   "creator удаляет",
			role:   RoleCreator,
			action: ActionDelete,
			want:   true,
		},
		{
			name:   "creator НЕ может верифицировать",
			role:   RoleCreator,
			action: ActionVerify,
			want:   false,
		},
		{
			name:   "verifier создаёт",
			role:   RoleVerifier,
			action: ActionCreate,
			want:   true,
		},
		{
			name:   "verifier редактирует",
			role:   RoleVerifier,
			action: ActionUpdate,
			want:   true,
		},
		{
			name:   "verifier удаляет",
			role:   RoleVerifier,
			action: ActionDelete,
			want:   true,
		},
		{
			name:   "verifier верифицирует",
			role:   RoleVerifier,
			action: ActionVerify,
			want:   true,
		},
		{
			name:   "неизвестная роль — запрет",
			role:   "admin",
			action: ActionCreate,
			want:   false,
		},
		{
			name:   "пустая роль — запрет",
			role:   "",
			action: ActionVerify,
			want:   false,
		},
		{
			name:   "неизвестное действие — запрет",
			role:   RoleVerifier,
			action: "publish",
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CanPerform(tt.role, tt.action)
			if got != tt.want {
				t.Errorf("CanPerform(%q, %q) = %v, хотели %v", tt.role, tt.action, got, tt.want)
			}
		})
	}
}

func TestRoleForLoginCode(t *testing.T) {
	creatorCodes := []string{"c-alpha", "c-beta"}
	verifierCodes := []string{"v-gamma"}

	tests := []struct {
		name     string
		code     string
		wantRole string
		wantOK   bool
	}{
		{
			name:     "код из набора creator",
			code:     "c-alpha",
			wantRole: RoleCreator,
			wantOK:   true,
		},
		{
			name:     "второй код из набора creator",
			code:     "c-beta",
			wantRole: RoleCreator,
			wantOK:   true,
		},
		{
			name:     "код из набора verifier",
			code:     "v-gamma",
			wantRole: RoleVerifier,
			wantOK:   true,
		},
		{
			name:     "неизвестный код",
			code:     "nope",
			wantRole: "",
			wantOK:   false,
		},
		{
			name:     "пустой код",
			code:     "",
			wantRole: "",
			wantOK:   false,
		},
		{
			name:     "регистр имеет значение",
			code:     "C-ALPHA",
			wantRole: "",
			wantOK:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotRole, gotOK := RoleForLoginCode(tt.code, creatorCodes, verifierCodes)
			if gotRole != tt.wantRole || gotOK != tt.wantOK {
				t.Errorf("RoleForLoginCode(%q) = (%q, %v), хотели (%q, %v)",
					tt.code, gotRole, gotOK, tt.wantRole, tt.wantOK)
			}
		})
	}
}

func TestRoleForLoginCode_CreatorPriority(t *testing.T) {
	// Код, попавший в оба набора, трактуется как creator.
	role, ok := RoleForLoginCode("dual", []string{"dual"}, []string{"dual"})
	if !ok || role != RoleCreator {
		t.Errorf("RoleForLoginCode(dual) = (%q, %v), хотели (%q, true)", role, ok, RoleCreator)
	}
}

func TestIsValidRole(t *testing.T) {
	tests := []struct {
		role string
		want bool
	}{
		{RoleCreator, true},
		{RoleVerifier, true},
		{"admin", false},
		{"", false},
		{"Creator", false},
	}

	for _, tt := range tests {
		t.Run(tt.role, func(t *testing.T) {
			got := IsValidRole(tt.role)
			if got != tt.want {
				t.Errorf("IsValidRole(%q) = %v, хотели %v", tt.role, got, tt.want)
			}
		})
	}
}
