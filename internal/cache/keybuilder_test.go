package cache

import (
	"strings"
	"testing"

	"go-ao-staking/internal/models"
)

func TestKeyBuilder_Build(t *testing.T) {
	kb := NewKeyBuilder()

	tests := []struct {
		name          string
		processID     string
		tags          models.Tags
		discriminator string
		wantKey       string
		wantPrefix    string
		wantError     bool
	}{
		{
			name:      "action only",
			processID: "staking-pid",
			tags:      models.Tags{{Name: "Action", Value: "Get-Protocol-Metrics"}},
			wantKey:   "ao:staking-pid:Get-Protocol-Metrics:-",
		},
		{
			name:          "with discriminator",
			processID:     "rewards-pid",
			tags:          models.Tags{{Name: "Action", Value: "Get-User-Rewards"}},
			discriminator: "addr-1",
			wantKey:       "ao:rewards-pid:Get-User-Rewards:@addr-1",
		},
		{
			name:      "with extra tags",
			processID: "token-pid",
			tags: models.Tags{
				{Name: "Action", Value: "Balance"},
				{Name: "Target", Value: "staking-pid"},
			},
			wantPrefix: "ao:token-pid:Balance:-:",
		},
		{
			name:          "separators are escaped",
			processID:     "p",
			tags:          models.Tags{{Name: "Action", Value: "a:b"}},
			discriminator: "100%:c",
			wantKey:       "ao:p:a%3Ab:@100%25%3Ac",
		},
		{
			name:      "empty process id",
			processID: "",
			tags:      models.Tags{{Name: "Action", Value: "Balance"}},
			wantError: true,
		},
		{
			name:      "missing action",
			processID: "token-pid",
			tags:      models.Tags{{Name: "Target", Value: "staking-pid"}},
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, err := kb.Build(tt.processID, tt.tags, tt.discriminator)

			if tt.wantError {
				if err == nil {
					t.Errorf("Build() expected error but got none")
				}
				return
			}

			if err != nil {
				t.Errorf("Build() unexpected error: %v", err)
				return
			}

			if tt.wantKey != "" && key != tt.wantKey {
				t.Errorf("Build() = %v, want %v", key, tt.wantKey)
			}
			if tt.wantPrefix != "" && !strings.HasPrefix(key, tt.wantPrefix) {
				t.Errorf("Build() = %v, want prefix %v", key, tt.wantPrefix)
			}
		})
	}
}

func TestKeyBuilder_Deterministic(t *testing.T) {
	kb := NewKeyBuilder()
	tags := models.Tags{
		{Name: "Action", Value: "Balance"},
		{Name: "Target", Value: "staking-pid"},
	}

	key1, err1 := kb.Build("token-pid", tags, "")
	key2, err2 := kb.Build("token-pid", tags, "")

	if err1 != nil || err2 != nil {
		t.Fatalf("Build() unexpected errors: %v, %v", err1, err2)
	}
	if key1 != key2 {
		t.Errorf("Build() should be deterministic: %v != %v", key1, key2)
	}
}

func TestKeyBuilder_DistinctInputs(t *testing.T) {
	kb := NewKeyBuilder()
	base := models.Tags{{Name: "Action", Value: "Balance"}, {Name: "Target", Value: "a"}}

	variants := []struct {
		name          string
		processID     string
		tags          models.Tags
		discriminator string
	}{
		{name: "other process", processID: "other-pid", tags: base},
		{name: "other discriminator", processID: "token-pid", tags: base, discriminator: "addr"},
		{name: "other tag value", processID: "token-pid", tags: models.Tags{{Name: "Action", Value: "Balance"}, {Name: "Target", Value: "b"}}},
		{name: "other action", processID: "token-pid", tags: models.Tags{{Name: "Action", Value: "Info"}, {Name: "Target", Value: "a"}}},
		{name: "no extra tags", processID: "token-pid", tags: models.Tags{{Name: "Action", Value: "Balance"}}},
		{name: "dash discriminator", processID: "token-pid", tags: base, discriminator: "-"},
		{name: "separator in process id", processID: "token-pid:Balance", tags: models.Tags{{Name: "Action", Value: "-"}, {Name: "Target", Value: "a"}}},
	}

	baseKey, err := kb.Build("token-pid", base, "")
	if err != nil {
		t.Fatalf("Build() unexpected error: %v", err)
	}

	for _, v := range variants {
		t.Run(v.name, func(t *testing.T) {
			key, err := kb.Build(v.processID, v.tags, v.discriminator)
			if err != nil {
				t.Fatalf("Build() unexpected error: %v", err)
			}
			if key == baseKey {
				t.Errorf("Build() produced colliding key %v", key)
			}
		})
	}
}

func TestKeyBuilder_TagOrderMatters(t *testing.T) {
	kb := NewKeyBuilder()

	key1, _ := kb.Build("pid", models.Tags{
		{Name: "Action", Value: "Transfer"},
		{Name: "A", Value: "1"},
		{Name: "B", Value: "2"},
	}, "")
	key2, _ := kb.Build("pid", models.Tags{
		{Name: "Action", Value: "Transfer"},
		{Name: "B", Value: "2"},
		{Name: "A", Value: "1"},
	}, "")

	if key1 == key2 {
		t.Errorf("Build() should keep tag order in the digest")
	}
}

func TestKeyBuilder_FieldBoundaries(t *testing.T) {
	kb := NewKeyBuilder()

	pairs := []struct {
		name  string
		left  [3]string
		right [3]string
	}{
		{
			name:  "empty and dash discriminators",
			left:  [3]string{"p", "Balance", ""},
			right: [3]string{"p", "Balance", "-"},
		},
		{
			name:  "separator moved from action to discriminator",
			left:  [3]string{"p", "a:b", "c"},
			right: [3]string{"p", "a", "b:c"},
		},
		{
			name:  "separator moved from process to action",
			left:  [3]string{"p:a", "b", ""},
			right: [3]string{"p", "a:b", ""},
		},
		{
			name:  "escaped form used literally",
			left:  [3]string{"p", "a:b", ""},
			right: [3]string{"p", "a%3Ab", ""},
		},
	}

	for _, tt := range pairs {
		t.Run(tt.name, func(t *testing.T) {
			left, err := kb.Build(tt.left[0], models.Tags{{Name: "Action", Value: tt.left[1]}}, tt.left[2])
			if err != nil {
				t.Fatalf("Build() unexpected error: %v", err)
			}
			right, err := kb.Build(tt.right[0], models.Tags{{Name: "Action", Value: tt.right[1]}}, tt.right[2])
			if err != nil {
				t.Fatalf("Build() unexpected error: %v", err)
			}
			if left == right {
				t.Errorf("Build() produced the same key %v for distinct requests", left)
			}
		})
	}
}
