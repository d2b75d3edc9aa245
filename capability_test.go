package hoard

import "testing"

func TestIsValidKind(t *testing.T) {
	tests := []struct {
		kind Kind
		want bool
	}{
		{KindPlain, true},
		{KindCryptographic, true},
		{KindIntegrity, true},
		{"Plain", false},
		{" plain", false},
		{"compression", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			if got := IsValidKind(tt.kind); got != tt.want {
				t.Errorf("IsValidKind(%q) = %v, want %v", tt.kind, got, tt.want)
			}
		})
	}
}

func TestKind_Gated(t *testing.T) {
	if !KindCryptographic.gated() {
		t.Error("cryptographic transforms should be gated")
	}
	if KindPlain.gated() || KindIntegrity.gated() {
		t.Error("plain and integrity transforms should always run")
	}
}
