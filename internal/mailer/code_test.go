package mailer

import "testing"

func TestGenerateCode(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		code := GenerateCode()
		if len(code) != 4 {
			t.Fatalf("code %q has length %d, want 4", code, len(code))
		}
		for _, r := range code {
			if r < '0' || r > '9' {
				t.Fatalf("code %q contains non-digit %q", code, r)
			}
		}
		seen[code] = true
	}
	// 50 draws from 10000 values collapsing to one would mean a broken source
	if len(seen) == 1 {
		t.Fatalf("all 50 generated codes identical: %v", seen)
	}
}
