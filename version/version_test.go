package version

import "testing"

func TestFormatVersion(t *testing.T) {
	tests := []struct {
		build    string
		expected string
	}{
		{"", "0.1.0"},
		{"abc-123", "0.1.0-abc-123"},
		{"bad.build", "0.1.0"},
		{"spaces here", "0.1.0"},
	}
	for _, test := range tests {
		if result := formatVersion(test.build); result != test.expected {
			t.Fatalf("TestFormatVersion: build %q: expected %s, got %s", test.build, test.expected, result)
		}
	}
}
