package version

import (
	"strings"
	"testing"
)

func TestFull(t *testing.T) {
	Version, Commit, Date = "1.2.3", "abc123", "2030-01-02"
	defer func() { Version, Commit, Date = "dev", "none", "unknown" }()

	got := Full()
	for _, want := range []string{"meetscribe 1.2.3", "commit abc123", "built at 2030-01-02"} {
		if !strings.Contains(got, want) {
			t.Errorf("Full() = %q, missing %q", got, want)
		}
	}
}
