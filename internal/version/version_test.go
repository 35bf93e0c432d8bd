package version

import (
	"regexp"
	"testing"
)

func TestCurrentIsBareSemver(t *testing.T) {
	semver := regexp.MustCompile(`^[0-9]+\.[0-9]+\.[0-9]+$`)
	if !semver.MatchString(Current) {
		t.Fatalf("Current=%q must be <major>.<minor>.<patch> with no v prefix", Current)
	}
}
