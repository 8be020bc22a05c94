// Package version reports the version of the txsetctl tooling.
package version

import (
	"fmt"
	"strings"
	"sync"
)

const (
	appMajor uint = 0
	appMinor uint = 1
	appPatch uint = 0
)

// appBuild can be set at link time with
// '-ldflags "-X github.com/kaspanet/gentxset/version.appBuild=foo"'.
// It is ignored unless it only holds alphanumerics and dashes.
var appBuild string

var (
	version     string
	versionOnce sync.Once
)

// Version returns the semantic version, with the build metadata appended
// when appBuild is set and well-formed
func Version() string {
	versionOnce.Do(func() {
		version = formatVersion(appBuild)
	})
	return version
}

func formatVersion(build string) string {
	semver := fmt.Sprintf("%d.%d.%d", appMajor, appMinor, appPatch)
	if !isValidBuild(build) {
		return semver
	}
	return semver + "-" + build
}

func isValidBuild(build string) bool {
	if build == "" {
		return false
	}
	return strings.IndexFunc(build, func(r rune) bool {
		isAlphanumeric := (r >= '0' && r <= '9') || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
		return !isAlphanumeric && r != '-'
	}) == -1
}
