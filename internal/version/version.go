// Package version reads the version of this module from the build info of
// the running binary.
package version

import "runtime/debug"

const modulePath = "github.com/tetratelabs/instant"

// Default is returned when the build info has no usable version, such as
// `go run` from a checkout.
const Default = "dev"

// GetInstantVersion returns the version of this module: of the main module
// when the instant CLI was built from it, or of the dependency when the
// library is linked into another program.
func GetInstantVersion() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return Default
	}
	return versionOf(info)
}

func versionOf(info *debug.BuildInfo) string {
	var v string
	if info.Main.Path == modulePath {
		v = info.Main.Version
	} else {
		for _, dep := range info.Deps {
			if dep.Path != modulePath {
				continue
			}
			if dep.Replace != nil {
				dep = dep.Replace
			}
			v = dep.Version
			break
		}
	}
	if v == "" || v == "(devel)" {
		return Default
	}
	return v
}
