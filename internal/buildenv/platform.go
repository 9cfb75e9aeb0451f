package buildenv

import "runtime"

// ArchX86_64 selects the x86_64 bazel binary in BazelPathForArch.
const ArchX86_64 = "x86_64"

// IsAppleSilicon reports whether this process runs natively on an arm64 Mac.
func IsAppleSilicon() bool {
	return isAppleSilicon(runtime.GOOS, runtime.GOARCH)
}

func isAppleSilicon(goos, goarch string) bool {
	return goos == "darwin" && goarch == "arm64"
}

// BazelPathForArch returns the bazel binary to use when building for arch.
// The x86_64 binary is only returned when one was configured.
func (e *BuildEnvironment) BazelPathForArch(arch string) string {
	if arch == ArchX86_64 && e.BazelX86_64Path != "" {
		return e.BazelX86_64Path
	}
	return e.BazelPath
}
