package buildenv

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/ShayCichocki/buildenv/internal/exec"
)

const (
	bazelVersionPrefix = "bazel "
	xcodeVersionMarker = `CFBundleShortVersionString" => `
	xcodeSelect        = "xcode-select"
	plutil             = "plutil"
)

// ParseBazelVersion extracts the version from `bazel --version` output,
// which has the form "bazel <version>\n".
func ParseBazelVersion(output, bazelPath string) (string, error) {
	line := strings.TrimRight(output, "\n")
	if !strings.HasPrefix(line, bazelVersionPrefix) {
		return "", fmt.Errorf("%s is %w", bazelPath, ErrInvalidBazelBinary)
	}
	return strings.ReplaceAll(line, bazelVersionPrefix, ""), nil
}

// ParseXcodeVersion scans `plutil -p Info.plist` output for the
// CFBundleShortVersionString entry, e.g.
//
//	"CFBundleShortVersionString" => "14.2"
//
// and returns the unquoted value from the first matching line.
func ParseXcodeVersion(plistDump string) (string, bool) {
	for _, line := range strings.Split(plistDump, "\n") {
		idx := strings.Index(line, xcodeVersionMarker)
		if idx == -1 {
			continue
		}
		return strings.Trim(line[idx+len(xcodeVersionMarker):], `"`), true
	}
	return "", false
}

// BazelVersion runs `<bazelPath> --version` and parses the result.
func BazelVersion(ctx context.Context, runner exec.CommandRunner, bazelPath string) (string, error) {
	out, err := runner.Output(ctx, bazelPath, "--version")
	if err != nil {
		return "", err
	}
	return ParseBazelVersion(out, bazelPath)
}

// XcodeVersion asks xcode-select for the active developer directory and
// reads CFBundleShortVersionString from the Info.plist next to it.
// dirExists may be nil, in which case the filesystem is consulted.
func XcodeVersion(ctx context.Context, runner exec.CommandRunner, dirExists func(string) bool) (string, error) {
	if dirExists == nil {
		dirExists = isDir
	}

	out, err := runner.Output(ctx, xcodeSelect, "-p")
	if err != nil {
		return "", err
	}
	developerDir := strings.TrimRight(out, "\n")
	if !dirExists(developerDir) {
		return "", fatalf(StageBazelChecked, "The path reported by 'xcode-select -p' does not exist")
	}

	plistPath := developerDir + "/../Info.plist"
	dump, err := runner.Output(ctx, plutil, "-p", plistPath)
	if err != nil {
		return "", err
	}

	version, ok := ParseXcodeVersion(dump)
	if !ok {
		return "", fatalf(StageBazelChecked, "Could not parse the Xcode version from %s", plistPath)
	}
	return version, nil
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
