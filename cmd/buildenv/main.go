// Command buildenv validates bazel and Xcode against versions.json.
package main

func main() {
	Execute()
}
