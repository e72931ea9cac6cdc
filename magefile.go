//go:build mage

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const binary = "vaani"

var Default = Build

// Build compiles the vaani binary into the repository root
func Build() error {
	return sh.RunV("go", "build", "-o", binary, "./cmd/vaani")
}

// Test runs all unit tests
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// Vet runs go vet over all packages
func Vet() error {
	return sh.RunV("go", "vet", "./...")
}

// Generate regenerates the gomock mocks
func Generate() error {
	return sh.RunV("go", "generate", "./internal/speech/...")
}

// Install copies the binary to $GOPATH/bin
func Install() error {
	mg.Deps(Build)
	gopath, err := sh.Output("go", "env", "GOPATH")
	if err != nil {
		return err
	}
	target := filepath.Join(gopath, "bin", binary)
	fmt.Println("Installing to", target)
	return sh.Copy(target, binary)
}

// Clean removes build artifacts
func Clean() error {
	return os.RemoveAll(binary)
}
