//go:build mage

// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"strings"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const coverProfile = "coverage.out"

// Test groups test targets (all, race, cover, pkg).
type Test mg.Namespace

// All runs all tests.
func (Test) All() error {
	return sh.RunV(binGo, "test", "-v", "./...")
}

// Race runs all tests with the race detector.
func (Test) Race() error {
	return sh.RunV(binGo, "test", "-race", "./...")
}

// Cover runs all tests and prints per-function coverage.
func (Test) Cover() error {
	if err := sh.RunV(binGo, "test", "-coverprofile="+coverProfile, "./..."); err != nil {
		return err
	}
	out, err := sh.Output(binGo, "tool", "cover", "-func="+coverProfile)
	if err != nil {
		return err
	}
	lines := strings.Split(out, "\n")
	fmt.Println(lines[len(lines)-1])
	return nil
}

// Pkg runs the tests of the packages whose import path contains name,
// for example "model" or "document".
func (Test) Pkg(name string) error {
	pkgs, err := sh.Output(binGo, "list", "./...")
	if err != nil {
		return err
	}
	var matched []string
	for pkg := range strings.SplitSeq(pkgs, "\n") {
		if pkg != "" && strings.Contains(pkg, name) {
			matched = append(matched, pkg)
		}
	}
	if len(matched) == 0 {
		fmt.Printf("No packages match %q.\n", name)
		return nil
	}
	args := append([]string{"test", "-v"}, matched...)
	return sh.RunV(binGo, args...)
}
