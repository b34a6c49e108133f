//go:build mage

package main

import (
	"fmt"

	"github.com/magefile/mage/mg"
)

type Run mg.Namespace

// Runs the viewer with the configuration in viewer.toml.
func (Run) Viewer() error {
	fmt.Println("Run viewer...")
	if _, err := executeCmd("go", withArgs("run", ".", "--config", "viewer.toml", "--log-level", "debug"), withStream()); err != nil {
		return err
	}
	return nil
}

type Test mg.Namespace

// Runs every test with the race detector.
func (Test) All() error {
	if _, err := executeCmd("go", withArgs("test", "-race", "-count=1", "./..."), withStream()); err != nil {
		return err
	}
	return nil
}
