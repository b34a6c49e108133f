//go:build mage

package main

import (
	"fmt"

	"github.com/magefile/mage/mg"
)

type Build mg.Namespace

// Downloads the modules and builds the prism binary into bin/.
func (Build) Binary() error {
	if err := goModDownload(); err != nil {
		return err
	}
	fmt.Println("Building prism...")
	if _, err := executeCmd("go", withArgs("build", "-o", "bin/prism", "."), withStream()); err != nil {
		return err
	}
	return nil
}
