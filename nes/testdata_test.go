package nes

import (
	"os"
	"path/filepath"
)

// testdataFile reads a fixture from testdata/. The large binary ROMs these
// integration tests exercise (the Klaus Dormann functional test and a
// Donkey Kong cartridge dump) are not vendored in this repo; callers skip
// the test when the read fails.
func testdataFile(name string) ([]byte, error) {
	return os.ReadFile(filepath.Join("testdata", name))
}
