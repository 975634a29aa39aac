package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrNoTestScripts is returned when the test directory contains no test
// scripts at all; the whole mapping is meaningless without them.
var ErrNoTestScripts = errors.New("no test scripts found")

// UnresolvedError reports every input name that could not be mapped to at
// least one test script. Names are collected first so the error lists all
// of them at once instead of failing one-by-one.
type UnresolvedError struct {
	Names []string
}

// Error returns the message listing every unresolved name.
func (e *UnresolvedError) Error() string {
	names := append([]string(nil), e.Names...)
	sort.Strings(names)
	return fmt.Sprintf("cannot map to test scripts: %s", strings.Join(names, ", "))
}
