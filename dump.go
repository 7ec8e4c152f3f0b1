package recipebook

import (
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/davecgh/go-spew/spew"
)

// Pointer addresses are hidden so dumps of the same state compare equal.
var dumpConfig = spew.ConfigState{
	Indent:                  "  ",
	SortKeys:                true,
	DisablePointerAddresses: true,
	DisableCapacities:       true,
}

// Dump writes v to stderr prefixed with the caller's location.
func Dump(v ...any) {
	fdump(os.Stderr, 2, v...)
}

// Fdump is Dump with an explicit writer.
func Fdump(w io.Writer, v ...any) {
	fdump(w, 2, v...)
}

func fdump(w io.Writer, skip int, v ...any) {
	_, file, line, _ := runtime.Caller(skip)
	fmt.Fprintf(w, "%s:%d:\n", file, line)
	dumpConfig.Fdump(w, v...)
}
