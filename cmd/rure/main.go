// Command rure searches text with the coregex engine through the same
// handle-based API that librure exports to C.
//
// Exit status follows grep: 0 when something matched, 1 when nothing did,
// 2 on error.
package main

import (
	"errors"
	"fmt"
	"os"
)

func main() {
	os.Exit(run())
}

func run() int {
	err := Execute()
	switch {
	case err == nil:
		return 0
	case errors.Is(err, errNoMatch):
		return 1
	default:
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 2
	}
}
