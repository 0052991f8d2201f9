//go:build windows

package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Fprintln(os.Stderr, "mikoshi is not supported on Windows. It needs a Unix shell and termios.")
	os.Exit(1)
}
