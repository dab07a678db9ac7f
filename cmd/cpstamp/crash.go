package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/gdamore/tcell/v2"
)

// handleCrash restores the terminal and prints the stack trace
func handleCrash(screen tcell.Screen, r any) {
	if r == nil {
		return
	}

	// Restore terminal to sane state before printing anything
	screen.Fini()

	fmt.Fprintf(os.Stderr, "\r\n\x1b[31mCRASH DETECTED: %v\x1b[0m\r\n", r)
	fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())
	os.Stderr.Sync()

	os.Exit(1)
}

// goSafe runs fn in a new goroutine with panic recovery
// Use this instead of the 'go' keyword while the screen is in raw mode
func goSafe(screen tcell.Screen, fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				handleCrash(screen, r)
			}
		}()
		fn()
	}()
}
