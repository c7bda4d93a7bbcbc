//go:build !windows

package main

import (
	"os"
	"syscall"
)

// stopSignals are Ctrl-C and the SIGTERM sent by process managers.
var stopSignals = []os.Signal{os.Interrupt, syscall.SIGTERM}
