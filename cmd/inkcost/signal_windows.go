//go:build windows

package main

import "os"

// stopSignals is Ctrl-C only; Windows has no SIGTERM.
var stopSignals = []os.Signal{os.Interrupt}
