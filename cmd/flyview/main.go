package main

import (
	"runtime"

	"github.com/philipparndt/flyview/cmd"
)

func init() {
	// GL calls must come from the main thread
	runtime.LockOSThread()
}

func main() {
	cmd.Execute()
}
