package version

import (
	"fmt"
	"os"
)

const (
	Version = "1.0"
)

func HasVersionArg() bool {
	if len(os.Args) > 1 {
		arg := os.Args[1]
		return arg == "--version" || arg == "-version" || arg == "-v" || arg == "--v"
	}
	return false
}

func ShowVersion() {
	fmt.Printf("ottfinder v%s (SQLite watchlist, Gemini grounding search)\n", Version)
}
