package main

import (
	"os"

	"github.com/joho/godotenv"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	// A .env file in the working directory supplies MDPREVIEW_* defaults.
	// Variables already set in the process environment win.
	_ = godotenv.Load()

	os.Exit(run(os.Args, DefaultEnv()))
}
