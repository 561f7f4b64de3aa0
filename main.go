package main

import (
	"fmt"
	"os"

	"spine-db/internal/startup"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "inject":
		runInject(os.Args[2:])
	case "serve":
		runServe(os.Args[2:])
	case "setup":
		runSetup(os.Args[2:])
	case "version", "--version", "-v":
		info := startup.GetBuildInfo()
		fmt.Printf("spine-db %s (%s, built %s, %s)\n",
			info.Version, info.Commit, info.BuildTime, info.GoVersion)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "spine-db: unknown command %q\n\n", os.Args[1])
		printUsage()
		os.Exit(2)
	}
}

func printUsage() {
	fmt.Fprint(os.Stderr, `Usage: spine-db <command> [flags]

Commands:
  setup     Create the spine_files table and indices
  inject    Extract metadata from SPINE output files and catalog them
  serve     Run the catalog browsing web server
  version   Print build information

The database is selected with --db on each command, or with the
DATABASE_URL environment variable. Both PostgreSQL URLs and SQLite
paths are accepted.

Run "spine-db <command> -h" for command-specific flags.
`)
}

// databaseURL resolves the catalog location from the --db flag value,
// falling back to DATABASE_URL.
func databaseURL(flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if env := os.Getenv("DATABASE_URL"); env != "" {
		return env, nil
	}
	return "", fmt.Errorf("no database configured: pass --db or set DATABASE_URL")
}
