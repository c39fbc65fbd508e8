// Command recorder-cli manages the recorder's SQLite schema: apply,
// roll back, inspect, or force its migration version. Structured after
// the teacher's internal/db/migrate_cli.go subcommand dispatch, trimmed
// of the legacy-database baseline/detect commands the recorder schema
// has no use for (see DESIGN.md).
package main

import (
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"
	"strconv"

	"github.com/dis-interop/cdis-gateway/recorder"
)

var dbPath = flag.String("db", "frames.db", "Path to the recorder SQLite database")

func main() {
	flag.Parse()
	args := flag.Args()
	if len(args) < 1 {
		printHelp()
		os.Exit(1)
	}

	r, err := recorder.Open(*dbPath)
	if err != nil {
		log.Fatalf("failed to open recorder database: %v", err)
	}
	defer r.Close()

	migrationsFS, err := recorder.MigrationsFS()
	if err != nil {
		log.Fatalf("failed to load embedded migrations: %v", err)
	}

	switch args[0] {
	case "up":
		if err := r.MigrateUp(migrationsFS); err != nil {
			log.Fatalf("migrate up failed: %v", err)
		}
		log.Println("all migrations applied")
		reportVersion(r, migrationsFS)

	case "down":
		if err := r.MigrateDown(migrationsFS); err != nil {
			log.Fatalf("migrate down failed: %v", err)
		}
		log.Println("one migration rolled back")
		reportVersion(r, migrationsFS)

	case "status":
		version, dirty, err := r.MigrateVersion(migrationsFS)
		if err != nil {
			log.Fatalf("failed to get migration status: %v", err)
		}
		fmt.Printf("current version: %d\n", version)
		fmt.Printf("dirty: %v\n", dirty)
		if dirty {
			fmt.Println("database is dirty; a migration failed mid-run.")
			fmt.Println("inspect the database, then run: recorder-cli force <version>")
		}

	case "force":
		if len(args) < 2 {
			log.Fatal("usage: recorder-cli force <version>")
		}
		version, err := strconv.Atoi(args[1])
		if err != nil {
			log.Fatalf("invalid version %q: %v", args[1], err)
		}
		if err := r.MigrateForce(migrationsFS, version); err != nil {
			log.Fatalf("force migration failed: %v", err)
		}
		log.Printf("migration version forced to %d", version)

	case "help":
		printHelp()

	default:
		fmt.Printf("unknown command: %s\n\n", args[0])
		printHelp()
		os.Exit(1)
	}
}

func reportVersion(r *recorder.Recorder, migrationsFS fs.FS) {
	version, dirty, err := r.MigrateVersion(migrationsFS)
	if err != nil {
		return
	}
	log.Printf("current version: %d (dirty: %v)", version, dirty)
}

func printHelp() {
	fmt.Println("usage: recorder-cli [-db path] <command> [args]")
	fmt.Println()
	fmt.Println("commands:")
	fmt.Println("  up              apply every pending migration")
	fmt.Println("  down            roll back one migration")
	fmt.Println("  status          show the current schema version")
	fmt.Println("  force <version> set the recorded version without migrating (recovery only)")
	fmt.Println("  help            show this message")
}
