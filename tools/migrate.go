package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"gestor-turnos/config"
	"gestor-turnos/database"
	"gestor-turnos/mq"
	"gestor-turnos/repository"
	jornadaService "gestor-turnos/services/jornada"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage:")
		fmt.Println("  go run tools/migrate.go migrate                    - Create or update the schema")
		fmt.Println("  go run tools/migrate.go reconcile <clubId> <fecha> - Compare a closed jornada with the ledger")
		return
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("❌ Configuration error: %v\n", err)
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "migrate":
		fmt.Println("🚀 Running database migrations...")
		if _, err := database.InitDB(cfg); err != nil {
			fmt.Printf("❌ Migration failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("✅ Migration completed successfully!")

	case "reconcile":
		if len(os.Args) < 4 {
			fmt.Println("Please provide a club id and a date")
			fmt.Println("Example: go run tools/migrate.go reconcile 1 2024-03-15")
			return
		}
		clubID, err := strconv.ParseUint(os.Args[2], 10, 64)
		if err != nil {
			fmt.Printf("❌ Invalid club id %q\n", os.Args[2])
			os.Exit(1)
		}
		found, err := reconcile(cfg, uint(clubID), os.Args[3])
		if err != nil {
			fmt.Printf("❌ Reconciliation failed: %v\n", err)
			os.Exit(1)
		}
		if found > 0 {
			fmt.Printf("⚠️ %d discrepancies found\n", found)
			os.Exit(2)
		}
		fmt.Printf("✅ Jornada %s of club %d matches the ledger\n", os.Args[3], clubID)

	default:
		fmt.Printf("Unknown command: %s\n", command)
		fmt.Println("Available commands: migrate, reconcile")
	}
}

// reconcile prints every discrepancy and returns how many were found.
func reconcile(cfg config.App, clubID uint, fecha string) (int, error) {
	db, err := database.Open(cfg)
	if err != nil {
		return 0, err
	}
	loc, err := cfg.Location()
	if err != nil {
		return 0, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.DBTimeout)
	defer cancel()

	svc := jornadaService.NewService(repository.NewJornadaRepo(db), loc, mq.Nop{})
	seq, err := svc.Reconcile(ctx, clubID, fecha)
	if err != nil {
		return 0, err
	}

	found := 0
	for d := range seq {
		found++
		fmt.Printf("turno=%d field=%s ledger=%q snapshot=%q\n", d.TurnoID, d.Field, d.LedgerValue, d.SnapshotValue)
	}
	return found, nil
}
