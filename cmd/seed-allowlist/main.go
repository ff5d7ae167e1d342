// Command seed-allowlist writes every member of the member list to the
// allowlist collection under both its sanitized and its raw key.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/cse-connect/connect-backend/internal/allowlist"
	"github.com/cse-connect/connect-backend/internal/config"
	"github.com/cse-connect/connect-backend/internal/db"
	"github.com/cse-connect/connect-backend/internal/firebase"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Error loading .env file:", err)
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("CRITICAL_ERROR: Failed to initialize Zap logger: %v", err)
	}

	if err := run(logger, os.Args[1:]); err != nil {
		logger.Error("Seeding allowlist failed", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
	logger.Sync()
}

// run returns instead of exiting so the Firestore client and the context
// are released on every path.
func run(logger *zap.Logger, args []string) error {
	fs := flag.NewFlagSet("seed-allowlist", flag.ContinueOnError)
	membersPath := fs.String("members", "", "member list YAML (defaults to MEMBERS_FILE)")
	dryRun := fs.Bool("dry-run", false, "print the entries without writing them")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if *membersPath == "" {
		*membersPath = cfg.MembersFile
	}

	members, err := allowlist.LoadMembers(*membersPath)
	if err != nil {
		return fmt.Errorf("no members to seed from '%s': %w", *membersPath, err)
	}
	list := entries(members)

	if *dryRun {
		for _, e := range list {
			logger.Info("allowlist entry", zap.String("id", e.ID), zap.String("email", e.Email), zap.String("key", e.Kind))
		}
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	app, err := firebase.InitFirebase(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize Firebase Admin SDK: %w", err)
	}
	clients, err := db.NewClients(ctx, app)
	if err != nil {
		return fmt.Errorf("failed to open Firestore client: %w", err)
	}
	defer clients.Close()

	written, err := db.NewFirestoreAllowlistRepository(clients.Firestore).Seed(ctx, list)
	if err != nil {
		return fmt.Errorf("seeding allowlist: %w", err)
	}
	logger.Info("Seeded allowlist entries", zap.Int("members", members.Len()), zap.Int("documents", written))
	return nil
}

// entries lists the sanitized and raw document of every member.
func entries(members *allowlist.Members) []db.AllowlistEntry {
	var out []db.AllowlistEntry
	for _, email := range members.Emails() {
		for _, key := range allowlist.Keys(email) {
			out = append(out, db.AllowlistEntry{ID: key.ID, Email: email, Kind: key.Kind})
		}
	}
	return out
}
