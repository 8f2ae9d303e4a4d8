// Auditlog prints or prunes the audit log.
//
//	auditlog -op delete_user -limit 20
//	auditlog -prune 2160h
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"text/tabwriter"
	"time"

	"lingo_admin_console/internal/bootstrap"
	"lingo_admin_console/internal/config"
	"lingo_admin_console/internal/repository"
	"lingo_admin_console/internal/service"
)

func main() {
	configDir := flag.String("config", "configs", "directory holding config.yaml")
	op := flag.String("op", "", "only show this operation")
	subject := flag.String("subject", "", "only show this subject")
	limit := flag.Int("limit", 50, "maximum records to show")
	prune := flag.Duration("prune", 0, "delete records older than this instead of listing")
	flag.Parse()

	if err := config.LoadConfig(*configDir); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if config.Cfg.Database.URL == "" {
		log.Fatal("database.url (DATABASE_URL) is not set")
	}
	logger := bootstrap.NewLogger(os.Getenv("APP_ENV"), config.Cfg.Log.Level)

	db, err := repository.NewDB(config.Cfg.Database.Driver, config.Cfg.Database.URL, logger)
	if err != nil {
		log.Fatalf("Failed to connect database: %v", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	audit := service.NewAuditService(db, repository.NewGormAuditRepository(), logger)
	ctx := context.Background()

	if *prune > 0 {
		n, err := audit.Prune(ctx, *prune)
		if err != nil {
			log.Fatalf("Failed to prune audit records: %v", err)
		}
		fmt.Printf("Deleted %d audit record(s) older than %s\n", n, *prune)
		return
	}

	records, err := audit.List(ctx, repository.AuditFilter{Operation: *op, Subject: *subject, Limit: *limit})
	if err != nil {
		log.Fatalf("Failed to list audit records: %v", err)
	}
	if len(records) == 0 {
		fmt.Println("No audit records found.")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "CREATED\tOPERATION\tSUBJECT\tACTOR\tSUCCESS\tDELETED\tFAILURES\tDURATION")
	for _, r := range records {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%t\t%d\t%d\t%s\n",
			r.CreatedAt.Format(time.RFC3339), r.Operation, r.Subject, r.Actor,
			r.Success, r.Deleted, r.Failures, time.Duration(r.DurationMS)*time.Millisecond)
	}
	w.Flush()
}
