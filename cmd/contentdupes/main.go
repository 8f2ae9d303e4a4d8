// Contentdupes lists catalog items that share a value within the same
// language, level and content type.
//
//	contentdupes -lang spanish -level beginner
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"lingo_admin_console/internal/bootstrap"
	"lingo_admin_console/internal/config"
	"lingo_admin_console/internal/repository"
	"lingo_admin_console/internal/service"
)

func main() {
	configDir := flag.String("config", "configs", "directory holding config.yaml")
	lang := flag.String("lang", "", "only this language (default all)")
	level := flag.String("level", "", "only this level (default all levels of each language)")
	flag.Parse()

	if err := config.LoadConfig(*configDir); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	logger := bootstrap.NewLogger(os.Getenv("APP_ENV"), config.Cfg.Log.Level)
	ctx := context.Background()

	backends, err := bootstrap.OpenBackends(ctx, config.Cfg.Firebase, logger)
	if err != nil {
		log.Fatalf("Failed to open document store: %v", err)
	}
	defer backends.Close()

	// Read-only: the engine, audit log and cache are never touched.
	contentRepo := repository.NewDocContentRepository(backends.Store, config.Cfg.Purge.PageSize)
	svc := service.NewContentService(nil, contentRepo, nil, nil, logger)

	groups, err := svc.FindDuplicates(ctx, *lang, *level)
	if err != nil {
		log.Fatalf("Failed to scan catalog: %v", err)
	}
	if len(groups) == 0 {
		fmt.Println("No duplicate content found.")
		return
	}
	for _, g := range groups {
		fmt.Printf("%s/%s/%s %q: %s\n", g.LanguageID, g.Level, g.Type, g.Value, strings.Join(g.ItemIDs, ", "))
	}
	fmt.Printf("%d duplicate group(s)\n", len(groups))
}
