package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/jhoicas/stockcard-api/internal/infrastructure/storage"
	"github.com/jhoicas/stockcard-api/pkg/config"
	"github.com/jhoicas/stockcard-api/pkg/logger"
	"github.com/jhoicas/stockcard-api/pkg/migrate"
)

func main() {
	cmd := flag.String("cmd", "up", "comando: up|down|status|version|current|files")
	version := flag.String("version", "", "versión destino para -cmd=version (ej. 3)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel}).Named("migrate")

	// Comandos que no requieren BD
	if *cmd == "files" {
		files, err := migrate.Files(cfg.DB.Driver)
		requireResource(log, "migrations", err)
		for _, f := range files {
			fmt.Println(f)
		}
		return
	}

	ctx := context.Background()
	store, err := storage.Open(ctx, cfg.DB, log)
	requireResource(log, "database", err)
	defer store.Close()

	log.Info().Str("cmd", *cmd).Str("driver", cfg.DB.Driver).Msg("migrate listo")

	switch *cmd {
	case "up", "down", "status":
		err = migrate.Run(ctx, store.SQL, cfg.DB.Driver, *cmd)
	case "version":
		if *version == "" {
			fmt.Fprintln(os.Stderr, "falta -version para el comando version")
			os.Exit(1)
		}
		err = migrate.MigrateToVersion(ctx, store.SQL, cfg.DB.Driver, *version)
	case "current":
		var v int64
		v, err = migrate.Version(ctx, store.SQL, cfg.DB.Driver)
		if err == nil {
			fmt.Println(v)
		}
	default:
		fmt.Fprintln(os.Stderr, "valor -cmd desconocido:", *cmd)
		os.Exit(1)
	}
	if err != nil {
		log.Error().Err(err).Str("cmd", *cmd).Msg("migración fallida")
		store.Close()
		os.Exit(1)
	}
}

func requireResource(log *logger.Logger, resource string, err error) {
	if err == nil {
		return
	}
	log.Error().Err(err).Str("resource", resource).Msg("recurso no disponible")
	os.Exit(1)
}
