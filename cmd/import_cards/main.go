// import_cards carga tarjetas de stock desde un archivo Excel o CSV para un usuario existente.
//
// Uso: go run ./cmd/import_cards -user <uuid> -file tarjetas.xlsx
//
//	go run ./cmd/import_cards -user <uuid> -file legado.csv -charset latin1
//
// Las filas con código de barras repetido se omiten; el resto de errores se reportan por fila.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jhoicas/stockcard-api/internal/application/usecase"
	"github.com/jhoicas/stockcard-api/internal/domain"
	"github.com/jhoicas/stockcard-api/internal/infrastructure/cardimport"
	"github.com/jhoicas/stockcard-api/internal/infrastructure/storage"
	"github.com/jhoicas/stockcard-api/pkg/config"
	"github.com/jhoicas/stockcard-api/pkg/logger"
	"github.com/jhoicas/stockcard-api/pkg/migrate"
)

func main() {
	userID := flag.String("user", "", "ID del usuario dueño de las tarjetas")
	path := flag.String("file", "", "archivo .xlsx o .csv")
	charset := flag.String("charset", "", "charset del CSV: utf-8 | latin1 | windows-1252 | iso-8859-9 | windows-1254")
	flag.Parse()

	if *userID == "" || *path == "" {
		fmt.Fprintln(os.Stderr, "uso: import_cards -user <uuid> -file <archivo.xlsx|archivo.csv>")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel}).Named("import_cards")

	rows, err := readFile(*path, *charset)
	if err != nil {
		log.Fatal().Err(err).Str("file", *path).Msg("leer archivo")
	}

	ctx := context.Background()
	store, err := storage.Open(ctx, cfg.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a base de datos")
	}
	defer store.Close()

	if err := migrate.MaybeRun(ctx, cfg.DB, log, store.SQL); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}

	user, err := store.Users.GetByID(ctx, *userID)
	if err != nil {
		log.Fatal().Err(err).Msg("buscar usuario")
	}
	if user == nil {
		log.Fatal().Str("user_id", *userID).Msg("usuario no encontrado")
	}

	uc := usecase.NewStockCardUseCase(store.Cards)
	var created, skipped, failed int
	for _, row := range rows {
		if row.Err != nil {
			failed++
			log.Warn().Int("line", row.Line).Err(row.Err).Msg("fila inválida")
			continue
		}
		_, err := uc.Create(ctx, user.ID, row.Request)
		var ve *domain.ValidationError
		switch {
		case err == nil:
			created++
		case errors.Is(err, domain.ErrDuplicateBarcode):
			skipped++
			log.Info().Int("line", row.Line).Str("barcode", row.Request.Barcode).Msg("código de barras ya registrado, se omite")
		case errors.As(err, &ve):
			failed++
			log.Warn().Int("line", row.Line).Interface("fields", ve.Fields).Msg("fila inválida")
		default:
			log.Fatal().Err(err).Int("line", row.Line).Msg("crear tarjeta")
		}
	}

	log.Info().
		Int("filas", len(rows)).
		Int("creadas", created).
		Int("omitidas", skipped).
		Int("con_error", failed).
		Msg("importación terminada")
	fmt.Printf("creadas=%d omitidas=%d con_error=%d\n", created, skipped, failed)
}

func readFile(path, charset string) ([]cardimport.Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return cardimport.ReadXLSX(f)
	case ".csv", ".txt":
		return cardimport.ReadCSV(f, charset)
	}
	return nil, fmt.Errorf("extensión no soportada: %s (use .xlsx o .csv)", filepath.Ext(path))
}
