package main

import (
	"github.com/forgo/library/internal/repository"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Define the catalog tables, fields and indexes",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer func() { _ = db.Close() }()

		if err := repository.ApplySchema(cmd.Context(), db); err != nil {
			return err
		}
		logger.Info("schema applied", zap.Int("statements", len(repository.SchemaStatements())))
		return nil
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert a small sample catalog",
	Long: `Inserts sample authors, genres, books and copies in a single
transaction. Either everything is written or nothing is.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer func() { _ = db.Close() }()

		catalog := repository.SampleCatalog()
		if err := repository.Seed(cmd.Context(), db, catalog); err != nil {
			return err
		}
		logger.Info("catalog seeded",
			zap.Int("authors", len(catalog.Authors)),
			zap.Int("genres", len(catalog.Genres)),
			zap.Int("books", len(catalog.Books)),
			zap.Int("copies", len(catalog.Copies)),
		)
		return nil
	},
}
