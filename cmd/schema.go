package cmd

import (
	"encoding/json"
	"fmt"

	"order-menu/feature/schema"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// schemaCmd is the parent command for schema maintenance.
var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Create and inspect the database schema",
}

var schemaCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create missing tables and seed default settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := bootstrap()
		if err != nil {
			return err
		}
		defer rt.close()

		if err := schema.NewService(rt.db, rt.logger).CreateTables(cmd.Context()); err != nil {
			return err
		}
		rt.logger.Info("Database tables created successfully")
		return nil
	},
}

var schemaBackfillCmd = &cobra.Command{
	Use:   "backfill-country",
	Short: "Add the country column where missing and fill empty values",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := bootstrap()
		if err != nil {
			return err
		}
		defer rt.close()

		reports, err := schema.NewService(rt.db, rt.logger).BackfillCountry(cmd.Context())
		if err != nil {
			return err
		}
		for _, r := range reports {
			rt.logger.Info("Country backfilled",
				zap.String("table", r.Table),
				zap.Bool("column_added", r.ColumnAdded),
				zap.Int64("updated", r.Updated),
			)
		}
		return nil
	},
}

var schemaDescribeCmd = &cobra.Command{
	Use:   "describe",
	Short: "Print tables, columns and row counts",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := bootstrap()
		if err != nil {
			return err
		}
		defer rt.close()

		tables, err := schema.NewService(rt.db, rt.logger).Describe(cmd.Context())
		if err != nil {
			return err
		}
		data, err := json.MarshalIndent(tables, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Println(string(data))
		return nil
	},
}

func init() {
	schemaCmd.AddCommand(schemaCreateCmd, schemaBackfillCmd, schemaDescribeCmd)
	RootCmd.AddCommand(schemaCmd)
}
