// commissioncalc computes IB commissions from a catalog file without the server.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/username/ibportal/src/logger"
	"github.com/username/ibportal/src/models"
	"github.com/username/ibportal/src/parsers"
	"github.com/username/ibportal/src/processors"
	"github.com/username/ibportal/src/security/validation"
	"github.com/username/ibportal/src/utils"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		catalogPath   string
		accountTypeID string
		lotsArg       string
		asJSON        bool
	)

	root := &cobra.Command{
		Use:           "commissioncalc",
		Short:         "Calculate IB commissions per level for an account type",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level, _ := cmd.Flags().GetString("log-level")
			logger.InitLogger(level)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			lots, err := validation.ParseLots(lotsArg)
			if err != nil {
				return err
			}
			catalog, err := parsers.LoadCatalogFile(catalogPath)
			if err != nil {
				return err
			}
			if _, ok := catalog.FindAccountType(accountTypeID); !ok {
				return fmt.Errorf("unknown account type %q", accountTypeID)
			}

			results := processors.NewCommissionProcessor().Calculate(accountTypeID, lots, catalog.AccountTypes, catalog.CommissionLevels)
			quote := models.CommissionQuote{
				AccountTypeID: accountTypeID,
				Lots:          lots,
				Results:       results,
				Display:       utils.FormatResults(results),
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), quote)
			}
			return writeResultsTable(cmd.OutOrStdout(), quote.Display)
		},
	}

	root.PersistentFlags().StringVar(&catalogPath, "catalog", "data/catalog.yaml", "catalog file (.json, .yaml or .yml)")
	root.PersistentFlags().String("log-level", "warn", "log level (debug, info, warn, error)")
	root.PersistentFlags().BoolVar(&asJSON, "json", false, "print JSON instead of a table")
	root.Flags().StringVar(&accountTypeID, "account-type", "", "account type id")
	root.Flags().StringVar(&lotsArg, "lots", "1", "number of lots")
	_ = root.MarkFlagRequired("account-type")

	root.AddCommand(newInstrumentsCmd(&catalogPath, &asJSON))
	return root
}

func newInstrumentsCmd(catalogPath *string, asJSON *bool) *cobra.Command {
	var query string

	cmd := &cobra.Command{
		Use:   "instruments",
		Short: "List instruments, optionally filtered by name or category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := parsers.LoadCatalogFile(*catalogPath)
			if err != nil {
				return err
			}
			instruments := processors.NewInstrumentFilter().Search(catalog.Instruments, validation.SanitizeSearchQuery(query))
			if *asJSON {
				return writeJSON(cmd.OutOrStdout(), instruments)
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tCATEGORY")
			for _, in := range instruments {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", in.ID, in.Name, in.Category)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVar(&query, "query", "", "filter by instrument name or category")
	return cmd
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeResultsTable(w io.Writer, rows []models.DisplayResult) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "LEVEL\tSTRUCTURE\tUSD/LOT\tSPREAD %\tFIXED\tSPREAD\tTOTAL\t")
	for _, r := range rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t\n",
			r.LevelName, r.StructureName, r.USDPerLot, r.SpreadSharePercentage,
			r.FixedCommission, r.SpreadCommission, r.TotalCommission)
	}
	return tw.Flush()
}
