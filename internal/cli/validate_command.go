package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ppiankov/argcoder/internal/export"
	"github.com/ppiankov/argcoder/internal/resume"
)

var (
	validateItems    string
	validateVariable string
)

// validateCmd checks a results file against an item store without
// starting a session
var validateCmd = &cobra.Command{
	Use:   "validate <results.csv>",
	Short: "Check whether a results file can resume against an item store",
	Long: `Validate runs the resume checks on a previously exported results file:
required columns present, and at least one coding_id matching the item
store. Rows for unknown coding_ids are reported but not fatal.

Example:
  argcoder validate coded_jane_inflation_20260820_141500.csv --variable Inflation
  argcoder validate results.csv --items my_sample.csv`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringVar(&validateItems, "items", "", "item store CSV (default: configured per-variable file)")
	validateCmd.Flags().StringVar(&validateVariable, "variable", "", "variable used to locate the default item file")
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()

	variable, err := parseVariableFlag(validateVariable)
	if err != nil {
		return err
	}

	items, err := loadItems(cfg, validateItems, variable)
	if err != nil {
		return err
	}

	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("open results file: %w", err)
	}
	defer f.Close()

	table, err := export.Read(f)
	if err != nil {
		return fmt.Errorf("read results file: %w", err)
	}

	res, err := resume.NewValidator(items).Validate(table)
	if err != nil {
		return fmt.Errorf("cannot resume from %s: %w", args[0], err)
	}

	if res.Warning != "" {
		fmt.Printf("Warning: %s\n", res.Warning)
	}
	fmt.Printf("Validated %d coded arguments against %d items\n", len(res.Accepted), len(items))
	fmt.Printf("Coder: %s  Variable: %s\n", res.Accepted[0].CoderName, res.Accepted[0].Variable)

	return nil
}
