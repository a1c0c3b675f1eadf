package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ppiankov/argcoder/internal/export"
	"github.com/ppiankov/argcoder/internal/resume"
	"github.com/ppiankov/argcoder/internal/session"
)

var (
	statusItems    string
	statusVariable string
)

// statusCmd summarizes progress recorded in a results file
var statusCmd = &cobra.Command{
	Use:   "status <results.csv>",
	Short: "Show per-item progress from a results file",
	Long: `Status validates a results file against the item store, then prints one
row per item showing whether it has been coded, with the recorded score
and category. The footer shows where a resumed session would pick up.

Example:
  argcoder status coded_jane_inflation_20260820_141500.csv --variable Inflation`,
	Args: cobra.ExactArgs(1),
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)

	statusCmd.Flags().StringVar(&statusItems, "items", "", "item store CSV (default: configured per-variable file)")
	statusCmd.Flags().StringVar(&statusVariable, "variable", "", "variable used to locate the default item file")
}

func runStatus(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()

	variable, err := parseVariableFlag(statusVariable)
	if err != nil {
		return err
	}

	items, err := loadItems(cfg, statusItems, variable)
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
		fmt.Fprintf(os.Stderr, "Warning: %s\n", res.Warning)
	}

	sess, err := session.New(items)
	if err != nil {
		return err
	}
	if err := sess.Restore(res.Accepted); err != nil {
		return err
	}

	rows := make([][]string, 0, len(items))
	for i, item := range items {
		row := []string{strconv.Itoa(i + 1), item.CodingID, "", "", ""}
		if rec, ok := sess.Record(item.CodingID); ok {
			row[2] = "coded"
			row[3] = strconv.Itoa(rec.Score)
			row[4] = rec.ArgumentCategory
		}
		rows = append(rows, row)
	}

	fmt.Println(renderTable(
		[]string{"#", "Coding ID", "Status", "Score", "Argument Category"},
		rows,
		[]columnAlignment{alignRight, alignLeft, alignLeft, alignRight, alignLeft},
	))

	p := sess.Progress()
	fmt.Printf("\nCoded: %d / %d  Coder: %s  Variable: %s\n", p.Coded, p.Total, sess.LockedCoder(), sess.LockedVariable())
	if p.Complete {
		fmt.Println("All arguments have been reviewed.")
	} else {
		fmt.Printf("A resumed session would continue at argument %d (%s)\n", p.Position+1, items[p.Position].CodingID)
	}

	return nil
}
