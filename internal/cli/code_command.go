package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/ppiankov/argcoder/internal/export"
	"github.com/ppiankov/argcoder/internal/model"
	"github.com/ppiankov/argcoder/internal/resume"
	"github.com/ppiankov/argcoder/internal/session"
)

var (
	codeItems    string
	codeResume   string
	codeCoder    string
	codeVariable string
	codeOut      string
	codeCatalog  string
	codeScript   string
)

// codeCmd runs an interactive coding session
var codeCmd = &cobra.Command{
	Use:   "code",
	Short: "Run an interactive coding session",
	Long: `Code walks the item store one quotation at a time. For each argument
you assign an outlook score, mark whether the speaker cites data, select
categories, and save. Saving locks your name and the variable for the
rest of the session.

Resuming from a previous results file replaces the session's records and
continues at the first uncoded argument; the resumed file's coder name
and variable are authoritative.

Results are written as CSV when the session ends, suitable for a later
--resume.

Example:
  argcoder code --variable Inflation --coder "Jane Doe"
  argcoder code --items sample.csv --resume coded_jane_inflation_20260820_141500.csv`,
	RunE: runCode,
}

func init() {
	rootCmd.AddCommand(codeCmd)

	codeCmd.Flags().StringVar(&codeItems, "items", "", "item store CSV (default: configured per-variable file)")
	codeCmd.Flags().StringVar(&codeResume, "resume", "", "previously exported results CSV to resume from")
	codeCmd.Flags().StringVar(&codeCoder, "coder", "", "coder name (locked after the first save)")
	codeCmd.Flags().StringVar(&codeVariable, "variable", "", "economic variable to code (Inflation or Employment)")
	codeCmd.Flags().StringVar(&codeOut, "out", "", "output CSV path (default: conventional name in the output dir)")
	codeCmd.Flags().StringVar(&codeCatalog, "catalog", "", "category catalog file (YAML)")
	codeCmd.Flags().StringVar(&codeScript, "script", "", "read answers from a file instead of the terminal")
}

func runCode(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()

	variable, err := parseVariableFlag(codeVariable)
	if err != nil {
		return err
	}

	items, err := loadItems(cfg, codeItems, variable)
	if err != nil {
		return err
	}

	cat, err := loadCatalog(cfg, codeCatalog)
	if err != nil {
		return err
	}

	sess, err := session.New(items)
	if err != nil {
		return err
	}

	if codeResume != "" {
		if err := resumeSession(sess, codeResume, items); err != nil {
			return err
		}
	}

	var in io.Reader = os.Stdin
	if codeScript != "" {
		f, err := os.Open(codeScript)
		if err != nil {
			return fmt.Errorf("open script file: %w", err)
		}
		defer f.Close()
		in = f
	} else if !isatty.IsTerminal(os.Stdin.Fd()) && !isatty.IsCygwinTerminal(os.Stdin.Fd()) {
		return fmt.Errorf("stdin is not a terminal; use --script to run non-interactively")
	}

	c := newCoder(sess, cat, in, os.Stdout)
	c.coderName = codeCoder
	c.variable = variable

	if err := c.run(); err != nil {
		return err
	}

	if sess.CodedCount() == 0 {
		fmt.Println("No arguments coded; nothing to export.")
		return nil
	}

	path := codeOut
	if path == "" {
		name := export.Filename(sess.LockedCoder(), sess.LockedVariable(), time.Now())
		path = filepath.Join(cfg.Output.Dir, name)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create results file: %w", err)
	}
	defer f.Close()

	if err := export.Write(f, sess.Records()); err != nil {
		return fmt.Errorf("write results: %w", err)
	}

	fmt.Printf("Wrote %d coded arguments to %s\n", sess.CodedCount(), path)
	return nil
}

// resumeSession validates the results file and replaces the session's
// record set with its accepted rows.
func resumeSession(sess *session.Session, path string, items []model.CodingItem) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open resume file: %w", err)
	}
	defer f.Close()

	table, err := export.Read(f)
	if err != nil {
		return fmt.Errorf("read resume file: %w", err)
	}

	res, err := resume.NewValidator(items).Validate(table)
	if err != nil {
		return fmt.Errorf("cannot load session: %w", err)
	}
	if res.Warning != "" {
		fmt.Fprintf(os.Stderr, "Warning: %s\n", res.Warning)
	}

	if err := sess.Restore(res.Accepted); err != nil {
		return fmt.Errorf("restore session: %w", err)
	}

	fmt.Printf("Loaded %d coded arguments (coder %s, variable %s)\n",
		len(res.Accepted), sess.LockedCoder(), sess.LockedVariable())
	return nil
}
