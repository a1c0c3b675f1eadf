package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ppiankov/argcoder/internal/model"
)

var (
	categoriesVariable string
	categoriesCatalog  string
)

// categoriesCmd prints the category reference guide
var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "Show the category reference guide",
	Long: `Display the argument categories for each variable and the data-source
categories, with their descriptions. This is the same option set the
coding form offers, minus the "` + model.OtherCategory + `" escape hatch
that is always appended.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()

		cat, err := loadCatalog(cfg, categoriesCatalog)
		if err != nil {
			return err
		}

		variable, err := parseVariableFlag(categoriesVariable)
		if err != nil {
			return err
		}

		variables := model.Variables
		if variable != "" {
			variables = []model.Variable{variable}
		}

		for _, v := range variables {
			fmt.Printf("%s Argument Categories\n", v)
			var rows [][]string
			for _, a := range cat.ArgumentsFor(v) {
				rows = append(rows, []string{a.Name, a.Description})
			}
			fmt.Println(renderTable([]string{"Category", "Description"}, rows, nil))
			fmt.Println()
		}

		fmt.Println("Data Source Categories")
		var rows [][]string
		for _, d := range cat.Data {
			rows = append(rows, []string{d.Name, d.Description})
		}
		fmt.Println(renderTable([]string{"Category", "Description"}, rows, nil))

		return nil
	},
}

func init() {
	rootCmd.AddCommand(categoriesCmd)

	categoriesCmd.Flags().StringVar(&categoriesVariable, "variable", "", "limit to one variable (Inflation or Employment)")
	categoriesCmd.Flags().StringVar(&categoriesCatalog, "catalog", "", "category catalog file (YAML)")
}
