package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/seamql/seam"
	"github.com/seamql/seam/internal/cli"
)

var (
	composePlaceholder string
	composeParams      []string
)

var composeCmd = &cobra.Command{
	Use:   "compose <query-file>",
	Short: "Assemble a query definition into SQL",
	Long:  `Assemble a YAML query definition into SQL text and its bound arguments.`,
	Example: `  # Print the SQL a definition composes to
  seam compose queries/users.yaml

  # Override a named parameter
  seam compose queries/users.yaml --param org_id=42

  # Emit $n markers for PostgreSQL
  seam compose queries/users.yaml --placeholder dollar`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		qf, err := loadQueryFile(args[0])
		if err != nil {
			return err
		}

		opts, err := applyParamOverrides(qf.Options, composeParams)
		if err != nil {
			return err
		}

		format, err := placeholderFromName(resolveString(composePlaceholder, cfg.ResolvedPlaceholder()))
		if err != nil {
			return err
		}

		composer := seam.Composer{Placeholder: format}
		res, err := composer.Compose(&qf.Query, opts)
		if err != nil {
			return cli.GeneralError("composing query", err)
		}

		fmt.Println(res.Text)
		if len(res.Args) > 0 {
			fmt.Println()
			for i, arg := range res.Args {
				fmt.Printf("-- arg %d: %v\n", i+1, arg)
			}
		}
		return nil
	},
}

func init() {
	f := composeCmd.Flags()
	f.StringVar(&composePlaceholder, "placeholder", "", "placeholder style: question or dollar")
	f.StringArrayVar(&composeParams, "param", nil, "override a named parameter (key=value, repeatable)")
}
