package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/yeisme/csvvault/pkg/app"
	"github.com/yeisme/csvvault/pkg/configs"
	"github.com/yeisme/csvvault/pkg/internal/router"
)

var routesCmd = &cobra.Command{
	Use:   "routes",
	Short: "print the HTTP routes served by the API",
	RunE: func(cmd *cobra.Command, args []string) error {
		engine := app.NewEngine(cmd.Context(), configs.GetConfig(), nil, nil)

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "METHOD\tPATH")

		for _, r := range router.Routes(engine) {
			fmt.Fprintf(w, "%s\t%s\n", r.Method, r.Path)
		}

		return w.Flush()
	},
}

func registerRoutesCommands() {
	rootCmd.AddCommand(routesCmd)
}
