package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yeisme/csvvault/pkg/internal/storage/mq"
	"github.com/yeisme/csvvault/pkg/queue"
)

var (
	mqCmd = &cobra.Command{
		Use:     "mq",
		Short:   "Event bus related commands",
		Aliases: []string{"events"},
	}

	mqListCmd = &cobra.Command{
		Use:     "list",
		Short:   "list all registered mq types and event topics",
		Aliases: []string{"ls", "l"},
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "Registered mq types:")

			for _, t := range mq.GetRegisteredMQTypes() {
				fmt.Fprintln(cmd.OutOrStdout(), "   - "+string(t))
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Topics:")

			for _, t := range queue.Topics() {
				fmt.Fprintln(cmd.OutOrStdout(), "   - "+t)
			}
		},
	}
)

// registerMQCommands 注册 MQ 相关命令.
func registerMQCommands() {
	rootCmd.AddCommand(mqCmd)
	mqCmd.AddCommand(mqListCmd)
}
