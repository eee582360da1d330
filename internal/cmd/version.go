package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Fepozopo/thermview/internal/update"
)

func newVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "print the thermview version",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println(Version)
			check, _ := cmd.Flags().GetBool("check-update")
			if !check {
				return nil
			}
			return update.Check(Version)
		},
	}
	cmd.Flags().Bool("check-update", false, "check "+update.Repo+" for a newer release")
	return cmd
}
