package cmd

import (
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

var partsCmd = &cobra.Command{
	Use:   "parts",
	Short: "Manage the part cache",
}

var partsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List cached drawings",
	Args:  cobra.NoArgs,
	RunE:  runPartsList,
}

var partsRmCmd = &cobra.Command{
	Use:   "rm <id>...",
	Short: "Remove cached drawings",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runPartsRm,
}

func init() {
	rootCmd.AddCommand(partsCmd)
	partsCmd.AddCommand(partsListCmd, partsRmCmd)
}

func runPartsList(cmd *cobra.Command, _ []string) error {
	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	list, err := s.List()
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tCREATED\tPARTS")
	for _, e := range list {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", e.ID, e.Name, e.Created.Format(time.DateTime), strings.Join(e.Parts, ","))
	}
	return tw.Flush()
}

func runPartsRm(cmd *cobra.Command, args []string) error {
	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	for _, id := range args {
		if err := s.Delete(id); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "removed %s\n", id)
	}
	return nil
}
