package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/mabhi256/massifglom/internal/massif/browse"
	"github.com/mabhi256/massifglom/internal/massif/parser"
	"github.com/mabhi256/massifglom/internal/massif/report"
	"github.com/mabhi256/massifglom/utils"
	"github.com/spf13/cobra"
)

var massifCmd = &cobra.Command{
	Use:   "massif",
	Short: "Work with Valgrind massif heap profile output",
}

var inspectOutput string

var massifInspectCmd = &cobra.Command{
	Use:               "inspect [massif-file]",
	Short:             "Parse a massif output file and print a summary",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: utils.CompleteFilesByExtension([]string{".massif", ".out"}, false),
	RunE: func(cmd *cobra.Command, args []string) error {
		filename := args[0]

		if _, err := os.Stat(filename); os.IsNotExist(err) {
			return fmt.Errorf("file does not exist: %s", filename)
		}

		profile, err := parser.ParseFile(filename)
		if err != nil {
			return err
		}

		switch inspectOutput {
		case "json":
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(profile)
		case "cli", "":
			fmt.Fprintln(cmd.OutOrStdout(), report.Summary(profile))
			return nil
		default:
			return fmt.Errorf("unknown output format %q, want \"cli\" or \"json\"", inspectOutput)
		}
	},
}

func init() {
	massifInspectCmd.Flags().StringVarP(&inspectOutput, "output", "o", "cli", "Output format")

	massifInspectCmd.RegisterFlagCompletionFunc("output", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return []string{"cli", "json"}, cobra.ShellCompDirectiveNoFileComp
	})
}

var massifValidateCmd = &cobra.Command{
	Use:               "validate [massif-file]",
	Short:             "Parse a massif output file and report only whether it is well-formed",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: utils.CompleteFilesByExtension([]string{".massif", ".out"}, false),
	RunE: func(cmd *cobra.Command, args []string) error {
		filename := args[0]

		if _, err := os.Stat(filename); os.IsNotExist(err) {
			return fmt.Errorf("file does not exist: %s", filename)
		}

		_, err := parser.ParseFile(filename)
		if err != nil {
			var parseErr *parser.ParseError
			if errors.As(err, &parseErr) {
				fmt.Println(utils.ErrorStyle.Render(fmt.Sprintf("invalid: %s", parseErr)))
				os.Exit(1)
			}
			return err
		}

		fmt.Println("valid")
		return nil
	},
}

var massifBrowseCmd = &cobra.Command{
	Use:               "browse [massif-file]",
	Short:             "Interactively browse a massif output file's snapshots and heap trees",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: utils.CompleteFilesByExtension([]string{".massif", ".out"}, false),
	RunE: func(cmd *cobra.Command, args []string) error {
		filename := args[0]

		if _, err := os.Stat(filename); os.IsNotExist(err) {
			return fmt.Errorf("file does not exist: %s", filename)
		}

		profile, err := parser.ParseFile(filename)
		if err != nil {
			return err
		}

		return browse.Start(profile)
	},
}

func init() {
	rootCmd.AddCommand(massifCmd)

	massifCmd.AddCommand(massifInspectCmd)
	massifCmd.AddCommand(massifValidateCmd)
	massifCmd.AddCommand(massifBrowseCmd)
}
