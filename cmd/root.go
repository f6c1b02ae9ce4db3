package cmd

import (
	"github.com/spf13/cobra"
)

// New creates the root command with all subcommands registered.
func New() *cobra.Command {
	opts := &Options{}

	rootCmd := &cobra.Command{
		Use:   "slopguard owner/repo#number",
		Short: "Heuristic screening for low-effort pull requests",
		Long: `A CLI tool that scores pull requests against heuristics for
low-effort, generated contributions: submission velocity, placeholder
code, fabricated imports, shotgun cross-posting, and more. It produces
a 0-100 score and a pass/warn/flag/block verdict.`,
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			return runCheck(cmd, args, opts)
		},
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	// Add check flags to root command so `slopguard` and `slopguard check`
	// work identically
	addCheckFlags(rootCmd, opts)

	// Register subcommands
	rootCmd.AddCommand(NewCmdCheck(opts))
	rootCmd.AddCommand(NewCmdConfig())
	rootCmd.AddCommand(NewCmdVersion())

	return rootCmd
}
