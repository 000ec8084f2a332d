package root

import (
	"github.com/flarebyte/speakset-native/cmd/speakset/generate"
	"github.com/flarebyte/speakset-native/cmd/speakset/serve"
	"github.com/flarebyte/speakset-native/cmd/speakset/version"
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for speakset.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:                   "speakset <token|message_id> <value...>",
		Short:                 "CLI: Issue opaque, time-salted session tokens and message ids",
		DisableFlagParsing:    true,
		DisableFlagsInUseLine: true,
		SilenceUsage:          true,
		SilenceErrors:         true,
	}
	cmd.CompletionOptions.DisableDefaultCmd = true
	// No help subcommand: "help" is an unknown command like any other word.
	cmd.SetHelpCommand(&cobra.Command{Use: "no-help", Hidden: true})

	// Subcommands
	cmd.AddCommand(generate.NewTokenCmd())
	cmd.AddCommand(generate.NewMessageIDCmd())
	cmd.AddCommand(serve.NewCmd())
	cmd.AddCommand(version.VersionCmd)

	return cmd
}

// Execute runs the root command with provided args.
func Execute(args []string) error {
	return run(NewRootCmd(), args)
}

// run hands args to cobra only when args[0] names a subcommand exactly.
// Everything else, including flag-looking first arguments, goes straight to
// the generator so the first argument is always the command.
func run(cmd *cobra.Command, args []string) error {
	if len(args) == 0 || !isSubcommand(cmd, args[0]) {
		return generate.Run(cmd, args)
	}
	cmd.SetArgs(args)
	return cmd.Execute()
}

func isSubcommand(cmd *cobra.Command, name string) bool {
	for _, sub := range cmd.Commands() {
		if !sub.Hidden && sub.Name() == name {
			return true
		}
	}
	return false
}
