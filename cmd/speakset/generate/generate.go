package generate

import (
	"fmt"

	"github.com/flarebyte/speakset-native/internal/ident"
	"github.com/spf13/cobra"
)

// newGenerator is swapped in tests to pin the clock.
var newGenerator = func() *ident.Generator { return ident.New() }

// NewTokenCmd creates `speakset token <username>`.
func NewTokenCmd() *cobra.Command {
	return newCmd(ident.CommandToken, "<username>", "Print a session token for username")
}

// NewMessageIDCmd creates `speakset message_id <value...>`.
func NewMessageIDCmd() *cobra.Command {
	return newCmd(ident.CommandMessageID, "<value...>", "Print a message id for the given fields")
}

func newCmd(name, argsUsage, short string) *cobra.Command {
	return &cobra.Command{
		Use:   name + " " + argsUsage,
		Short: short,
		// Values are opaque strings and may start with a dash.
		DisableFlagParsing:    true,
		DisableFlagsInUseLine: true,
		Args:                  cobra.ArbitraryArgs,
		SilenceUsage:          true,
		SilenceErrors:         true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return Run(cmd, append([]string{name}, args...))
		},
	}
}

// Run generates the identifier for args (command first) and writes it to
// the command's stdout without a trailing newline.
func Run(cmd *cobra.Command, args []string) error {
	out, err := newGenerator().Generate(args)
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(cmd.OutOrStdout(), out)
	return err
}
