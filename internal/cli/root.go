package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wesleyorama2/sockhttp/http"
)

var version = "0.1.0"

// NewRootCmd builds the command tree. Each call returns fresh flag state.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:     "sockhttp",
		Short:   "A small HTTP/1.1 client that speaks straight to the socket",
		Version: version,
		Long: `sockhttp builds HTTP/1.1 requests by hand, writes them to a TCP (or TLS)
socket and parses the reply itself. It follows up to 5 redirects, logs every
raw request and response, and can run named requests and suites from a YAML
config file.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	flags := root.PersistentFlags()
	flags.DurationP("timeout", "t", http.DefaultTimeout, "Socket timeout for connect, send and each receive")
	flags.StringP("output", "o", "text", "Output format: text, json or yaml")
	flags.BoolP("verbose", "v", false, "Show headers and extracted values")
	flags.Bool("no-color", false, "Disable colored output")
	flags.String("log-file", "", "Append the raw request/response log to this file")
	flags.Bool("log", false, "Write the raw request/response log to stderr")

	for _, verb := range verbs {
		root.AddCommand(newVerbCmd(verb))
	}
	root.AddCommand(newRunCmd())
	return root
}

// Execute runs the command line and reports the first error on stderr.
func Execute() error {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}
