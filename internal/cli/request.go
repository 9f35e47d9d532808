package cli

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wesleyorama2/sockhttp/http"
	"github.com/wesleyorama2/sockhttp/internal/logging"
	"github.com/wesleyorama2/sockhttp/internal/output"
)

type callFunc func(s *http.Session, ctx context.Context, rawURL string, p *http.Params) (*http.Response, error)

// verb is one of the one-shot request commands.
type verb struct {
	name   string
	method http.Method
	short  string
	call   callFunc
}

var verbs = []verb{
	{"get", http.MethodGet, "Send a GET request", (*http.Session).Get},
	{"post", http.MethodPost, "Send a POST request with an optional JSON body", (*http.Session).Post},
	{"put", http.MethodPut, "Send a PUT request with an optional JSON body", (*http.Session).Put},
	{"patch", http.MethodPut, "Send a PATCH request (sent as PUT)", (*http.Session).Patch},
	{"delete", http.MethodDelete, "Send a DELETE request", (*http.Session).Delete},
	{"head", http.MethodHead, "Send a HEAD request", (*http.Session).Head},
}

func newVerbCmd(v verb) *cobra.Command {
	cmd := &cobra.Command{
		Use:   v.name + " URL",
		Short: v.short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVerb(cmd, v, args[0])
		},
	}
	flags := cmd.Flags()
	flags.StringArrayP("header", "H", nil, "Header to send as \"Name: value\" (repeatable)")
	flags.StringArrayP("query", "q", nil, "Query parameter as key=value (repeatable)")
	flags.StringArray("extract", nil, "Print a body value as name=$.json.path (repeatable)")
	flags.String("schema", "", "JSON Schema file the response body must satisfy")
	if v.method.HasBody() {
		flags.StringP("data", "d", "", "JSON body, or @file to read it from a file")
	}
	return cmd
}

func runVerb(cmd *cobra.Command, v verb, rawURL string) error {
	g, err := readGlobals(cmd)
	if err != nil {
		return err
	}
	flags := cmd.Flags()

	rawHeaders, _ := flags.GetStringArray("header")
	headers, err := parseHeaders(rawHeaders)
	if err != nil {
		return err
	}
	rawQuery, _ := flags.GetStringArray("query")
	query, err := parseQuery(rawQuery)
	if err != nil {
		return err
	}
	rawExtract, _ := flags.GetStringArray("extract")
	extract, err := parseVars(rawExtract)
	if err != nil {
		return err
	}
	schemaFile, _ := flags.GetString("schema")
	schema, err := loadSchema(schemaFile)
	if err != nil {
		return err
	}
	var body interface{}
	if v.method.HasBody() {
		data, _ := flags.GetString("data")
		if body, err = parseBody(data); err != nil {
			return err
		}
	}

	logger, closeLog, err := g.openLogger(logging.Config{Level: logging.Info}, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer closeLog()

	session := http.NewSession(
		http.WithSessionTimeout(g.timeout),
		http.WithSessionLogger(logger),
	)
	p := &http.Params{Query: query, Headers: headers, Body: body}
	out := cmd.OutOrStdout()
	formatter := g.formatter()

	if g.verbose && g.format == output.FormatText {
		req, err := session.NewRequest(v.method, rawURL, p)
		if err != nil {
			return err
		}
		fmt.Fprint(out, formatter.FormatRequest(req))
	}

	resp, err := v.call(session, cmd.Context(), rawURL, p)
	if err != nil {
		return err
	}
	writeBlock(out, formatter.FormatResponse(resp))

	extracted, problems := inspect(resp, extract, schema)
	if g.format == output.FormatText {
		names := make([]string, 0, len(extracted))
		for name := range extracted {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintf(out, "%s = %s\n", name, extracted[name])
		}
	}
	if len(problems) > 0 {
		return fmt.Errorf("response checks failed: %s", strings.Join(problems, "; "))
	}
	return nil
}

// writeBlock writes s followed by exactly one newline.
func writeBlock(w io.Writer, s string) {
	fmt.Fprintln(w, strings.TrimRight(s, "\n"))
}
