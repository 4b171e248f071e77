package cmd

import (
	"fmt"
	"net/url"
	"strings"
	"text/template"
	"unicode"

	"github.com/charmbracelet/lorem/pkg/config"
	"github.com/spf13/cobra"
)

var templateFuncs = template.FuncMap{
	"trim":                    strings.TrimSpace,
	"trimRightSpace":          trimRightSpace,
	"trimTrailingWhitespaces": trimRightSpace,
	"rpad":                    rpad,
	"gt":                      cobra.Gt,
	"eq":                      cobra.Eq,
}

const (
	// UsageTemplate is the template used for the help output.
	UsageTemplate = `Usage:{{if .Runnable}}
  {{.SSHCommand}}{{.UseLine}}{{end}}{{if .HasAvailableSubCommands}}
  {{.SSHCommand}} [command]{{end}}{{if gt (len .Aliases) 0}}

Aliases:
  {{.NameAndAliases}}{{end}}{{if .HasExample}}

Examples:
{{.Example}}{{end}}{{if .HasAvailableSubCommands}}

Available Commands:{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{rpad .Name .NamePadding }} {{.Short}}{{end}}{{end}}{{end}}{{if .HasAvailableLocalFlags}}

Flags:
{{.LocalFlags.FlagUsages | trimTrailingWhitespaces}}{{end}}{{if .HasAvailableInheritedFlags}}

Global Flags:
{{.InheritedFlags.FlagUsages | trimTrailingWhitespaces}}{{end}}{{if .HasAvailableSubCommands}}

Use "{{.SSHCommand}} [command] --help" for more information about a command.
Connect with "ssh -t {{.SSHHost}}" to browse the panel.{{end}}
`
)

// UsageFunc is a function that can be used as a cobra.Command's
// UsageFunc to render the help output.
func UsageFunc(c *cobra.Command) error {
	sshCmd, host := SSHCommand(config.FromContext(c.Context()))
	t := template.New("usage")
	t.Funcs(templateFuncs)
	template.Must(t.Parse(c.UsageTemplate()))
	return t.Execute(c.OutOrStderr(), struct { //nolint:wrapcheck
		*cobra.Command
		SSHCommand string
		SSHHost    string
	}{
		Command:    c,
		SSHCommand: sshCmd,
		SSHHost:    host,
	})
}

// SSHCommand returns the ssh command line used to reach the server, and the
// host part alone.
func SSHCommand(cfg *config.Config) (cmd string, host string) {
	hostname := "localhost"
	port := "23234"
	if cfg != nil {
		if u, err := url.Parse(cfg.SSH.PublicURL); err == nil && u.Hostname() != "" {
			hostname = u.Hostname()
			port = u.Port()
		}
	}

	host = hostname
	cmd = "ssh"
	if port != "" && port != "22" {
		cmd += " -p " + port
		host = "-p " + port + " " + hostname
	}

	cmd += " " + hostname
	return cmd, host
}

func trimRightSpace(s string) string {
	return strings.TrimRightFunc(s, unicode.IsSpace)
}

// rpad adds padding to the right of a string.
func rpad(s string, padding int) string {
	template := fmt.Sprintf("%%-%ds", padding)
	return fmt.Sprintf(template, s)
}

// CommandName returns the name of the command from the args.
func CommandName(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
