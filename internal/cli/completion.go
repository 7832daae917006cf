package cli

import (
	"fmt"
	"io"
	"strings"
)

// FlagCompletion describes a CLI flag for shell completion generation.
// All shell completion functions generate from this registry, so adding
// a new flag only requires appending to flagRegistry.
type FlagCompletion struct {
	Long      string   // long flag name without "--" (e.g., "threads")
	Short     string   // short flag without "-" (e.g., "t")
	Help      string   // description text
	Values    []string // suggested completion values (nil = boolean/no suggestions)
	ValueName string   // label for the value in zsh (e.g., "number", "duration")
	IsFile    bool     // true if the flag takes a file path
	IsScheme  bool     // true if values come from the scheme list (dynamic)
	Section   string   // fish comment section
}

// flagRegistry is the central list of all CLI flags for completion generation.
var flagRegistry = []FlagCompletion{
	{Long: "help", Short: "h", Help: "Show help message", Section: "Help and version"},
	{Long: "version", Short: "V", Help: "Show version information", Section: "Help and version"},
	{Long: "threads", Short: "t", Help: "Number of worker goroutines", Values: []string{"1", "2", "4", "8", "16"}, ValueName: "count", Section: "Search"},
	{Long: "max", Short: "n", Help: "Inclusive upper bound of the search", Values: []string{"1000", "100000", "1000000"}, ValueName: "number", Section: "Search"},
	{Long: "scheme", Help: "Partitioning scheme", IsScheme: true, ValueName: "scheme", Section: "Search"},
	{Long: "delivery", Help: "Result delivery mode", Values: []string{"immediate", "deferred"}, ValueName: "mode", Section: "Search"},
	{Long: "config", Help: "Properties file with threads and maxNumber", IsFile: true, ValueName: "file", Section: "Search"},
	{Long: "interactive", Short: "i", Help: "Choose scheme and delivery from a menu", Section: "Search"},
	{Long: "timeout", Help: "Maximum execution time", Values: []string{"30s", "1m", "5m", "10m"}, ValueName: "duration", Section: "Search"},
	{Long: "verify", Help: "Check the result against a sequential sieve", Section: "Search"},
	{Long: "calibrate", Help: "Benchmark thread counts for both schemes", Section: "Calibration"},
	{Long: "output", Short: "o", Help: "Write the primes to a file", IsFile: true, ValueName: "file", Section: "Output"},
	{Long: "quiet", Short: "q", Help: "Print only the primes", Section: "Output"},
	{Long: "verbose", Short: "v", Help: "Show run statistics", Section: "Output"},
	{Long: "no-color", Help: "Disable colored output", Section: "Output"},
	{Long: "tui", Help: "Run with the interactive dashboard", Section: "Output"},
	{Long: "metrics-addr", Help: "Serve Prometheus metrics on this address", ValueName: "address", Section: "Observability"},
	{Long: "log-level", Help: "Diagnostic log level", Values: []string{"debug", "info", "warn", "error"}, ValueName: "level", Section: "Observability"},
	{Long: "completion", Help: "Generate completion script", Values: []string{"bash", "zsh", "fish"}, ValueName: "shell", Section: "Completion"},
}

// fishSections lists the fish comment sections in output order.
var fishSections = []string{"Help and version", "Search", "Calibration", "Output", "Observability", "Completion"}

// GenerateCompletion generates a shell completion script for the specified shell.
//
// Parameters:
//   - out: The writer to output the completion script.
//   - shell: The shell type ("bash", "zsh", "fish").
//   - schemes: List of available scheme names.
//
// Returns:
//   - error: An error if the shell is not supported.
func GenerateCompletion(out io.Writer, shell string, schemes []string) error {
	switch shell {
	case "bash":
		return generateBashCompletion(out, schemes)
	case "zsh":
		return generateZshCompletion(out, schemes)
	case "fish":
		return generateFishCompletion(out, schemes)
	default:
		return fmt.Errorf("unsupported shell: %s (accepted values: bash, zsh, fish)", shell)
	}
}

// formatSchemeList joins scheme names with space separators.
func formatSchemeList(schemes []string) string {
	return strings.Join(schemes, " ")
}

// generateBashCompletion generates a Bash completion script.
func generateBashCompletion(out io.Writer, schemes []string) error {
	var opts []string
	for _, f := range flagRegistry {
		if f.Long != "" {
			opts = append(opts, "--"+f.Long)
		}
		if f.Short != "" {
			opts = append(opts, "-"+f.Short)
		}
	}

	var caseBody strings.Builder
	writeCase := func(patterns []string, body string) {
		caseBody.WriteString("        ")
		caseBody.WriteString(strings.Join(patterns, "|"))
		caseBody.WriteString(")\n            ")
		caseBody.WriteString(body)
		caseBody.WriteString("\n            return 0\n            ;;\n")
	}

	var filePatterns []string
	for _, f := range flagRegistry {
		patterns := flagPatterns(f)
		switch {
		case f.IsScheme:
			writeCase(patterns, `COMPREPLY=( $(compgen -W "${schemes}" -- "${cur}") )`)
		case f.IsFile:
			filePatterns = append(filePatterns, patterns...)
		case len(f.Values) > 0:
			writeCase(patterns, fmt.Sprintf(`COMPREPLY=( $(compgen -W "%s" -- "${cur}") )`, strings.Join(f.Values, " ")))
		}
	}
	if len(filePatterns) > 0 {
		writeCase(filePatterns, `COMPREPLY=( $(compgen -f -- "${cur}") )`)
	}

	script := fmt.Sprintf(`# Bash completion script for primecalc
# Add this to your ~/.bashrc or ~/.bash_completion

_primecalc_completions() {
    local cur prev opts schemes
    COMPREPLY=()
    cur="${COMP_WORDS[COMP_CWORD]}"
    prev="${COMP_WORDS[COMP_CWORD-1]}"

    # Main options
    opts="%s"

    # Available schemes
    schemes="%s all"

    case "${prev}" in
%s    esac

    if [[ "${cur}" == -* ]]; then
        COMPREPLY=( $(compgen -W "${opts}" -- "${cur}") )
        return 0
    fi
}

complete -F _primecalc_completions primecalc
`, strings.Join(opts, " "), formatSchemeList(schemes), caseBody.String())

	if _, err := fmt.Fprint(out, script); err != nil {
		return fmt.Errorf("completion bash generation failed: %w", err)
	}
	return nil
}

// flagPatterns returns the dashed spellings of a flag.
func flagPatterns(f FlagCompletion) []string {
	var patterns []string
	if f.Long != "" {
		patterns = append(patterns, "--"+f.Long)
	}
	if f.Short != "" {
		patterns = append(patterns, "-"+f.Short)
	}
	return patterns
}

// generateZshCompletion generates a Zsh completion script.
func generateZshCompletion(out io.Writer, schemes []string) error {
	var args []string
	for _, f := range flagRegistry {
		args = append(args, zshArgEntry(f))
	}

	script := fmt.Sprintf(`#compdef primecalc

# Zsh completion script for primecalc
# Add this to your ~/.zshrc or place in $fpath

_primecalc() {
    local -a schemes
    schemes=(%s all)

    _arguments -s \
%s
}

_primecalc "$@"
`, formatSchemeList(schemes), strings.Join(args, " \\\n"))

	if _, err := fmt.Fprint(out, script); err != nil {
		return fmt.Errorf("completion zsh generation failed: %w", err)
	}
	return nil
}

// zshArgEntry formats a single FlagCompletion as a zsh _arguments entry.
func zshArgEntry(f FlagCompletion) string {
	valueSuffix := ""
	switch {
	case f.IsFile:
		valueSuffix = fmt.Sprintf(":%s:_files", f.ValueName)
	case f.IsScheme:
		valueSuffix = fmt.Sprintf(":%s:($schemes)", f.ValueName)
	case len(f.Values) > 0:
		valueSuffix = fmt.Sprintf(":%s:(%s)", f.ValueName, strings.Join(f.Values, " "))
	case f.ValueName != "":
		valueSuffix = fmt.Sprintf(":%s:", f.ValueName)
	}

	if f.Long != "" && f.Short != "" {
		return fmt.Sprintf("        '(-%s --%s)'{-%s,--%s}'[%s]%s'",
			f.Short, f.Long, f.Short, f.Long, f.Help, valueSuffix)
	}
	if f.Long != "" {
		return fmt.Sprintf("        '--%s[%s]%s'", f.Long, f.Help, valueSuffix)
	}
	return fmt.Sprintf("        '-%s[%s]%s'", f.Short, f.Help, valueSuffix)
}

// generateFishCompletion generates a Fish completion script.
func generateFishCompletion(out io.Writer, schemes []string) error {
	lines := []string{
		"# Fish completion script for primecalc",
		"# Add this to ~/.config/fish/completions/primecalc.fish",
		"",
		"# Disable file completion by default",
		"complete -c primecalc -f",
		"",
	}

	schemeList := formatSchemeList(schemes)
	for _, section := range fishSections {
		lines = append(lines, "# "+section)
		for _, f := range flagRegistry {
			if f.Section == section {
				lines = append(lines, fishCompleteLine(f, schemeList))
			}
		}
		lines = append(lines, "")
	}

	if _, err := fmt.Fprint(out, strings.Join(lines, "\n")); err != nil {
		return fmt.Errorf("completion fish generation failed: %w", err)
	}
	return nil
}

// fishCompleteLine formats a single FlagCompletion as a fish complete command.
func fishCompleteLine(f FlagCompletion, schemeList string) string {
	parts := []string{"complete -c primecalc"}
	if f.Short != "" {
		parts = append(parts, fmt.Sprintf("-s %s", f.Short))
	}
	if f.Long != "" {
		parts = append(parts, fmt.Sprintf("-l %s", f.Long))
	}
	parts = append(parts, fmt.Sprintf("-d '%s'", f.Help))

	switch {
	case f.IsFile:
		parts = append(parts, "-rF")
	case f.IsScheme:
		parts = append(parts, fmt.Sprintf("-xa '%s all'", schemeList))
	case len(f.Values) > 0:
		parts = append(parts, fmt.Sprintf("-xa '%s'", strings.Join(f.Values, " ")))
	case f.ValueName != "":
		parts = append(parts, "-x")
	}
	return strings.Join(parts, " ")
}
