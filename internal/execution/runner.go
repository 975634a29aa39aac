package execution

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"regexp"
	"strings"

	"tmap/internal/config"
)

// safeArgPattern matches arguments that can appear unquoted on a shell
// command line.
var safeArgPattern = regexp.MustCompile(`^[A-Za-z0-9_\-./=]+$`)

// ExitError reports a non-zero exit from the external test runner, so the
// CLI can propagate the child's exit code as its own.
type ExitError struct {
	Code int
	Cmd  string
}

// Error returns the message naming the command and its exit status.
func (e *ExitError) Error() string {
	return fmt.Sprintf("%s: exit status %d", e.Cmd, e.Code)
}

// Runner invokes the external test command for a resolved script list.
type Runner struct {
	config *config.Config
}

// NewRunner creates a new Runner
func NewRunner(cfg *config.Config) *Runner {
	return &Runner{config: cfg}
}

// Command returns the argv of the external test invocation: the test
// scripts are passed space-joined as a single FILES argument.
func (r *Runner) Command(scripts []string) []string {
	return []string{
		r.config.RunnerCommand(),
		"test",
		"VERBOSE=1",
		"FILES=" + strings.Join(scripts, " "),
	}
}

// PrintCommand writes the shell-equivalent command line to w, quoting any
// argument containing characters outside the safe unquoted set.
func (r *Runner) PrintCommand(w io.Writer, scripts []string) {
	argv := r.Command(scripts)
	quoted := make([]string, len(argv))
	for i, arg := range argv {
		quoted[i] = quoteArg(arg)
	}
	fmt.Fprintln(w, strings.Join(quoted, " "))
}

// Run launches the test command with the project root as working directory
// and stdio inherited. A non-zero child exit comes back as *ExitError; a
// failure to launch at all reports the OS error and the attempted command.
func (r *Runner) Run(scripts []string) error {
	root, err := r.config.ResolveRoot()
	if err != nil {
		return err
	}

	argv := r.Command(scripts)
	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Dir = root
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return &ExitError{Code: exitErr.ExitCode(), Cmd: strings.Join(argv, " ")}
		}
		return fmt.Errorf("run %s: %w", strings.Join(argv, " "), err)
	}
	return nil
}

// quoteArg single-quotes arg when needed, escaping embedded single quotes.
func quoteArg(arg string) string {
	if arg != "" && safeArgPattern.MatchString(arg) {
		return arg
	}
	return "'" + strings.ReplaceAll(arg, "'", `'\''`) + "'"
}
