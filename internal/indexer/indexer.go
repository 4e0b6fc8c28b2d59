package indexer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/quantmind-br/chuukaibutsu/internal/domain"
	"github.com/quantmind-br/chuukaibutsu/internal/utils"
)

// DefaultCommand is the indexer invoked when none is configured
var DefaultCommand = []string{"conda", "index"}

// ErrInvocation indicates the indexing command could not be run
var ErrInvocation = errors.New("indexer invocation failed")

// InvocationError reports an indexer that could not be started
type InvocationError struct {
	Command     string
	ChannelRoot string
	Err         error
}

func (e *InvocationError) Error() string {
	return fmt.Sprintf("%s: %s %s: %v", ErrInvocation, e.Command, e.ChannelRoot, e.Err)
}

func (e *InvocationError) Unwrap() []error {
	return []error{ErrInvocation, e.Err}
}

// Ensure implementations satisfy domain.Indexer
var (
	_ domain.Indexer = (*Command)(nil)
	_ domain.Indexer = Noop{}
)

// Command runs an external program with the channel root appended as the
// last argument.
type Command struct {
	argv   []string
	stdout io.Writer
	stderr io.Writer
	logger *utils.Logger

	// lookPath and commandContext are replaced in tests
	lookPath       func(string) (string, error)
	commandContext func(ctx context.Context, name string, args ...string) *exec.Cmd
}

// CommandOptions contains options for creating a Command indexer
type CommandOptions struct {
	Argv   []string
	Stdout io.Writer
	Stderr io.Writer
	Logger *utils.Logger
}

// NewCommand creates a Command indexer. An empty Argv selects DefaultCommand.
func NewCommand(opts CommandOptions) *Command {
	argv := opts.Argv
	if len(argv) == 0 {
		argv = DefaultCommand
	}
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}
	if opts.Logger == nil {
		opts.Logger = utils.NewNopLogger()
	}

	return &Command{
		argv:           append([]string(nil), argv...),
		stdout:         opts.Stdout,
		stderr:         opts.Stderr,
		logger:         opts.Logger.WithComponent("indexer"),
		lookPath:       exec.LookPath,
		commandContext: exec.CommandContext,
	}
}

// Name returns the command line without the channel argument
func (c *Command) Name() string {
	return strings.Join(c.argv, " ")
}

// Executable resolves the indexer program on PATH
func (c *Command) Executable() (string, error) {
	return c.lookPath(c.argv[0])
}

// Index runs the command for channelRoot and waits for it to finish.
// A command that cannot be started is an error; a non-zero exit status is
// logged and otherwise ignored.
func (c *Command) Index(ctx context.Context, channelRoot string) error {
	path, err := c.Executable()
	if err != nil {
		return &InvocationError{Command: c.Name(), ChannelRoot: channelRoot, Err: err}
	}

	args := append(append([]string(nil), c.argv[1:]...), channelRoot)
	cmd := c.commandContext(ctx, path, args...)
	cmd.Stdout = c.stdout
	cmd.Stderr = c.stderr

	log := c.logger.WithChannel(channelRoot)
	log.Debug().Str("command", c.Name()).Msg("Running indexer")

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && ctx.Err() == nil {
			log.Warn().
				Int("exit_code", exitErr.ExitCode()).
				Str("command", c.Name()).
				Msg("Indexer exited with non-zero status")
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return &InvocationError{Command: c.Name(), ChannelRoot: channelRoot, Err: err}
	}

	return nil
}

// Noop is an indexer that only reports what it would run
type Noop struct {
	Out     io.Writer
	Command string
}

// Name returns the name of the indexer that would have run
func (n Noop) Name() string {
	if n.Command == "" {
		return "noop"
	}
	return n.Command
}

// Index prints the skipped invocation
func (n Noop) Index(ctx context.Context, channelRoot string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if n.Out != nil {
		fmt.Fprintf(n.Out, "Would index %s\n", channelRoot)
	}
	return nil
}
