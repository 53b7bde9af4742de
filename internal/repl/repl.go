package repl

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/casualjim/eventtree"
	"github.com/casualjim/eventtree/internal/msgfmt"
	"github.com/casualjim/eventtree/node"
	"github.com/casualjim/eventtree/types"
	"github.com/charmbracelet/glamour"
	"github.com/fatih/color"
	json "github.com/goccy/go-json"
)

const helpText = `# Commands

| command | effect |
|---|---|
| ` + "`on <path> <name>`" + ` | register a printing listener called name |
| ` + "`stop <path> <name>`" + ` | register a listener that stops propagation |
| ` + "`off <name>`" + ` | remove the listener called name |
| ` + "`trigger [path] [json]`" + ` | dispatch an event, optionally with a JSON context |
| ` + "`listeners [path]`" + ` | list the listeners a trigger would call |
| ` + "`prune`" + ` | remove empty nodes |
| ` + "`tree`" + ` | show the tree |
| ` + "`exit`" + ` | leave |
`

// ErrUnknownCommand is returned by Exec for input it does not understand.
var ErrUnknownCommand = errors.New("unknown command")

// Session is an interactive shell around a single tree. Listeners registered
// through the session are named so they can be removed individually.
type Session struct {
	tree  *eventtree.Tree
	out   io.Writer
	glam  *glamour.TermRenderer
	names map[string]node.Registration
}

// New creates a session writing to out. Without renderer options markdown is
// rendered with glamour's auto style.
func New(tree *eventtree.Tree, out io.Writer, options ...glamour.TermRendererOption) (*Session, error) {
	if len(options) == 0 {
		options = append(options, glamour.WithAutoStyle())
	}
	glam, err := glamour.NewTermRenderer(options...)
	if err != nil {
		return nil, err
	}
	return &Session{
		tree:  tree,
		out:   out,
		glam:  glam,
		names: make(map[string]node.Registration),
	}, nil
}

// Run reads commands from in until it is exhausted, "exit" is entered or ctx is
// done. Command errors are printed and do not end the session.
func (s *Session) Run(ctx context.Context, in io.Reader) error {
	scanner := bufio.NewScanner(in)
	scanner.Split(bufio.ScanLines)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		fmt.Fprintf(s.out, "%s ", color.CyanString(s.tree.Name()+">"))
		if !scanner.Scan() {
			fmt.Fprintln(s.out, "Exiting...")
			return scanner.Err()
		}

		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		if strings.EqualFold(input, "exit") {
			return nil
		}
		if err := s.Exec(input); err != nil {
			fmt.Fprintf(s.out, "%s %v\n", color.RedString("error:"), err)
		}
	}
}

// Exec runs a single command line.
func (s *Session) Exec(line string) error {
	cmd, rest, _ := strings.Cut(strings.TrimSpace(line), " ")
	rest = strings.TrimSpace(rest)
	args := strings.Fields(rest)

	switch strings.ToLower(cmd) {
	case "on":
		return s.on(args, node.Continue)
	case "stop":
		return s.on(args, node.Stop)
	case "off":
		return s.off(args)
	case "trigger":
		return s.trigger(rest)
	case "listeners":
		return s.listeners(args)
	case "prune":
		s.tree.Prune()
		fmt.Fprintln(s.out, "pruned")
		return nil
	case "tree":
		return s.render(msgfmt.Markdown(s.tree.Root(), s.label))
	case "help":
		return s.render(helpText)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownCommand, cmd)
	}
}

func (s *Session) on(args []string, p node.Propagation) error {
	if len(args) != 2 {
		return errors.New("usage: on|stop <path> <name>")
	}
	path, name := args[0], args[1]
	if _, exists := s.names[name]; exists {
		return fmt.Errorf("listener %q already exists", name)
	}

	reg, err := s.tree.On(path, types.Values{"name": name}, func(ev node.Event) (node.Propagation, error) {
		return p, msgfmt.Print(s.out, name, ev)
	})
	if err != nil {
		return err
	}
	s.names[name] = reg
	fmt.Fprintf(s.out, "registered %s on %s (%s)\n", color.MagentaString(name), color.CyanString(reg.Path), p)
	return nil
}

func (s *Session) off(args []string) error {
	if len(args) != 1 {
		return errors.New("usage: off <name>")
	}
	reg, ok := s.names[args[0]]
	if !ok {
		return fmt.Errorf("no listener called %q", args[0])
	}
	s.tree.Off(reg)
	delete(s.names, args[0])
	fmt.Fprintf(s.out, "removed %s\n", color.MagentaString(args[0]))
	return nil
}

func (s *Session) trigger(rest string) error {
	path, payload, _ := strings.Cut(rest, " ")
	var ctx types.Values
	if payload = strings.TrimSpace(payload); payload != "" {
		var err error
		if ctx, err = types.ValuesOf(json.RawMessage(payload)); err != nil {
			return fmt.Errorf("invalid context: %w", err)
		}
	}
	return s.tree.Trigger(path, ctx)
}

func (s *Session) listeners(args []string) error {
	var path string
	if len(args) > 0 {
		path = args[0]
	}
	handlers, err := s.tree.Listeners(path)
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "%d listeners\n", len(handlers))
	return nil
}

func (s *Session) render(markdown string) error {
	out, err := s.glam.Render(markdown)
	if err != nil {
		return err
	}
	fmt.Fprint(s.out, out)
	return nil
}

func (s *Session) label(reg node.Registration) string {
	if name, ok := reg.Options["name"].(string); ok {
		return name
	}
	return "?"
}

// Names returns the names of the listeners registered through the session.
func (s *Session) Names() []string {
	names := make([]string, 0, len(s.names))
	for name := range s.names {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
