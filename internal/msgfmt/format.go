package msgfmt

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/casualjim/eventtree/node"
	"github.com/casualjim/eventtree/pkg/reflectx"
	"github.com/casualjim/eventtree/types"
	"github.com/fatih/color"
	json "github.com/goccy/go-json"
)

const rootLabel = "<root>"

// Console returns a handler that prints every event it receives on w. The label,
// when set, prefixes each line.
func Console(w io.Writer, label string) node.Handler {
	return func(ev node.Event) (node.Propagation, error) {
		return node.Continue, Print(w, label, ev)
	}
}

// Print writes a single line describing ev.
func Print(w io.Writer, label string, ev node.Event) error {
	var b strings.Builder
	if label != "" {
		b.WriteString(color.MagentaString(label) + ": ")
	}
	path := ev.Path
	if path == "" {
		path = rootLabel
	}
	b.WriteString(color.CyanString(path))
	if values := FormatValues(ev.Context); values != "" {
		b.WriteString(" " + values)
	}
	_, err := fmt.Fprintln(w, b.String())
	return err
}

// FormatValues renders values as space separated key=value pairs in key order.
func FormatValues(values types.Values) string {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		v, err := json.Marshal(values[k])
		if err != nil {
			v = []byte(fmt.Sprint(values[k]))
		}
		parts = append(parts, color.YellowString(k)+"="+string(v))
	}
	return strings.Join(parts, " ")
}

// Markdown renders the subtree rooted at n as a nested markdown list, one item
// per node. Registrations are named by label, or by their function name when
// label is nil.
func Markdown(n *node.Node, label func(node.Registration) string) string {
	if label == nil {
		label = func(reg node.Registration) string {
			return reflectx.FunctionName(reg.Handler)
		}
	}
	var b strings.Builder
	writeMarkdown(&b, n, rootLabel, 0, label)
	return b.String()
}

func writeMarkdown(b *strings.Builder, n *node.Node, segment string, depth int, label func(node.Registration) string) {
	if segment == "" {
		segment = `""`
	}
	fmt.Fprintf(b, "%s- `%s`", strings.Repeat("  ", depth), segment)
	if regs := n.Registrations(); len(regs) > 0 {
		names := make([]string, 0, len(regs))
		for _, reg := range regs {
			names = append(names, label(reg))
		}
		fmt.Fprintf(b, " %s", strings.Join(names, ", "))
	}
	b.WriteString("\n")
	for _, seg := range n.Children() {
		child, _ := n.Child(seg)
		writeMarkdown(b, child, seg, depth+1, label)
	}
}
