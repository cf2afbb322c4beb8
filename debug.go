package spool

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/fatih/color"
	jsoniter "github.com/json-iterator/go"
	"gopkg.in/yaml.v3"

	"github.com/danpasecinic/spool/internal/container"
)

type DebugInfo = container.DebugInfo

type ModuleDebugInfo = container.ModuleDebugInfo

type FactoryDebugInfo = container.FactoryDebugInfo

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// DebugInfo describes c's module tree and, recursively, its ancestors'. No
// factory is run for its result: dependencies come from WithDependencies or
// from a throwaway probe run.
func (c *Container) DebugInfo() DebugInfo {
	return c.internal.DebugInfo()
}

func (c *Container) DebugJSON() ([]byte, error) {
	return json.MarshalIndent(c.DebugInfo(), "", "  ")
}

func (c *Container) DebugYAML() ([]byte, error) {
	return yaml.Marshal(c.DebugInfo())
}

var (
	containerColor = color.New(color.FgCyan, color.Bold)
	moduleColor    = color.New(color.FgBlue)
	factoryColor   = color.New(color.FgGreen)
	valueColor     = color.New(color.FgYellow)
	faintColor     = color.New(color.Faint)
)

func (c *Container) PrintDebugTree() {
	c.FprintDebugTree(os.Stdout)
}

// FprintDebugTree renders DebugInfo as an indented tree. Cached factories are
// marked ● and unbuilt ones ○.
func (c *Container) FprintDebugTree(w io.Writer) {
	info := c.DebugInfo()
	for cur := &info; cur != nil; cur = cur.ParentContainer {
		if cur != &info {
			_, _ = faintColor.Fprint(w, "↑ ")
		}
		_, _ = containerColor.Fprintln(w, cur.Name)
		fprintModule(w, cur.Module, "  ")
	}
}

func (c *Container) SprintDebugTree() string {
	var sb strings.Builder
	c.FprintDebugTree(&sb)
	return sb.String()
}

func fprintModule(w io.Writer, m ModuleDebugInfo, indent string) {
	cached := make(map[string]bool, len(m.Instances))
	for _, id := range m.Instances {
		cached[id] = true
	}

	for _, id := range sortedKeys(m.Factories) {
		f := m.Factories[id]
		status := "○"
		if cached[id] {
			status = "●"
		}

		_, _ = fmt.Fprintf(w, "%s%s ", indent, status)
		_, _ = factoryColor.Fprint(w, id)
		_, _ = faintColor.Fprintf(w, " (%s)", f.Lifetime)
		if len(f.Dependencies) > 0 {
			_, _ = fmt.Fprintf(w, " ← %s", strings.Join(f.Dependencies, ", "))
		}
		_, _ = fmt.Fprintln(w)
	}

	for _, id := range m.Instances {
		if _, isFactory := m.Factories[id]; isFactory {
			continue
		}
		_, _ = fmt.Fprintf(w, "%s= ", indent)
		_, _ = valueColor.Fprintln(w, id)
	}

	for _, id := range sortedKeys(m.Modules) {
		_, _ = fmt.Fprintf(w, "%s▸ ", indent)
		_, _ = moduleColor.Fprintln(w, id)
		fprintModule(w, m.Modules[id], indent+"  ")
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (c *Container) PrintGraphDOT() {
	c.FprintGraphDOT(os.Stdout)
}

// FprintGraphDOT renders the static dependency graph in Graphviz DOT.
// Components on the same dependency level share a rank unless the graph has
// a cycle.
func (c *Container) FprintGraphDOT(w io.Writer) {
	g, missing := c.internal.Graph()

	_, _ = fmt.Fprintln(w, "digraph dependencies {")
	_, _ = fmt.Fprintln(w, "  rankdir=LR;")
	_, _ = fmt.Fprintln(w, "  node [shape=box];")

	for _, node := range g.Nodes() {
		_, _ = fmt.Fprintf(w, "  %q;\n", node)
	}

	if levels, err := g.Levels(); err == nil {
		for _, level := range levels {
			if len(level) < 2 {
				continue
			}
			quoted := make([]string, len(level))
			for i, node := range level {
				quoted[i] = fmt.Sprintf("%q", node)
			}
			_, _ = fmt.Fprintf(w, "  { rank=same; %s; }\n", strings.Join(quoted, "; "))
		}
	}

	_, _ = fmt.Fprintln(w)

	for _, node := range g.Nodes() {
		for _, dep := range g.Dependencies(node) {
			_, _ = fmt.Fprintf(w, "  %q -> %q;\n", node, dep)
		}
	}

	for _, m := range missing {
		_, _ = fmt.Fprintf(w, "  // missing: %s\n", m)
	}

	_, _ = fmt.Fprintln(w, "}")
}

func (c *Container) SprintGraphDOT() string {
	var sb strings.Builder
	c.FprintGraphDOT(&sb)
	return sb.String()
}
