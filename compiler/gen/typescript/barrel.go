package typescript

import (
	"fmt"
	"io"
	"slices"
	"strings"
)

// barrel is an index.ts file re-exporting the namespace segments below
// its directory and, for the last segment of a namespace, the schema file.
type barrel struct {
	namespaces []string
	modules    []string
}

// addNamespace adds `import * as name from "./name"` and the matching
// named export. Duplicates are ignored.
func (b *barrel) addNamespace(name string) bool {
	if slices.Contains(b.namespaces, name) {
		return false
	}
	b.namespaces = append(b.namespaces, name)
	return true
}

// addModule adds `export * from "./module"`. Duplicates are ignored.
func (b *barrel) addModule(module string) bool {
	if slices.Contains(b.modules, module) {
		return false
	}
	b.modules = append(b.modules, module)
	return true
}

func (b *barrel) sortedNamespaces() []string {
	names := slices.Clone(b.namespaces)
	slices.Sort(names)
	return names
}

func (b *barrel) render(w io.Writer) {
	names := b.sortedNamespaces()
	if len(names) > 0 {
		fmt.Fprintln(w)
		for _, name := range names {
			fmt.Fprintf(w, "import * as %s from \"./%s\"\n", name, name)
		}
		fmt.Fprintf(w, "\nexport { %s }\n", strings.Join(names, ", "))
	}
	if len(b.modules) > 0 {
		fmt.Fprintln(w)
		for _, m := range b.modules {
			fmt.Fprintf(w, "export * from \"./%s\"\n", m)
		}
	}
}
