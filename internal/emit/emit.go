// Package emit renders a compiled repository into Go source text. It is
// one of the fragment backends: the same IR the interpreter executes is
// walked here to produce a deployable source unit.
package emit

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/zclconf/go-cty/cty"

	"github.com/vk/stepforge/internal/ir"
	"github.com/vk/stepforge/internal/repository"
)

// Render produces the source unit for one compiled step. The emitted file
// carries the repository's namespace imports; duplicate namespaces are
// collapsed at emission time only, since an import block must not repeat a
// path. The repository's own lists stay duplicate-preserving.
func Render(repo *repository.Repository, stepName string) ([]byte, error) {
	frag := repo.Fragment()
	if frag == nil {
		return nil, fmt.Errorf("emit: step %q has no fragment", stepName)
	}

	var b strings.Builder
	b.WriteString("// Code generated by stepforge. DO NOT EDIT.\n")
	b.WriteString("package step\n\n")
	writeImports(&b, repo.Namespaces())

	body, err := renderRoot(frag)
	if err != nil {
		return nil, fmt.Errorf("emit: step %q: %w", stepName, err)
	}
	b.WriteString(body)

	return Format([]byte(b.String())), nil
}

func writeImports(b *strings.Builder, namespaces []string) {
	seen := make(map[string]struct{})
	var paths []string
	for _, ns := range namespaces {
		if _, dup := seen[ns]; dup {
			continue
		}
		seen[ns] = struct{}{}
		paths = append(paths, ns)
	}
	b.WriteString("import (\n")
	b.WriteString("\t\"context\"\n\n")
	b.WriteString("\trun \"github.com/vk/stepforge/runtime\"\n")
	// Namespace imports register their driver with the runtime on init.
	for _, p := range paths {
		fmt.Fprintf(b, "\t_ %s\n", strconv.Quote(p))
	}
	b.WriteString(")\n\n")
}

func renderRoot(frag *ir.Fragment) (string, error) {
	switch root := frag.Root.(type) {
	case *ir.LoopNode:
		return renderLoop(root), nil
	case *ir.ExtractNode:
		return renderExtract(root), nil
	case *ir.ClientNode:
		return renderClient(root), nil
	default:
		return "", fmt.Errorf("fragment kind %q has no emitter", frag.Kind)
	}
}

// renderLoop writes the per-record loop of a mutating or lookup fragment:
// pull, call, classify, emit, in that order, with the handler chain
// preserved front to back.
func renderLoop(loop *ir.LoopNode) string {
	call := loop.Body.Call

	var b strings.Builder
	b.WriteString("// Process drains the upstream, performing one remote call per record\n")
	b.WriteString("// and emitting exactly one classification for each.\n")
	b.WriteString("func Process(ctx context.Context, client run.Client, pull run.Pull, emit run.Emit) {\n")
	b.WriteString("\tfor {\n")
	b.WriteString("\t\trecord, ok := pull()\n")
	b.WriteString("\t\tif !ok {\n\t\t\treturn\n\t\t}\n")
	fmt.Fprintf(&b, "\t\terr := client.Call(ctx, %q, %q, %s)\n",
		call.Method, call.Endpoint, strings.Join(callArgs(call), ", "))
	b.WriteString("\t\tif err == nil {\n")
	b.WriteString("\t\t\tif !emit(run.Accept(record)) {\n\t\t\t\treturn\n\t\t\t}\n")
	b.WriteString("\t\t\tcontinue\n")
	b.WriteString("\t\t}\n")
	b.WriteString("\t\tswitch {\n")
	for _, h := range loop.Body.Handlers {
		fmt.Fprintf(&b, "\t\tcase run.Is(err, %q):\n", h.Exception)
		fmt.Fprintf(&b, "\t\t\trun.Log(ctx, %q, err, record)\n", h.Message)
		fmt.Fprintf(&b, "\t\t\tif !emit(run.Reject(%q, err, record)) {\n\t\t\t\treturn\n\t\t\t}\n", h.Reason)
	}
	b.WriteString("\t\tdefault:\n")
	b.WriteString("\t\t\tif !emit(run.Reject(\"unclassified\", err, record)) {\n\t\t\t\treturn\n\t\t\t}\n")
	b.WriteString("\t\t}\n")
	b.WriteString("\t}\n")
	b.WriteString("}\n")
	return b.String()
}

func callArgs(call *ir.CallNode) []string {
	args := []string{"record"}
	for _, q := range call.Qualifiers {
		args = append(args, valueExpr(q, "record"))
	}
	if call.Identifier.IsPresent() {
		args = append(args, valueExpr(call.Identifier, "record"))
	}
	if call.Payload.IsPresent() {
		args = append(args, valueExpr(call.Payload, "record"))
	}
	return args
}

// renderExtract writes the fetch-all body. Filter and code construction
// calls appear only when the fragment carries them.
func renderExtract(node *ir.ExtractNode) string {
	var b strings.Builder
	b.WriteString("// Fetch retrieves every matching record and emits each downstream.\n")
	b.WriteString("func Fetch(ctx context.Context, client run.Client, emit run.Emit) {\n")
	fmt.Fprintf(&b, "\tquery := run.NewQuery(%q)\n", node.Endpoint)
	if node.Filter != nil {
		b.WriteString("\tfilter := run.NewFilter()\n")
		for _, clause := range node.Filter.Clauses {
			fmt.Fprintf(&b, "\tfilter.Add(%s)\n", strings.Join(clauseArgs(clause), ", "))
		}
		b.WriteString("\tquery.WithFilter(filter)\n")
	}
	if node.Code.IsPresent() {
		fmt.Fprintf(&b, "\tquery.WithCode(%s)\n", valueExpr(node.Code, "nil"))
	}
	b.WriteString("\tfor record := range client.All(ctx, query) {\n")
	b.WriteString("\t\tif !emit(run.Accept(record)) {\n\t\t\treturn\n\t\t}\n")
	b.WriteString("\t}\n")
	b.WriteString("}\n")
	return b.String()
}

func clauseArgs(clause *ir.ClauseNode) []string {
	args := []string{valueExpr(clause.Field, "nil"), strconv.Quote(clause.Operator)}
	if clause.Value.IsPresent() {
		args = append(args, valueExpr(clause.Value, "nil"))
	}
	if clause.Scope.IsPresent() {
		args = append(args, "run.Scope("+valueExpr(clause.Scope, "nil")+")")
	}
	if clause.Locale.IsPresent() {
		args = append(args, "run.Locale("+valueExpr(clause.Locale, "nil")+")")
	}
	return args
}

// renderClient writes the standalone client-setup unit.
func renderClient(node *ir.ClientNode) string {
	var b strings.Builder
	b.WriteString("// NewClient builds the API client the generated step calls through.\n")
	b.WriteString("func NewClient(ctx context.Context) run.Client {\n")
	fmt.Fprintf(&b, "\treturn run.Connect(ctx, %s)\n", strings.Join(clientArgs(node), ", "))
	b.WriteString("}\n")
	return b.String()
}

func clientArgs(node *ir.ClientNode) []string {
	args := []string{valueExpr(node.BaseURL, "nil")}
	if node.ClientID.IsPresent() {
		args = append(args, valueExpr(node.ClientID, "nil"), valueExpr(node.Secret, "nil"))
	}
	if node.Username.IsPresent() {
		args = append(args, valueExpr(node.Username, "nil"), valueExpr(node.Password, "nil"))
	}
	return args
}

// valueExpr renders a literal-or-deferred value as a Go expression.
// Literals become plain Go literals; deferred expressions are carried as
// their source text into a runtime evaluation call against the named
// scope, so the emitted unit stays syntactically valid regardless of the
// expression language. Scope is "record" inside per-record loops and
// "nil" elsewhere.
func valueExpr(v ir.Value, scope string) string {
	switch v.Kind {
	case ir.ValueLiteral:
		return ctyLiteral(v.Literal, scope)
	case ir.ValueDeferred:
		return fmt.Sprintf("run.Eval(%q, %s)", v.Source, scope)
	default:
		return "nil"
	}
}

func ctyLiteral(val cty.Value, scope string) string {
	switch {
	case val.Type() == cty.String:
		return strconv.Quote(val.AsString())
	case val.Type() == cty.Number:
		return val.AsBigFloat().Text('g', -1)
	case val.Type() == cty.Bool:
		if val.True() {
			return "true"
		}
		return "false"
	default:
		// Compound literals round-trip through the runtime decoder.
		return fmt.Sprintf("run.Eval(%q, %s)", val.GoString(), scope)
	}
}
