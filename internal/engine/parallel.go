package engine

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"strux/internal/expr"
	"strux/internal/keyword"
	"strux/internal/lexer"
	"strux/internal/parser"
	"strux/internal/types"
)

// ParseLines parses many independent lines, fanning expression-level work
// out over the CPUs. Declaration lines mutate the registry, so they run
// first under the document lock in input order; the remaining lines only
// read and parse concurrently. Guessed variable bindings from the parallel
// lines are applied afterwards by the single writer, again in input order.
func (d *Document) ParseLines(ctx context.Context, texts []string, expected parser.KindSet) ([]LineResult, error) {
	results := make([]LineResult, len(texts))
	kw := d.Keywords()

	parallel := make([]int, 0, len(texts))
	d.mu.Lock()
	for i, text := range texts {
		if declares(text, kw) {
			l, diags := parser.ParseLine(text, parser.Options{
				Keywords: kw,
				Expected: expected,
				Registry: d.registry,
				Site:     i,
			})
			sets, _ := parser.Gather(l)
			results[i] = LineResult{Line: l, Diags: diags, Sets: sets}
		} else {
			parallel = append(parallel, i)
		}
	}
	d.mu.Unlock()

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for _, i := range parallel {
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			l, diags := parser.ParseLine(texts[i], parser.Options{
				Keywords: kw,
				Expected: expected,
				Site:     i,
			})
			sets, _ := parser.Gather(l)
			results[i] = LineResult{Line: l, Diags: diags, Sets: sets}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	d.mu.Lock()
	for _, i := range parallel {
		d.applyGuesses(results[i], i)
	}
	d.mu.Unlock()
	return results, nil
}

// declares reports whether a line can define types or bind names
// explicitly, which forces it through the sequential pass.
func declares(text string, kw keyword.Table) bool {
	return parser.Declares(kw.Condense(lexer.Split(text, true)))
}

// applyGuesses records the bindings a parallel parse could not write.
func (d *Document) applyGuesses(r LineResult, site int) {
	switch l := r.Line.(type) {
	case parser.Assignment:
		op, ok := l.Expr.(*expr.Operator)
		if !ok || len(op.Ops) != 2 {
			return
		}
		if name, _ := expr.Target(op.Ops[0]); name != "" {
			d.registry.BindVar(name, d.registry.Infer(op.Ops[1]), site, false)
		}
	case parser.ForLoop:
		if id, ok := l.Var.(*expr.Identifier); ok {
			d.registry.BindVar(id.Name, d.registry.Arena().Primitive(types.PrimInt), site, false)
		}
	case parser.ForeachLoop:
		if id, ok := l.Var.(*expr.Identifier); ok {
			d.registry.BindVar(id.Name, types.NoType, site, false)
		}
	case parser.Input:
		for _, t := range l.Targets {
			if name, _ := expr.Target(t); name != "" {
				d.registry.BindVar(name, types.NoType, site, false)
			}
		}
	}
}
