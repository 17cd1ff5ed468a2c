package location

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/ksyq12/vhostfrag/internal/errors"
)

// Renderer produces the fragment text for a strategy.
type Renderer interface {
	Render(strategy Strategy, spec Spec) (string, error)
}

// Fragment pairs a fragment id with its rendered text.
type Fragment struct {
	ID   FragmentID
	Text string
}

// Compiler turns specs into fragments using a Renderer and explicit defaults.
type Compiler struct {
	renderer Renderer
	defaults Defaults
}

// NewCompiler creates a Compiler.
func NewCompiler(renderer Renderer, defaults Defaults) *Compiler {
	return &Compiler{renderer: renderer, defaults: defaults}
}

// Compile validates spec, renders it once and returns one fragment per
// id from FragmentIDs, all sharing the rendered text. Validation errors
// are returned unchanged. The result may be empty.
func (c *Compiler) Compile(spec Spec) ([]Fragment, error) {
	if err := Validate(spec); err != nil {
		return nil, err
	}

	strategy := Select(spec)

	resolved := spec
	resolved.Params = spec.Params.withDefaults(c.defaults, spec.Name)

	text, err := c.renderer.Render(strategy, resolved)
	if err != nil {
		return nil, errors.WrapLocation(errors.ErrCodeRender, spec.VHost, spec.Name, err)
	}

	ids := FragmentIDs(spec)
	fragments := make([]Fragment, 0, len(ids))
	for _, id := range ids {
		fragments = append(fragments, Fragment{ID: id, Text: text})
	}
	return fragments, nil
}

// DefaultConcurrency bounds CompileAll when limit is not positive.
const DefaultConcurrency = 8

// CompileAll compiles specs concurrently with at most limit workers. The
// result is indexed like specs. The first failure cancels the remaining
// work and is returned.
func (c *Compiler) CompileAll(ctx context.Context, specs []Spec, limit int) ([][]Fragment, error) {
	if limit <= 0 {
		limit = DefaultConcurrency
	}

	results := make([][]Fragment, len(specs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, spec := range specs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			fragments, err := c.Compile(spec)
			if err != nil {
				return err
			}
			results[i] = fragments
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
