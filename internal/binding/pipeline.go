package binding

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/vk/viewbind/internal/ctxlog"
	"github.com/vk/viewbind/internal/locator"
)

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithFallbackMaster sets the master name used by views that do not name
// one.
func WithFallbackMaster(name string) Option {
	return func(p *Pipeline) {
		if name != "" {
			p.master.MasterName = name
		}
	}
}

// WithBindingsFile sets the file name of binding declaration files.
func WithBindingsFile(name string) Option {
	return func(p *Pipeline) {
		if name != "" {
			p.bindings.FileName = name
		}
	}
}

// WithSharedDirs sets the shared directory names used by the default
// locators.
func WithSharedDirs(names ...string) Option {
	return func(p *Pipeline) {
		if len(names) > 0 {
			p.reachables = locator.NewReachables(names...)
		}
	}
}

// WithReachableDirectoryLocator replaces the default reachability locator.
func WithReachableDirectoryLocator(loc locator.ReachableDirectoryLocator) Option {
	return func(p *Pipeline) {
		if loc != nil {
			p.reachables = loc
		}
	}
}

// WithSharedTemplateLocator replaces the default master locator.
func WithSharedTemplateLocator(loc locator.SharedTemplateLocator) Option {
	return func(p *Pipeline) {
		if loc != nil {
			p.shared = loc
		}
	}
}

// Pipeline runs the binder chain in its fixed order:
// ViewDescriptorBinder, MasterPageBinder, ViewModelBinder,
// ReachableBindingsBinder.
type Pipeline struct {
	descriptor ViewDescriptorBinder
	master     *MasterPageBinder
	viewModel  ViewModelBinder
	bindings   *ReachableBindingsBinder

	reachables locator.ReachableDirectoryLocator
	shared     locator.SharedTemplateLocator
}

// NewPipeline builds a pipeline with the default locators, fallback master
// and bindings file name, adjusted by opts.
func NewPipeline(opts ...Option) *Pipeline {
	p := &Pipeline{
		master:     &MasterPageBinder{MasterName: FallbackMaster},
		bindings:   &ReachableBindingsBinder{FileName: BindingsFile},
		reachables: locator.NewReachables(),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.shared == nil {
		p.shared = locator.NewShared(p.reachables)
	}
	p.master.locator = p.shared
	p.bindings.locator = p.reachables
	return p
}

// Binders returns the chain in execution order.
func (p *Pipeline) Binders() []Binder {
	return []Binder{p.descriptor, p.master, p.viewModel, p.bindings}
}

// Run applies every applicable binder to req, in order.
func (p *Pipeline) Run(req *Request) {
	run(req, p.Binders()...)
}

func run(req *Request, binders ...Binder) {
	for _, b := range binders {
		if b.CanBind(req) {
			b.Bind(req)
		}
	}
}

// RunAll runs the chain for every request using at most workers goroutines.
// A cancelled context stops requests that have not started yet; it is the
// only error RunAll returns.
func (p *Pipeline) RunAll(ctx context.Context, reqs []*Request, workers int) error {
	logger := ctxlog.FromContext(ctx)
	if workers < 1 {
		workers = 1
	}
	logger.Debug("Binding pass started.", "templates", len(reqs), "workers", workers)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for _, req := range reqs {
		if err := gctx.Err(); err != nil {
			break
		}
		req := req
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			p.Run(req)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	logger.Debug("Binding pass finished.", "templates", len(reqs))
	return nil
}
