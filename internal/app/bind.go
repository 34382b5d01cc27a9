package app

import (
	"context"
	"fmt"
	"time"

	"github.com/vk/viewbind/internal/binding"
	"github.com/vk/viewbind/internal/ctxlog"
	"github.com/vk/viewbind/internal/diagnostics"
	"github.com/vk/viewbind/internal/discovery"
	"github.com/vk/viewbind/internal/template"
	"github.com/vk/viewbind/internal/typecatalog"
)

// Bind runs one binding pass over the template root: discovery, type
// catalog construction, the binder chain for every template, and the
// report. The report is added to the history whether or not the pass
// succeeds.
func (a *App) Bind(ctx context.Context) (res *Result, err error) {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	root := a.config.Templates.Root
	report := diagnostics.NewReport(root)
	a.logger.Debug("Binding pass started.", "report", report.ID, "root", root)

	defer func() {
		report.FinishedAt = time.Now()
		if err != nil {
			report.Error = err.Error()
		}
		a.history.AddReport(report)
		a.logger.Debug("Binding pass recorded.", "report", report.ID, "duration", report.Duration())
	}()

	set, err := a.scanner.Scan(ctx, root)
	if err != nil {
		return nil, err
	}
	report.Templates = len(set.Templates)

	types, err := a.catalog(ctx)
	if err != nil {
		return nil, err
	}

	tracer := diagnostics.NewTracer(a.logger, report)
	reqs := make([]*binding.Request, 0, len(set.Templates))
	for _, t := range set.Templates {
		reqs = append(reqs, a.request(set, t, types, tracer))
	}

	if err := a.pipeline.RunAll(ctx, reqs, a.config.Binding.Workers); err != nil {
		return nil, fmt.Errorf("binding pass interrupted: %w", err)
	}

	res = newResult(report.ID, set)
	report.Views = len(res.Views)
	a.logger.Info("Binding pass finished.", "templates", report.Templates, "views", report.Views)
	return res, nil
}

// catalog returns the types known to this pass: registered module types
// first, then the configured Go packages.
func (a *App) catalog(ctx context.Context) (typecatalog.Catalog, error) {
	if len(a.config.Types.Packages) == 0 {
		return a.registry, nil
	}

	pkgs, err := typecatalog.LoadPackages(ctx, a.config.Types.Dir, a.config.Types.Packages...)
	if err != nil {
		return nil, fmt.Errorf("failed to build type catalog: %w", err)
	}
	for _, msg := range pkgs.Errors {
		a.logger.Warn("Package loaded with errors.", "error", msg)
	}
	a.logger.Debug("Type catalog built.", "registered", a.registry.Len(), "package_types", pkgs.Len())
	return typecatalog.Overlay{a.registry, pkgs}, nil
}

// request builds the binder input for t. A configured view override wins
// over the directives declared in the markup.
func (a *App) request(set *discovery.Set, t *template.Template, types typecatalog.Catalog, logger binding.Logger) *binding.Request {
	d := set.Directives(t)
	req := &binding.Request{
		Target:        t,
		Master:        binding.MasterNameFromDirective(d.Master, d.HasMaster),
		ViewModelType: d.Model,
		Namespaces:    d.Namespaces,
		Templates:     set.Templates,
		Types:         types,
		Logger:        logger,
	}

	override := a.config.View(t.RelativePath())
	if override == nil {
		return req
	}
	if override.Model != "" {
		req.ViewModelType = override.Model
	}
	if override.Master != nil {
		req.Master = binding.ExplicitMaster(*override.Master)
	}
	if len(override.Namespaces) > 0 {
		req.Namespaces = override.Namespaces
	}
	return req
}
