// SPDX-License-Identifier: MPL-2.0

package assemble

import (
	"context"
	"fmt"
	"os"

	"dexboot-cli/internal/classpath"
	"dexboot-cli/internal/config"
	"dexboot-cli/internal/discovery"
	"dexboot-cli/internal/issue"
	"dexboot-cli/pkg/dexmeta"
	"dexboot-cli/pkg/dexstore"

	"github.com/charmbracelet/log"
)

type (
	// Reachability receives the assembled result. Implementations run the
	// reachability analysis that seeds the optimizer; assembly itself only
	// guarantees the scope is complete and ordered.
	Reachability interface {
		Init(ctx context.Context, scope dexstore.Scope, optimizer map[string]any) error
	}

	// Options configures a boot run.
	Options struct {
		// DexenDir is the dexen root to scan.
		DexenDir string
		// JarList is the classpath archive list, separated by ',' or ':'.
		JarList string
		// Registry receives classpath archives before any container loads.
		Registry classpath.Registry
		// Loader reads container files.
		Loader dexstore.Loader
		// Reachability receives the final hand-off. May be nil to skip it
		// (scan-only callers).
		Reachability Reachability
		// Config supplies extensions and the optimizer pass-through section.
		// Nil falls back to defaults.
		Config *config.Config
		// Logger receives progress output. Nil gets a stderr logger.
		Logger *log.Logger
	}

	// Assembler runs boots.
	Assembler struct {
		opts   Options
		logger *log.Logger
	}
)

// New creates an Assembler. Registry and Loader are required.
func New(opts Options) (*Assembler, error) {
	if opts.Registry == nil {
		return nil, fmt.Errorf("assemble: Registry is required")
	}
	if opts.Loader == nil {
		return nil, fmt.Errorf("assemble: Loader is required")
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			Prefix: "dexboot",
		})
	}
	return &Assembler{opts: opts, logger: logger}, nil
}

// Run executes one boot: bootstrap the classpath, scan the dexen root,
// load the primary store and every module store, then hand the scope to
// the reachability stage. Returns the assembled collection on success.
func (a *Assembler) Run(ctx context.Context) (*dexstore.StoreCollection, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("boot canceled: %w", ctx.Err())
	default:
	}

	// Classpath archives must be in place before the first container load.
	if err := classpath.Bootstrap(a.opts.JarList, a.opts.Registry); err != nil {
		return nil, issue.WrapWithOperation(err, "bootstrap classpath")
	}
	if a.opts.JarList != "" {
		a.logger.Info("classpath ready", "archives", len(classpath.Split(a.opts.JarList)))
	}

	layout, err := discovery.New(a.opts.Config).Scan(a.opts.DexenDir)
	if err != nil {
		return nil, issue.WrapWithContext(err, "scan dexen directory", a.opts.DexenDir)
	}

	collection, err := a.assemble(ctx, layout)
	if err != nil {
		return nil, err
	}

	a.logger.Info("stores assembled",
		"stores", collection.Len(),
		"files", totalFiles(collection),
		"classes", totalClasses(collection))

	if a.opts.Reachability != nil {
		scope := dexstore.BuildScope(collection)
		optimizer := map[string]any{}
		if a.opts.Config != nil && a.opts.Config.Optimizer != nil {
			optimizer = a.opts.Config.Optimizer
		}
		if err := a.opts.Reachability.Init(ctx, scope, optimizer); err != nil {
			return nil, issue.WrapWithOperation(err, "initialize reachability")
		}
	}

	return collection, nil
}

// assemble loads every discovered container into the N+1 store shape.
func (a *Assembler) assemble(ctx context.Context, layout *discovery.Layout) (*dexstore.StoreCollection, error) {
	primary := dexstore.NewStore(dexstore.PrimaryStoreName)
	for _, path := range layout.Containers {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("boot canceled: %w", ctx.Err())
		default:
		}

		batch, err := a.opts.Loader.Load(path)
		if err != nil {
			return nil, issue.WrapWithContext(err, "load container file", path)
		}
		primary.AddBatch(batch)
		a.logger.Debug("loaded container", "store", primary.Name(), "file", path, "classes", batch.ClassCount)
	}

	collection, err := dexstore.NewStoreCollection(primary)
	if err != nil {
		return nil, err
	}

	for _, mod := range layout.Modules {
		store, err := a.loadModule(ctx, mod)
		if err != nil {
			return nil, err
		}
		if err := collection.Append(store); err != nil {
			return nil, issue.WrapWithContext(err, "register module store", mod.Name)
		}
	}

	return collection, nil
}

// loadModule parses a module's metadata and loads its files in declared
// order. The declared order is authoritative and never re-sorted.
func (a *Assembler) loadModule(ctx context.Context, mod discovery.ModuleDir) (*dexstore.Store, error) {
	meta, err := dexmeta.Parse(mod.MetadataPath)
	if err != nil {
		return nil, issue.WrapWithContext(err, "parse module metadata", mod.MetadataPath)
	}

	store := dexstore.NewStore(meta.Name)
	for _, path := range meta.ResolveFiles(mod.Dir) {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("boot canceled: %w", ctx.Err())
		default:
		}

		batch, err := a.opts.Loader.Load(path)
		if err != nil {
			return nil, issue.WrapWithContext(err, "load container file", path)
		}
		store.AddBatch(batch)
		a.logger.Debug("loaded container", "store", store.Name(), "file", path, "classes", batch.ClassCount)
	}

	return store, nil
}

func totalFiles(c *dexstore.StoreCollection) int {
	n := 0
	for _, s := range c.Stores() {
		n += s.FileCount()
	}
	return n
}

func totalClasses(c *dexstore.StoreCollection) int {
	n := 0
	for _, s := range c.Stores() {
		n += s.ClassCount()
	}
	return n
}
