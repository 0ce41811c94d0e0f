// Package driver evaluates type definition scripts into reports: it parses
// each .ty file into a fresh store context, renders every named type, and
// collects store statistics. Contexts are single-threaded, so parallel
// evaluation gives each file its own.
package driver

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/th3flyboy/llvm-mirror/internal/observ"
	"github.com/th3flyboy/llvm-mirror/internal/trace"
	"github.com/th3flyboy/llvm-mirror/internal/typeexpr"
	"github.com/th3flyboy/llvm-mirror/internal/typeprint"
	"github.com/th3flyboy/llvm-mirror/internal/types"
)

// Entry is one named type of an evaluated script.
type Entry struct {
	Name     string
	Rendered string // expanded form
	Named    string // form with %name substitution for nested bindings
	Kind     string
	Abstract bool
}

// Report is the result of evaluating one script file.
type Report struct {
	Path    string
	Entries []Entry
	Stats   types.Stats
	Cached  bool
	Timing  observ.Report
}

// Options configure an evaluation run.
type Options struct {
	Tracer trace.Tracer
	Cache  *DiskCache // nil disables caching
	Jobs   int        // 0 means GOMAXPROCS
}

func (o *Options) tracer() trace.Tracer {
	if o == nil || o.Tracer == nil {
		return trace.Nop
	}
	return o.Tracer
}

// EvaluateFile evaluates a single script file.
func EvaluateFile(path string, opts *Options) (*Report, error) {
	tr := opts.tracer()
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if opts != nil && opts.Cache != nil {
		if rep, ok, err := opts.Cache.Get(content); err == nil && ok {
			trace.Point(tr, trace.ScopePhase, "cache", "hit: "+path)
			rep.Path = path
			rep.Cached = true
			return rep, nil
		}
	}
	rep, err := EvaluateSource(path, string(content), tr)
	if err != nil {
		return nil, err
	}
	if opts != nil && opts.Cache != nil {
		if err := opts.Cache.Put(content, rep); err != nil {
			trace.Point(tr, trace.ScopePhase, "cache", "store failed: "+err.Error())
		}
	}
	return rep, nil
}

// EvaluateSource evaluates script text. The path is used only for reporting.
func EvaluateSource(path, src string, tr trace.Tracer) (*Report, error) {
	if tr == nil {
		tr = trace.Nop
	}
	timer := observ.NewTimer()

	span := trace.StartSpan(tr, trace.ScopePhase, "build "+path)
	phase := timer.Begin("parse+build")
	ctx := types.NewContext()
	st := types.NewSymbolTable(ctx)
	err := typeexpr.NewParser(ctx, st).ParseScript(src)
	phase.End("")
	if err != nil {
		span.End("error")
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	span.End(fmt.Sprintf("%d names", st.Len()))

	phase = timer.Begin("render")
	entries := make([]Entry, 0, st.Len())
	for _, name := range st.Names() {
		id, ok := st.Lookup(name)
		if !ok {
			continue
		}
		trace.Point(tr, trace.ScopeDetail, "render", "%"+name)
		entries = append(entries, Entry{
			Name:     name,
			Rendered: typeprint.Render(ctx, id),
			Named:    typeprint.RenderNamed(ctx, st, id),
			Kind:     ctx.Kind(id).String(),
			Abstract: ctx.IsAbstract(id),
		})
	}
	phase.End(fmt.Sprintf("%d entries", len(entries)))

	return &Report{
		Path:    path,
		Entries: entries,
		Stats:   ctx.Stats(),
		Timing:  timer.Report(),
	}, nil
}

// EvaluateAll evaluates many script files in parallel, one store context per
// file. Results come back in input order; the first error cancels the rest.
func EvaluateAll(ctx context.Context, paths []string, opts *Options) ([]*Report, error) {
	jobs := 0
	if opts != nil {
		jobs = opts.Jobs
	}
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	reports := make([]*Report, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, max(len(paths), 1)))
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			rep, err := EvaluateFile(path, opts)
			if err != nil {
				return err
			}
			reports[i] = rep
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}

// ListScripts returns a sorted list of all *.ty files under dir.
func ListScripts(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, ".ty") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}
