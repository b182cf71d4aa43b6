package main

import (
	"errors"
	"fmt"
	"sync"

	"github.com/magcot/magcot/internal/dispatcher"
	"github.com/magcot/magcot/internal/logging"
	"github.com/magcot/magcot/pkg/annotation"
)

// Export formats, each a dispatcher command taking the output path.
const (
	FormatDocument  = "json"
	FormatStatement = "java"
	FormatMarkup    = "html"
	FormatPage      = "page"
)

// outputs maps formats to output paths. Empty paths are skipped.
type outputs struct {
	Document  string
	Statement string
	Markup    string
	Page      string
}

func (o outputs) events() []dispatcher.Event {
	var events []dispatcher.Event
	for _, out := range []struct{ format, path string }{
		{FormatDocument, o.Document},
		{FormatStatement, o.Statement},
		{FormatMarkup, o.Markup},
		{FormatPage, o.Page},
	} {
		if out.path != "" {
			events = append(events, dispatcher.Event{Command: out.format, Args: []string{out.path}})
		}
	}
	return events
}

func outputPath(e dispatcher.Event) (string, error) {
	if len(e.Args) != 1 {
		return "", fmt.Errorf("%s export takes one output path, got %d", e.Command, len(e.Args))
	}
	return e.Args[0], nil
}

// exportRun serializes session access between the synchronous handlers and
// the workers of the buffered ones, and collects the paths written.
type exportRun struct {
	mu      sync.Mutex
	s       *annotation.Session
	rs      renderSettings
	written map[string]string
}

// handler adapts write into a dispatcher handler for format.
func (r *exportRun) handler(format string, write func(p string) (string, error)) dispatcher.HandlerFunc {
	return func(e dispatcher.Event) (any, error) {
		p, err := outputPath(e)
		if err != nil {
			return nil, err
		}
		r.mu.Lock()
		defer r.mu.Unlock()
		written, err := write(p)
		if err != nil {
			return nil, err
		}
		r.written[format] = written
		return written, nil
	}
}

// paths returns the written paths in the order of events.
func (r *exportRun) paths(events []dispatcher.Event) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var paths []string
	for _, e := range events {
		if p, ok := r.written[e.Command]; ok {
			paths = append(paths, p)
		}
	}
	return paths
}

// newExportDispatcher registers one logged handler per format. Markup and
// page rendering are queued on their own workers; their errors surface
// from Close.
func (a *app) newExportDispatcher(r *exportRun) (*dispatcher.Dispatcher, error) {
	d, err := dispatcher.New(logging.NewDispatcherLogger(a.logger))
	if err != nil {
		return nil, err
	}
	s, rs := r.s, r.rs

	d.Register(FormatDocument, r.handler(FormatDocument, s.WriteDocument), dispatcher.Logged())

	d.Register(FormatStatement, r.handler(FormatStatement, func(p string) (string, error) {
		return s.WriteStatements(p, rs.statementOrder())
	}), dispatcher.Logged())

	d.Register(FormatMarkup, r.handler(FormatMarkup, func(p string) (string, error) {
		return s.WriteMarkup(p, rs.coloring(), rs.Indent)
	}), dispatcher.Logged(), dispatcher.Buffered(1), dispatcher.Blocking())

	d.Register(FormatPage, r.handler(FormatPage, func(p string) (string, error) {
		return s.WritePage(p, rs.pageOptions())
	}), dispatcher.Logged(), dispatcher.Buffered(1), dispatcher.Blocking())

	a.logger.Debug("Export dispatcher ready", "formats", d.Commands())
	return d, nil
}

// export dispatches every requested output in turn and returns the paths
// written. Dispatch stops at the first synchronous failure; queued exports
// still finish before export returns.
func (a *app) export(s *annotation.Session, rs renderSettings, out outputs) ([]string, error) {
	r := &exportRun{s: s, rs: rs, written: make(map[string]string)}
	d, err := a.newExportDispatcher(r)
	if err != nil {
		return nil, err
	}

	events := out.events()
	var dispatchErr error
	for _, e := range events {
		if _, err := d.Dispatch(e); err != nil {
			dispatchErr = fmt.Errorf("%s export: %w", e.Command, err)
			break
		}
	}
	closeErr := d.Close()
	return r.paths(events), errors.Join(dispatchErr, closeErr)
}
