package session

import "sync"

// Context carries the three process-wide mutable caches spec.md §5
// describes, each guarded by its own mutex. A zero-value Context is ready to
// use; New is provided for readability at call sites.
type Context struct {
	commandsMu sync.Mutex
	commands   map[string]struct{}

	toolsMu sync.Mutex
	tools   map[string]bool

	packagesMu sync.Mutex
	packages   map[string]struct{}
	paths      map[string]string
}

// New returns a Context with its caches ready for use.
func New() *Context {
	return &Context{
		commands: make(map[string]struct{}),
		tools:    make(map[string]bool),
		packages: make(map[string]struct{}),
		paths:    make(map[string]string),
	}
}

// SeenCommand reports whether key was already recorded by an earlier
// SeenCommand call, and if not, records it now. Callers use this to suppress re-issuing an
// idempotent command within one invocation (spec.md §3 invariant 6); build
// verbs bypass this cache entirely since rebuilding is always legitimate.
func (c *Context) SeenCommand(key string) bool {
	c.commandsMu.Lock()
	defer c.commandsMu.Unlock()
	if c.commands == nil {
		c.commands = make(map[string]struct{})
	}
	if _, ok := c.commands[key]; ok {
		return true
	}
	c.commands[key] = struct{}{}
	return false
}

// ToolAvailability returns the cached probe result for name and whether it
// was present in the cache.
func (c *Context) ToolAvailability(name string) (available, cached bool) {
	c.toolsMu.Lock()
	defer c.toolsMu.Unlock()
	available, cached = c.tools[name]
	return available, cached
}

// SetToolAvailability records a probe result for name.
func (c *Context) SetToolAvailability(name string, available bool) {
	c.toolsMu.Lock()
	defer c.toolsMu.Unlock()
	if c.tools == nil {
		c.tools = make(map[string]bool)
	}
	c.tools[name] = available
}

// PackageInstalled reports whether pkg was already marked installed this
// invocation.
func (c *Context) PackageInstalled(pkg string) bool {
	c.packagesMu.Lock()
	defer c.packagesMu.Unlock()
	_, ok := c.packages[pkg]
	return ok
}

// MarkPackageInstalled records pkg as installed, and its resolved on-disk
// path (e.g. the dependency-backend's toolchain file or include directory).
func (c *Context) MarkPackageInstalled(pkg, path string) {
	c.packagesMu.Lock()
	defer c.packagesMu.Unlock()
	if c.packages == nil {
		c.packages = make(map[string]struct{})
	}
	if c.paths == nil {
		c.paths = make(map[string]string)
	}
	c.packages[pkg] = struct{}{}
	if path != "" {
		c.paths[pkg] = path
	}
}

// CachedPath returns the path previously recorded by MarkPackageInstalled.
func (c *Context) CachedPath(pkg string) (string, bool) {
	c.packagesMu.Lock()
	defer c.packagesMu.Unlock()
	p, ok := c.paths[pkg]
	return p, ok
}
