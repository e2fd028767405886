package typesys

import (
	"sync"

	"clr-typesys/collections"
	"clr-typesys/internal/diagnostic"
	"clr-typesys/platform"
)

// Domain is the identity scope of a set of modules. Types may be translated
// only between modules of the same domain.
type Domain struct {
	name     string
	platform platform.Info

	mu      sync.Mutex // guards module creation and corlib
	modules *collections.ExtensibleArray[*Module]
	corlib  *Module
}

// NewDomain creates an empty domain evaluated against p.
func NewDomain(name string, p platform.Info) (*Domain, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	return &Domain{
		name:     name,
		platform: p,
		modules:  collections.NewExtensibleArray[*Module](4),
	}, nil
}

// MustNewDomain is NewDomain that panics on an invalid platform.
func MustNewDomain(name string, p platform.Info) *Domain {
	d, err := NewDomain(name, p)
	if err != nil {
		panic(err)
	}

	return d
}

func (d *Domain) Name() string            { return d.name }
func (d *Domain) Platform() platform.Info { return d.platform }

// NewModule appends a module to the domain's arena.
func (d *Domain) NewModule(name string) (*Module, error) {
	if name == "" {
		return nil, diagnostic.InvalidArgument("Domain.NewModule", "empty module name")
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.moduleByName(name) != nil {
		return nil, diagnostic.InvalidArgument("Domain.NewModule", "module %q already exists", name)
	}

	m := newModule(d, d.modules.Len(), name)
	d.modules.Set(m.index, m)

	return m, nil
}

// Module returns the module in arena slot i.
func (d *Domain) Module(i int) (*Module, error) {
	if i < 0 || i >= d.modules.Len() {
		return nil, diagnostic.OutOfRange("Domain.Module", "index %d, have %d modules", i, d.modules.Len())
	}

	return d.modules.Get(i), nil
}

// Modules returns the modules in creation order.
func (d *Domain) Modules() []*Module {
	n := d.modules.Len()
	out := make([]*Module, 0, n)

	for i := range n {
		out = append(out, d.modules.Get(i))
	}

	return out
}

// ModuleByName returns the named module, or nil.
func (d *Domain) ModuleByName(name string) *Module {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.moduleByName(name)
}

func (d *Domain) moduleByName(name string) *Module {
	for i := range d.modules.Len() {
		if m := d.modules.Get(i); m.name == name {
			return m
		}
	}

	return nil
}

// SetCoreLibrary marks m as the module that defines the System types.
func (d *Domain) SetCoreLibrary(m *Module) error {
	if m == nil || m.domain != d {
		return diagnostic.DomainMismatch("Domain.SetCoreLibrary", "module does not belong to domain %q", d.name)
	}

	d.mu.Lock()
	d.corlib = m
	d.mu.Unlock()

	return nil
}

// CoreLibrary returns the core library module, or nil when none is set.
func (d *Domain) CoreLibrary() *Module {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.corlib
}
