package statements

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"

	"github.com/SscSPs/ecompta_backend/internal/core/domain"
	"github.com/SscSPs/ecompta_backend/internal/core/ledger"
	"gopkg.in/yaml.v3"
)

//go:embed definitions/*.yaml
var embeddedDefinitions embed.FS

// ErrUnknownStandard is matched by every UnknownStandardError.
var ErrUnknownStandard = errors.New("unknown accounting standard")

// UnknownStandardError is returned when no mapping table is registered for a standard.
type UnknownStandardError struct {
	Standard domain.AccountingStandard
}

func (e *UnknownStandardError) Error() string {
	return fmt.Sprintf("no mapping table registered for standard %q", e.Standard)
}

func (e *UnknownStandardError) Is(target error) bool {
	return target == ErrUnknownStandard
}

// Registry holds the compiled definitions. It is immutable once built and safe to share.
type Registry struct {
	defs map[domain.AccountingStandard]*Definition
}

var _ ledger.RulesProvider = (*Registry)(nil)

// LoadDefault loads the definitions shipped with the binary.
func LoadDefault() (*Registry, error) {
	sub, err := fs.Sub(embeddedDefinitions, "definitions")
	if err != nil {
		return nil, err
	}
	return Load(sub)
}

// Load reads every *.yaml file at the root of fsys as one definition.
func Load(fsys fs.FS) (*Registry, error) {
	names, err := fs.Glob(fsys, "*.yaml")
	if err != nil {
		return nil, err
	}
	if len(names) == 0 {
		return nil, errors.New("no statement definitions found")
	}
	sort.Strings(names)

	defs := make([]*Definition, 0, len(names))
	for _, name := range names {
		raw, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", name, err)
		}
		def, err := ParseDefinition(raw)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path.Base(name), err)
		}
		defs = append(defs, def)
	}
	return NewRegistry(defs...)
}

// ParseDefinition decodes and checks one YAML definition.
func ParseDefinition(raw []byte) (*Definition, error) {
	var def Definition
	if err := yaml.Unmarshal(raw, &def); err != nil {
		return nil, fmt.Errorf("decoding definition: %w", err)
	}
	if err := def.compile(); err != nil {
		return nil, err
	}
	return &def, nil
}

// NewRegistry builds a registry from already compiled definitions.
func NewRegistry(defs ...*Definition) (*Registry, error) {
	r := &Registry{defs: make(map[domain.AccountingStandard]*Definition, len(defs))}
	for _, d := range defs {
		if _, dup := r.defs[d.Standard]; dup {
			return nil, fmt.Errorf("standard %s is defined twice", d.Standard)
		}
		r.defs[d.Standard] = d
	}
	return r, nil
}

// Lookup returns the definition of a standard. The identifier is normalised first.
func (r *Registry) Lookup(standard domain.AccountingStandard) (*Definition, error) {
	std := domain.NormalizeStandard(string(standard))
	def, ok := r.defs[std]
	if !ok {
		return nil, &UnknownStandardError{Standard: std}
	}
	return def, nil
}

// Has reports whether a mapping table is registered for standard.
func (r *Registry) Has(standard domain.AccountingStandard) bool {
	_, err := r.Lookup(standard)
	return err == nil
}

// Standards lists the registered standards in alphabetical order.
func (r *Registry) Standards() []*Definition {
	out := make([]*Definition, 0, len(r.defs))
	for _, d := range r.defs {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Standard < out[j].Standard })
	return out
}

// NumberingRules makes the registry the validator's source of account formats.
func (r *Registry) NumberingRules(standard domain.AccountingStandard) (ledger.NumberingRules, bool) {
	def, err := r.Lookup(standard)
	if err != nil {
		return ledger.NumberingRules{}, false
	}
	return def.Rules(), true
}
