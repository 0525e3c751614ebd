// Package eql implements a small textual query language for building match
// specifications by component name:
//
//	match(position, velocity) & one(sprite, glyph) & not(frozen)
//	all()
//
// Groups joined by '&' merge by union into a single specification. The
// language exists so specifications can come from data (config files, debug
// consoles) rather than compiled-in component references.
package eql

import (
	"github.com/alecthomas/participle/v2"
	"github.com/rotisserie/eris"

	"github.com/aether-engine/aether/filter"
	"github.com/aether-engine/aether/types"
)

// Resolver maps a component name appearing in a query to its declared type.
type Resolver func(name string) (*types.ComponentType, error)

type eqlComponent struct {
	Name string `parser:"@Ident"`
}

type eqlGroup struct {
	Keyword    string          `parser:"@('match' | 'one' | 'not' | 'all')"`
	Components []*eqlComponent `parser:"'(' (@@ (',' @@)*)? ')'"`
}

type eqlExpr struct {
	First *eqlGroup   `parser:"@@"`
	Rest  []*eqlGroup `parser:"('&' @@)*"`
}

var parser = participle.MustBuild[eqlExpr]()

// Parse compiles src into a filter.Spec, resolving component names through
// resolve. An all() group overrides everything else, mirroring the explicit
// all flag on specifications built in code.
func Parse(src string, resolve Resolver) (filter.Spec, error) {
	expr, err := parser.ParseString("", src)
	if err != nil {
		return filter.Spec{}, eris.Wrap(err, "parse query")
	}
	groups := append([]*eqlGroup{expr.First}, expr.Rest...)

	var match, one, not []*types.ComponentType
	all := false
	for _, g := range groups {
		if g.Keyword == "all" {
			if len(g.Components) > 0 {
				return filter.Spec{}, eris.New("all() takes no parameters")
			}
			all = true
			continue
		}
		if len(g.Components) == 0 {
			return filter.Spec{}, eris.Errorf("%s() needs at least one component", g.Keyword)
		}
		cts := make([]*types.ComponentType, 0, len(g.Components))
		for _, c := range g.Components {
			ct, err := resolve(c.Name)
			if err != nil {
				return filter.Spec{}, eris.Wrapf(err, "unknown component %q", c.Name)
			}
			cts = append(cts, ct)
		}
		switch g.Keyword {
		case "match":
			match = append(match, cts...)
		case "one":
			one = append(one, cts...)
		case "not":
			not = append(not, cts...)
		}
	}
	if all {
		return filter.All(), nil
	}
	return filter.Match(match...).One(one...).Without(not...), nil
}
