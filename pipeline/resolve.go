package pipeline

import (
	"github.com/orchid-lang/orchid/intern"
	"github.com/orchid-lang/orchid/syntax"
	"github.com/orchid-lang/orchid/syntax/parse"
)

// resolveImports runs §4.D layer 5: builds each file's local alias map
// (Tok -> Sym) and rewrites every Name clause in every const body and
// every rule pattern/template, either through the alias map or by
// prefixing with the current module's Sym.
func (p *Pipeline) resolveImports(tree *Tree, units map[intern.Sym]*unit, parsed map[intern.Sym]*parse.FileTree) error {
	aliasByFile := make(map[intern.Sym]map[intern.Tok]intern.Sym, len(units))
	for fsym, u := range units {
		alias, err := p.buildAliasMap(u, units)
		if err != nil {
			return err
		}
		aliasByFile[fsym] = alias
	}
	for fsym, m := range tree.Modules {
		p.resolveModule(m, aliasByFile[fsym])
	}
	return nil
}

// buildAliasMap computes one file's local alias map: explicit named
// imports always win over whole-module (incl. wildcard) imports; two
// whole-module imports exporting the same bare name with no explicit
// override is an AmbiguousWildcard error.
func (p *Pipeline) buildAliasMap(u *unit, units map[intern.Sym]*unit) (map[intern.Tok]intern.Sym, error) {
	alias := make(map[intern.Tok]intern.Sym)
	named := make(map[intern.Tok]bool)
	wildcardSource := make(map[intern.Tok]intern.Sym)

	for _, tgt := range u.targets {
		if !tgt.HasName {
			continue
		}
		depSym := p.Sym.Intern(tgt.ModulePath)
		dep, ok := units[depSym]
		if !ok || !dep.exported[tgt.Name] {
			return nil, &UndefinedImport{Module: p.Sym.String(depSym), Name: mustResolveName(p.In, tgt.Name)}
		}
		alias[tgt.Name] = p.Sym.InternQualified(depSym, []intern.Tok{tgt.Name})
		named[tgt.Name] = true
	}
	for _, tgt := range u.targets {
		if !tgt.Whole {
			continue
		}
		depSym := p.Sym.Intern(tgt.ModulePath)
		dep, ok := units[depSym]
		if !ok {
			continue
		}
		for name := range dep.exported {
			if named[name] {
				continue
			}
			if src, seen := wildcardSource[name]; seen && src != depSym {
				return nil, &AmbiguousWildcard{Name: name, Text: mustResolveName(p.In, name), Module: p.Sym.String(u.path)}
			}
			wildcardSource[name] = depSym
			alias[name] = p.Sym.InternQualified(depSym, []intern.Tok{name})
		}
	}
	return alias, nil
}

func (p *Pipeline) resolveModule(m *Module, alias map[intern.Tok]intern.Sym) {
	for _, c := range m.Consts {
		c.Body = resolveClauses(p.Sym, alias, m.Sym, nil, c.Body)
	}
	for _, mac := range m.Macros {
		mac.Pattern = resolveClauses(p.Sym, alias, m.Sym, nil, mac.Pattern)
		mac.Body = resolveClauses(p.Sym, alias, m.Sym, nil, mac.Body)
	}
	for _, child := range m.Children {
		p.resolveModule(child, alias)
	}
}

func resolveClauses(sym *intern.SymTable, alias map[intern.Tok]intern.Sym, moduleSym intern.Sym, locals map[intern.Tok]bool, clauses []syntax.Clause) []syntax.Clause {
	out := make([]syntax.Clause, len(clauses))
	for i, c := range clauses {
		out[i] = resolveClause(sym, alias, moduleSym, locals, c)
	}
	return out
}

// resolveClause rewrites a single clause per §4.D layer 5: a lambda's
// argument name is always treated as module-local (prefixed the same way
// a self-declared name is) for the remainder of its body, so that a macro
// relocating it out of the lambda cannot make it collide with an import
// alias of the same bare token.
func resolveClause(sym *intern.SymTable, alias map[intern.Tok]intern.Sym, moduleSym intern.Sym, locals map[intern.Tok]bool, c syntax.Clause) syntax.Clause {
	switch c.Kind {
	case syntax.KName:
		if c.Resolved {
			return c
		}
		if locals[c.LocalName] {
			return syntax.ResolvedName(sym.InternQualified(moduleSym, []intern.Tok{c.LocalName}))
		}
		if s, ok := alias[c.LocalName]; ok {
			return syntax.ResolvedName(s)
		}
		return syntax.ResolvedName(sym.InternQualified(moduleSym, []intern.Tok{c.LocalName}))
	case syntax.KSeq:
		c.Seq = resolveClauses(sym, alias, moduleSym, locals, c.Seq)
		return c
	case syntax.KLambda:
		newLocals := locals
		if c.Arg != nil && c.Arg.Kind == syntax.KName && !c.Arg.Resolved {
			newLocals = cloneLocals(locals)
			newLocals[c.Arg.LocalName] = true
		}
		if c.Arg != nil {
			newArg := resolveClause(sym, alias, moduleSym, newLocals, *c.Arg)
			c.Arg = &newArg
		}
		c.Body = resolveClauses(sym, alias, moduleSym, newLocals, c.Body)
		return c
	default:
		return c
	}
}

func cloneLocals(locals map[intern.Tok]bool) map[intern.Tok]bool {
	out := make(map[intern.Tok]bool, len(locals)+1)
	for k, v := range locals {
		out[k] = v
	}
	return out
}
