package config

import (
	"strconv"
	"strings"

	"github.com/tudocomp-go/tdc/ast"
	"github.com/tudocomp-go/tdc/meta"
)

// Error is the wrapper type for all errors specific to this package.
type Error string

func (e Error) Error() string { return "config: " + string(e) }

// Library resolves the concrete Decl for an unbound sub-algorithm parameter:
// given the declared type and the name the user wrote in the configuration
// string, it returns the matching algorithm declaration.
type Library interface {
	Lookup(typ *meta.TypeDesc, name string) (*meta.Decl, bool)
}

// Config is the resolved configuration tree produced by walking a Decl and
// an ast.Node in parallel. Every required parameter carries a value or
// default; unknown or duplicate parameters are rejected at Build time.
type Config struct {
	Decl *meta.Decl

	primitives     map[string]string
	primitiveLists map[string][]string
	subs           map[string]*Config
	subLists       map[string][]*Config
}

// Build resolves n against decl, consulting lib to resolve unbound
// sub-algorithm parameters. It implements the four steps of spec.md §4.G.
func Build(n ast.Node, decl *meta.Decl, lib Library) (*Config, error) {
	obj, params, err := splitArgs(n)
	if err != nil {
		return nil, err
	}
	if obj != "" && decl.Name != "" && obj != decl.Name {
		return nil, Error("algorithm \"" + obj + "\" does not match declared \"" + decl.Name + "\"")
	}

	positional, keyword, err := splitPositionalKeyword(params)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Decl:           decl,
		primitives:     map[string]string{},
		primitiveLists: map[string][]string{},
		subs:           map[string]*Config{},
		subLists:       map[string][]*Config{},
	}

	used := map[string]bool{}
	posIdx := 0
	for _, pd := range decl.Params {
		var val ast.Node
		var has bool
		if kw, ok := keyword[pd.Name]; ok {
			val, has = kw, true
			used[pd.Name] = true
		} else if posIdx < len(positional) {
			val, has = positional[posIdx], true
			posIdx++
		}

		if !has {
			if !pd.HasDefault {
				return nil, Error("parameter \"" + pd.Name + "\" was given no value and has no default")
			}
			if err := cfg.setDefault(pd, lib); err != nil {
				return nil, err
			}
			continue
		}
		if err := cfg.resolveParam(pd, val, lib); err != nil {
			return nil, err
		}
	}

	if posIdx < len(positional) {
		return nil, Error("too many positional parameters")
	}
	for name := range keyword {
		if !used[name] {
			if _, declared := decl.Param(name); !declared {
				return nil, Error("unknown parameter \"" + name + "\"")
			}
		}
	}
	return cfg, nil
}

func splitArgs(n ast.Node) (name string, params []*ast.Param, err error) {
	switch v := n.(type) {
	case *ast.Value:
		return v.Name(), nil, nil
	case *ast.Object:
		return v.Name(), v.Params, nil
	default:
		return "", nil, Error("malformed configuration node")
	}
}

func splitPositionalKeyword(params []*ast.Param) (positional []ast.Node, keyword map[string]ast.Node, err error) {
	keyword = map[string]ast.Node{}
	seenKeyword := false
	for _, p := range params {
		if p.IsPositional() {
			if seenKeyword {
				return nil, nil, Error("positional parameter follows keyword parameter")
			}
			positional = append(positional, p.Value)
			continue
		}
		seenKeyword = true
		if _, dup := keyword[p.Name]; dup {
			return nil, nil, Error("parameter \"" + p.Name + "\" set twice")
		}
		keyword[p.Name] = p.Value
	}
	return positional, keyword, nil
}

func (c *Config) setDefault(pd *meta.ParamDecl, lib Library) error {
	switch pd.Kind {
	case meta.KindPrimitive:
		if pd.IsList {
			c.primitiveLists[pd.Name] = nil
		} else {
			c.primitives[pd.Name] = pd.Default
		}
	case meta.KindBound:
		sub, err := Build(ast.NewValue(pd.Bound.Name), pd.Bound, nil)
		if err != nil {
			return err
		}
		c.subs[pd.Name] = sub
	case meta.KindUnbound:
		if lib == nil {
			return Error("parameter \"" + pd.Name + "\" has no usable default (no library available to resolve it)")
		}
		sub, err := c.resolveUnbound(pd, ast.NewValue(pd.Default), lib)
		if err != nil {
			return err
		}
		c.subs[pd.Name] = sub
	}
	return nil
}

func (c *Config) resolveParam(pd *meta.ParamDecl, val ast.Node, lib Library) error {
	switch pd.Kind {
	case meta.KindPrimitive:
		if pd.IsList {
			list, ok := val.(*ast.Object)
			if !ok || !list.IsList() {
				return Error("parameter \"" + pd.Name + "\" requires a list value")
			}
			var out []string
			for _, el := range list.Elements() {
				out = append(out, el.Name())
			}
			c.primitiveLists[pd.Name] = out
			return nil
		}
		c.primitives[pd.Name] = val.Name()
		return nil

	case meta.KindBound:
		if pd.IsList {
			list, ok := val.(*ast.Object)
			if !ok || !list.IsList() {
				return Error("parameter \"" + pd.Name + "\" requires a list value")
			}
			var subs []*Config
			for _, el := range list.Elements() {
				sub, err := Build(el, pd.Bound, lib)
				if err != nil {
					return err
				}
				subs = append(subs, sub)
			}
			c.subLists[pd.Name] = subs
			return nil
		}
		sub, err := Build(val, pd.Bound, lib)
		if err != nil {
			return err
		}
		c.subs[pd.Name] = sub
		return nil

	case meta.KindUnbound:
		if lib == nil {
			return Error("no library available to resolve unbound parameter \"" + pd.Name + "\"")
		}
		if pd.IsList {
			list, ok := val.(*ast.Object)
			if !ok || !list.IsList() {
				return Error("parameter \"" + pd.Name + "\" requires a list value")
			}
			var subs []*Config
			for _, el := range list.Elements() {
				sub, err := c.resolveUnbound(pd, el, lib)
				if err != nil {
					return err
				}
				subs = append(subs, sub)
			}
			c.subLists[pd.Name] = subs
			return nil
		}
		sub, err := c.resolveUnbound(pd, val, lib)
		if err != nil {
			return err
		}
		c.subs[pd.Name] = sub
		return nil
	}
	return Error("unknown parameter kind")
}

func (c *Config) resolveUnbound(pd *meta.ParamDecl, val ast.Node, lib Library) (*Config, error) {
	name, _, err := splitArgs(val)
	if err != nil {
		return nil, err
	}
	decl, ok := lib.Lookup(pd.Type, name)
	if !ok {
		return nil, Error("unknown sub-algorithm \"" + name + "\" for type \"" + pd.Type.Name + "\"")
	}
	if !decl.Type.IsSubtypeOf(pd.Type) {
		return nil, Error("algorithm \"" + name + "\" is not a subtype of \"" + pd.Type.Name + "\"")
	}
	return Build(val, decl, lib)
}

// --- accessors ---

// Accessor wraps a resolved primitive parameter value for lexical casting.
type Accessor struct {
	name string
	val  string
	ok   bool
}

// Param returns an Accessor for the named primitive parameter.
func (c *Config) Param(name string) Accessor {
	v, ok := c.primitives[name]
	return Accessor{name: name, val: v, ok: ok}
}

// AsString returns the raw string value.
func (a Accessor) AsString() (string, error) {
	if !a.ok {
		return "", Error("parameter \"" + a.name + "\" has no value")
	}
	return a.val, nil
}

// AsInt parses the value as a signed integer.
func (a Accessor) AsInt() (int64, error) {
	s, err := a.AsString()
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, Error("parameter \"" + a.name + "\": " + err.Error())
	}
	return v, nil
}

// AsUint parses the value as an unsigned integer.
func (a Accessor) AsUint() (uint64, error) {
	s, err := a.AsString()
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, Error("parameter \"" + a.name + "\": " + err.Error())
	}
	return v, nil
}

// AsBool parses the value case-insensitively, recognising
// {true, 1, yes, on} as true and anything else as false (spec.md §4.G).
func (a Accessor) AsBool() (bool, error) {
	s, err := a.AsString()
	if err != nil {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "yes", "on":
		return true, nil
	default:
		return false, nil
	}
}

// AsVector returns a list-typed primitive parameter's raw string elements.
func (c *Config) AsVector(name string) ([]string, error) {
	v, ok := c.primitiveLists[name]
	if !ok {
		return nil, Error("parameter \"" + name + "\" has no value")
	}
	return v, nil
}

// SubConfig returns the resolved sub-configuration for a bound/unbound
// parameter.
func (c *Config) SubConfig(name string) (*Config, bool) {
	sub, ok := c.subs[name]
	return sub, ok
}

// SubConfigs returns the resolved sub-configurations for a list-typed
// bound/unbound parameter.
func (c *Config) SubConfigs(name string) ([]*Config, bool) {
	subs, ok := c.subLists[name]
	return subs, ok
}

// Signature reduces c to the bound-sub-algorithm structure used to key a
// Registry, per spec.md §3.
func (c *Config) Signature() string {
	return c.Decl.Signature
}

// Str renders c back into normalised configuration-string form, used as the
// compressed-file header (spec.md §6).
func (c *Config) Str() string {
	var sb strings.Builder
	sb.WriteString(c.Decl.Name)
	sb.WriteByte('(')
	first := true
	for _, pd := range c.Decl.Params {
		if !first {
			sb.WriteString(", ")
		}
		first = false
		sb.WriteString(pd.Name)
		sb.WriteByte('=')
		switch pd.Kind {
		case meta.KindPrimitive:
			if pd.IsList {
				sb.WriteByte('[')
				for i, v := range c.primitiveLists[pd.Name] {
					if i > 0 {
						sb.WriteString(", ")
					}
					sb.WriteString(v)
				}
				sb.WriteByte(']')
			} else {
				sb.WriteString(c.primitives[pd.Name])
			}
		case meta.KindBound, meta.KindUnbound:
			if pd.IsList {
				sb.WriteByte('[')
				for i, s := range c.subLists[pd.Name] {
					if i > 0 {
						sb.WriteString(", ")
					}
					sb.WriteString(s.Str())
				}
				sb.WriteByte(']')
			} else if sub, ok := c.subs[pd.Name]; ok {
				sb.WriteString(sub.Str())
			}
		}
	}
	sb.WriteByte(')')
	return sb.String()
}
