package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/forgebld/tcfeatures/internal/variable"
)

// kvList is a repeatable name=value flag, implementing pflag.Value
// directly so "--var a=1 --var b=2" accumulates instead of overwriting.
type kvList []string

func (l *kvList) String() string { return strings.Join(*l, ",") }

func (l *kvList) Set(v string) error {
	if !strings.Contains(v, "=") {
		return fmt.Errorf("expected name=value, got %q", v)
	}
	*l = append(*l, v)
	return nil
}

func (l *kvList) Type() string { return "name=value" }

var _ pflag.Value = (*kvList)(nil)

// scopeFlags holds the --var/--int-var/--bool-var repeatable flags a
// command can attach to build a variable.Scope for expansion.
type scopeFlags struct {
	stringVars kvList
	intVars    kvList
	boolVars   kvList
}

func (f *scopeFlags) register(cmd *cobra.Command) {
	cmd.Flags().Var(&f.stringVars, "var", "string variable name=value (repeatable)")
	cmd.Flags().Var(&f.intVars, "int-var", "integer variable name=value (repeatable)")
	cmd.Flags().Var(&f.boolVars, "bool-var", "boolean variable name=true|false (repeatable)")
}

func (f *scopeFlags) scope() (*variable.Scope, error) {
	bindings := map[string]variable.Value{}

	for _, kv := range f.stringVars {
		name, val, err := splitKV(kv)
		if err != nil {
			return nil, err
		}
		bindings[name] = variable.String(val)
	}
	for _, kv := range f.intVars {
		name, val, err := splitKV(kv)
		if err != nil {
			return nil, err
		}
		n, err := strconv.ParseInt(val, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("--int-var %s: %w", kv, err)
		}
		bindings[name] = variable.Integer(n)
	}
	for _, kv := range f.boolVars {
		name, val, err := splitKV(kv)
		if err != nil {
			return nil, err
		}
		b, err := strconv.ParseBool(val)
		if err != nil {
			return nil, fmt.Errorf("--bool-var %s: %w", kv, err)
		}
		bindings[name] = variable.Boolean(b)
	}

	return variable.NewScope(bindings), nil
}

func splitKV(kv string) (string, string, error) {
	name, val, ok := strings.Cut(kv, "=")
	if !ok || name == "" {
		return "", "", fmt.Errorf("expected name=value, got %q", kv)
	}
	return name, val, nil
}
