package component

import (
	"fmt"
	"strings"
	"sync"
)

// Constructor builds a fresh ClassImpl from a class name and the k=v
// arguments parsed out of a "name(k=v,...)" component-spec. Grounded on
// config/configparser's modelDef.create(unit, name, []Option) shape,
// generalized from S/370 device models to arbitrary component classes.
type Constructor func(args map[string]string) (ClassImpl, error)

var (
	factoryMu sync.Mutex
	factory   = map[string]Constructor{}
)

// RegisterComponentClass adds or replaces the constructor for className.
// A later registration for the same name replaces an earlier one, matching
// configparser.RegisterModel's last-wins semantics.
func RegisterComponentClass(className string, ctor Constructor) {
	factoryMu.Lock()
	defer factoryMu.Unlock()
	factory[className] = ctor
}

// HasAttribute reports whether the registered class className would answer
// true for attribute name, by constructing a throwaway instance with no
// arguments and querying it. Returns false if the class isn't registered or
// construction with no arguments fails.
func HasAttribute(className, attribute string) bool {
	c, err := CreateComponent(className)
	if err != nil {
		return false
	}
	return c.HasAttribute(attribute)
}

// CreateComponent parses spec as either "classname" or
// "classname(k1=v1,k2=v2,...)" and builds the named class via its
// registered Constructor.
func CreateComponent(spec string) (*Component, error) {
	className, args, err := parseComponentSpec(spec)
	if err != nil {
		return nil, err
	}
	factoryMu.Lock()
	ctor, ok := factory[className]
	factoryMu.Unlock()
	if !ok {
		return nil, fmt.Errorf("component: no class registered for %q", className)
	}
	impl, err := ctor(args)
	if err != nil {
		return nil, fmt.Errorf("component: constructing %q: %w", className, err)
	}
	return New(impl), nil
}

func parseComponentSpec(spec string) (className string, args map[string]string, err error) {
	spec = strings.TrimSpace(spec)
	open := strings.IndexByte(spec, '(')
	if open < 0 {
		return spec, nil, nil
	}
	if !strings.HasSuffix(spec, ")") {
		return "", nil, fmt.Errorf("component: malformed spec %q: missing closing paren", spec)
	}
	className = spec[:open]
	inner := spec[open+1 : len(spec)-1]
	args = map[string]string{}
	if inner == "" {
		return className, args, nil
	}
	for _, kv := range strings.Split(inner, ",") {
		kv = strings.TrimSpace(kv)
		if kv == "" {
			continue
		}
		eq := strings.IndexByte(kv, '=')
		if eq < 0 {
			return "", nil, fmt.Errorf("component: malformed argument %q in spec %q", kv, spec)
		}
		key := strings.TrimSpace(kv[:eq])
		val := strings.TrimSpace(kv[eq+1:])
		args[key] = val
	}
	return className, args, nil
}
