// Package machine assembles the component tree (bus, RAM, CPU) that makes
// up one emulated SPARC system, either from a textual config file or from
// the built-in default layout.
package machine

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rcornwell/dyntrans-sparc/component"
)

// LoadConfig reads a config file of the form:
//
//	# comment
//	-              <component-spec> [as <name>]   (declares the tree root)
//	<parent-path>  <component-spec> [as <name>]   (attaches under parent-path)
//
// where <component-spec> reuses the component factory's own grammar
// ("classname" or "classname(k=v,k=v,...)"). Grounded on
// config/configparser.go's line-oriented LoadConfigFile/parseLine, adapted
// from its per-device-model "model address options" grammar to a generic
// "parent spec" grammar matching the component tree's own path addressing
// instead of S/370 device addresses.
func LoadConfig(r io.Reader) (*component.Component, error) {
	scanner := bufio.NewScanner(r)
	var root *component.Component
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			return nil, fmt.Errorf("machine: config line %d: expected <parent> <component-spec>", lineNumber)
		}
		parentTok, specTok := fields[0], fields[1]

		comp, err := component.CreateComponent(specTok)
		if err != nil {
			return nil, fmt.Errorf("machine: config line %d: %w", lineNumber, err)
		}
		if len(fields) >= 4 && fields[2] == "as" {
			comp.SetName(fields[3])
		}

		if parentTok == "-" {
			if root != nil {
				return nil, fmt.Errorf("machine: config line %d: root already declared", lineNumber)
			}
			root = comp
			continue
		}
		if root == nil {
			return nil, fmt.Errorf("machine: config line %d: no root declared yet", lineNumber)
		}
		parent, ok := root.LookupPath(parentTok)
		if !ok {
			return nil, fmt.Errorf("machine: config line %d: unknown parent path %q", lineNumber, parentTok)
		}
		parent.AddChild(comp)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if root == nil {
		return nil, errors.New("machine: config declares no root component")
	}
	return root, nil
}

// LoadConfigFile opens name and loads it via LoadConfig.
func LoadConfigFile(name string) (*component.Component, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return LoadConfig(f)
}
