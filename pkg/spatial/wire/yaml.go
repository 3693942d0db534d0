package wire

import (
	"bytes"
	"errors"
	"io"
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// yamlError matches one entry of yaml.TypeError. Group 2 is the tag, group 3
// the (possibly shortened) value and group 4 an unknown key.
var yamlError = regexp.MustCompile("^line ([0-9]+): (?:cannot unmarshal (!!\\w+)(?: `(.*)`)? into |field (.+) not found in type )")

// DecodeYAML decodes the first document in data into v. With strict set,
// keys that match no field are errors. A type mismatch or unknown key comes
// back as a *FieldError whose Field is the key path of the first offending
// node, such as "entities[1].velocity.x". An empty document leaves v as is.
func DecodeYAML(typeName string, data []byte, v any, strict bool) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(strict)
	err := dec.Decode(v)
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}

	fe := &FieldError{Type: typeName, Err: err}
	var typeErr *yaml.TypeError
	if !errors.As(err, &typeErr) {
		return fe
	}

	var root yaml.Node
	if yaml.Unmarshal(data, &root) != nil {
		return fe
	}
	for _, msg := range typeErr.Errors {
		if field, ok := yamlFieldOf(&root, msg); ok {
			fe.Field = field
			break
		}
	}
	return fe
}

// yamlFieldOf resolves one TypeError entry to a key path. It looks for the
// node the entry describes and falls back to the first key on that line.
func yamlFieldOf(root *yaml.Node, msg string) (string, bool) {
	m := yamlError.FindStringSubmatch(msg)
	if m == nil {
		return "", false
	}
	line, err := strconv.Atoi(m[1])
	if err != nil {
		return "", false
	}
	tag, value, unknown := m[2], m[3], m[4]

	var exact, onLine string
	var found bool
	walkYAML(root, "", func(n *yaml.Node, path string, key bool) bool {
		if n.Line != line {
			return true
		}
		if key && onLine == "" {
			onLine = path
		}
		switch {
		case unknown != "":
			found = key && n.Value == unknown
		case key:
			found = false
		case tag == "!!seq":
			found = n.Kind == yaml.SequenceNode
		case tag == "!!map":
			found = n.Kind == yaml.MappingNode
		default:
			found = n.Kind == yaml.ScalarNode && yamlValueMatches(n.Value, value)
		}
		if found {
			exact = path
		}
		return !found
	})

	switch {
	case found:
		return exact, true
	case onLine != "":
		return onLine, true
	}
	return "", false
}

// yamlValueMatches compares a node value with the form yaml.v3 prints, which
// keeps the first 7 bytes of values longer than 10.
func yamlValueMatches(node, printed string) bool {
	if len(node) > 10 && strings.HasSuffix(printed, "...") {
		return strings.HasPrefix(node, strings.TrimSuffix(printed, "..."))
	}
	return node == printed
}

// walkYAML visits n and its descendants in document order with their key
// paths. Mapping keys are visited with key set and the path they introduce.
// Returning false stops the walk.
func walkYAML(n *yaml.Node, path string, visit func(n *yaml.Node, path string, key bool) bool) bool {
	switch n.Kind {
	case yaml.DocumentNode:
		for _, c := range n.Content {
			if !walkYAML(c, path, visit) {
				return false
			}
		}
		return true
	case yaml.AliasNode:
		return true
	}

	if !visit(n, path, false) {
		return false
	}
	switch n.Kind {
	case yaml.MappingNode:
		for i := 0; i+1 < len(n.Content); i += 2 {
			k, val := n.Content[i], n.Content[i+1]
			child := k.Value
			if path != "" {
				child = path + "." + k.Value
			}
			if !visit(k, child, true) || !walkYAML(val, child, visit) {
				return false
			}
		}
	case yaml.SequenceNode:
		for i, c := range n.Content {
			if !walkYAML(c, path+"["+strconv.Itoa(i)+"]", visit) {
				return false
			}
		}
	}
	return true
}
