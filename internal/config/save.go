package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// KnownKeys returns every dotted leaf key a config file may set, sorted.
func KnownKeys() []string {
	data, err := yaml.Marshal(Defaults())
	if err != nil {
		return nil
	}
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil || len(doc.Content) == 0 {
		return nil
	}
	var keys []string
	collectKeys(doc.Content[0], "", &keys)
	slices.Sort(keys)
	return keys
}

func collectKeys(n *yaml.Node, prefix string, out *[]string) {
	for i := 0; i+1 < len(n.Content); i += 2 {
		key := n.Content[i].Value
		if prefix != "" {
			key = prefix + "." + key
		}
		if n.Content[i+1].Kind == yaml.MappingNode {
			collectKeys(n.Content[i+1], key, out)
			continue
		}
		*out = append(*out, key)
	}
}

// SaveValue sets one dotted key (for example "processor.slow_command_threshold")
// in the config file. The value is parsed as YAML so lists and numbers keep
// their type. Comments and formatting elsewhere in the file are preserved.
func SaveValue(configPath, dottedKey, value string) error {
	if !slices.Contains(KnownKeys(), dottedKey) {
		return fmt.Errorf("unknown config key %q", dottedKey)
	}

	valueNode, err := parseValue(value)
	if err != nil {
		return fmt.Errorf("parsing value for %s: %w", dottedKey, err)
	}

	data, err := os.ReadFile(configPath) //nolint:gosec // G304: operator-supplied config path
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("reading config: %w", err)
	}

	var doc yaml.Node
	if len(bytes.TrimSpace(data)) > 0 {
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("parsing config: %w", err)
		}
	}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		doc = yaml.Node{
			Kind:    yaml.DocumentNode,
			Content: []*yaml.Node{{Kind: yaml.MappingNode}},
		}
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return fmt.Errorf("config root is not a mapping")
	}
	if err := setPath(root, strings.Split(dottedKey, "."), valueNode); err != nil {
		return err
	}

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(&doc); err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	_ = encoder.Close()

	return writeAtomic(configPath, buf.Bytes())
}

func parseValue(value string) (*yaml.Node, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(value), &doc); err != nil {
		return nil, err
	}
	if len(doc.Content) == 0 {
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: ""}, nil
	}
	if doc.Content[0].Kind == yaml.MappingNode {
		return nil, fmt.Errorf("value must be a scalar or list")
	}
	return doc.Content[0], nil
}

// setPath walks or creates the mapping chain and replaces the leaf.
func setPath(node *yaml.Node, path []string, value *yaml.Node) error {
	key := path[0]
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value != key {
			continue
		}
		if len(path) == 1 {
			// Keep comments attached to the replaced value.
			old := node.Content[i+1]
			value.HeadComment, value.LineComment, value.FootComment = old.HeadComment, old.LineComment, old.FootComment
			node.Content[i+1] = value
			return nil
		}
		child := node.Content[i+1]
		if child.Kind != yaml.MappingNode {
			return fmt.Errorf("config key %q is not a section", key)
		}
		return setPath(child, path[1:], value)
	}

	if len(path) == 1 {
		node.Content = append(node.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: key}, value)
		return nil
	}
	child := &yaml.Node{Kind: yaml.MappingNode}
	node.Content = append(node.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: key}, child)
	return setPath(child, path[1:], value)
}

// writeAtomic writes to a temp file in the same directory, then renames it.
func writeAtomic(configPath string, data []byte) error {
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	temp, err := os.CreateTemp(dir, "."+AppName+".yaml.tmp.*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tempPath := temp.Name()

	if _, err := temp.Write(data); err != nil {
		_ = temp.Close()
		_ = os.Remove(tempPath)
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := temp.Close(); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("closing temp file: %w", err)
	}

	if err := os.Rename(tempPath, configPath); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
