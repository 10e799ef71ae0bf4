package tree

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// Format is an on-disk document encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatFor picks the encoding from the file extension.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	}
	return "", fmt.Errorf("%s: %w", path, ErrUnknownFormat)
}

// Load reads and validates the document at path.
func Load(path string) (*Node, []byte, error) {
	format, err := FormatFor(path)
	if err != nil {
		return nil, nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("reading %s: %w", path, err)
	}
	root, err := Decode(data, format)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	return root, data, nil
}

// Decode parses and validates a document.
func Decode(data []byte, format Format) (*Node, error) {
	var root Node
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &root); err != nil {
			return nil, fmt.Errorf("parsing yaml: %w", err)
		}
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&root); err != nil {
			return nil, fmt.Errorf("parsing json: %w", err)
		}
	default:
		return nil, fmt.Errorf("%q: %w", format, ErrUnknownFormat)
	}
	if err := Validate(&root); err != nil {
		return nil, err
	}
	return &root, nil
}

// Encode serializes a document.
func Encode(root *Node, format Format) ([]byte, error) {
	switch format {
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(root); err != nil {
			return nil, fmt.Errorf("encoding yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("encoding yaml: %w", err)
		}
		return buf.Bytes(), nil
	case FormatJSON:
		data, err := json.MarshalIndent(root, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("encoding json: %w", err)
		}
		return append(data, '\n'), nil
	}
	return nil, fmt.Errorf("%q: %w", format, ErrUnknownFormat)
}

// Save writes root to path through a temp file and rename, and returns the
// bytes written so callers can recognise their own write later.
func Save(path string, root *Node) ([]byte, error) {
	format, err := FormatFor(path)
	if err != nil {
		return nil, err
	}
	data, err := Encode(root, format)
	if err != nil {
		return nil, err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return nil, fmt.Errorf("saving %s: %w", path, err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return nil, fmt.Errorf("saving %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return nil, fmt.Errorf("saving %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return nil, fmt.Errorf("saving %s: %w", path, err)
	}
	return data, nil
}

// Sample returns a small landing page used by `arbor init`.
func Sample() *Node {
	return &Node{ID: "body", Kind: KindBody, Children: []*Node{
		{ID: "header", Kind: KindSection, Name: "Header", Children: []*Node{
			{ID: "logo", Kind: KindImage, Name: "Logo"},
			{ID: "nav", Kind: KindList, Name: "Navigation", Children: []*Node{
				{ID: "nav-home", Kind: KindListItem, Children: []*Node{
					{ID: "nav-home-link", Kind: KindLink, Name: "Home"},
				}},
				{ID: "nav-docs", Kind: KindListItem, Children: []*Node{
					{ID: "nav-docs-link", Kind: KindLink, Name: "Docs"},
				}},
			}},
		}},
		{ID: "hero", Kind: KindSection, Name: "Hero", Children: []*Node{
			{ID: "hero-title", Kind: KindHeading, Name: "Build faster"},
			{ID: "hero-copy", Kind: KindParagraph},
			{ID: "hero-cta", Kind: KindBox, Name: "Actions", Children: []*Node{
				{ID: "cta-primary", Kind: KindButton, Name: "Get started"},
				{ID: "cta-secondary", Kind: KindButton, Name: "Learn more"},
			}},
		}},
		{ID: "signup", Kind: KindForm, Name: "Signup", Children: []*Node{
			{ID: "signup-email", Kind: KindInput, Name: "Email"},
			{ID: "signup-submit", Kind: KindButton, Name: "Subscribe"},
		}},
		{ID: "footer", Kind: KindSection, Name: "Footer", Locked: true, Children: []*Node{
			{ID: "footer-text", Kind: KindText, Name: "© Arbor"},
		}},
	}}
}
