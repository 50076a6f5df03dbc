// Package specfile loads and validates the YAML spec document that drives
// the playlist builder (§4.8, §6).
package specfile

import (
	"bytes"
	"fmt"
	"os"
	"text/template"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/nextset/crate-builder/internal/models"
)

// Loader reads a spec file off disk, optionally renders it through
// text/template, and unmarshals + validates the result (§4.8).
type Loader struct {
	log *zap.Logger
}

// NewLoader constructs a Loader.
func NewLoader(log *zap.Logger) *Loader {
	return &Loader{log: log}
}

// Load reads path, renders it as a template against templateData (nil
// skips rendering), and decodes the result into a SpecDocument. Every
// failure is wrapped as *models.SpecError.
func (l *Loader) Load(path string, templateData any) (*models.SpecDocument, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, &models.SpecError{Path: path, Message: err.Error()}
	}

	rendered := string(raw)
	if templateData != nil {
		rendered, err = l.render(rendered, templateData)
		if err != nil {
			return nil, &models.SpecError{Path: path, Message: "template rendering failed: " + err.Error()}
		}
	}

	var doc models.SpecDocument
	if err := yaml.Unmarshal([]byte(rendered), &doc); err != nil {
		return nil, &models.SpecError{Path: path, Message: err.Error()}
	}

	if err := validateTree(doc.Tags, "tags", (*models.SpecNode).LeafTagContent); err != nil {
		return nil, err
	}
	if err := validateTree(doc.Combiner, "combiner", (*models.SpecNode).LeafExpression); err != nil {
		return nil, err
	}

	if l.log != nil {
		l.log.Debug("spec loaded", zap.String("path", path))
	}
	return &doc, nil
}

func (l *Loader) render(raw string, data any) (string, error) {
	tmpl, err := template.New("spec").Parse(raw)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// validateTree walks node, ensuring every folder has a name and every leaf
// carries the content its tree requires, selected via leafField (§6's
// grammar). leafField is LeafTagContent for the tags tree, LeafExpression
// for the combiner tree.
func validateTree(node *models.SpecNode, path string, leafField func(*models.SpecNode) string) error {
	if node == nil {
		return nil
	}
	if node.IsFolder {
		if node.Name == "" {
			return &models.SpecError{Path: path, Message: "folder node missing a name"}
		}
		for i, child := range node.Playlists {
			if err := validateTree(child, fmt.Sprintf("%s/%s[%d]", path, node.Name, i), leafField); err != nil {
				return err
			}
		}
		return nil
	}
	if leafField(node) == "" {
		return &models.SpecError{Path: path, Message: "leaf missing its required content"}
	}
	return nil
}
