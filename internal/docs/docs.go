// Package docs serves the OpenAPI description of the JSON endpoints and a
// browsable reference page for it.
package docs

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
	"net/http"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultTitle is used when no title is configured.
const DefaultTitle = "vidcheck API Reference"

const specPath = "/api/docs/openapi.yaml"

//go:embed openapi.yaml
var specYAML []byte

var pageTemplate = template.Must(template.New("docs").Parse(`<!DOCTYPE html>
<html><head>
  <title>{{.Title}}</title>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
</head><body>
  <script id="api-reference" data-url="{{.SpecPath}}"></script>
  <script src="https://cdn.jsdelivr.net/npm/@scalar/api-reference"></script>
</body></html>`))

// Handler serves the reference page and the OpenAPI document. Both carry
// the configured title.
type Handler struct {
	page []byte
	spec []byte
}

func New(title string) (*Handler, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		title = DefaultTitle
	}

	spec, err := retitle(specYAML, title)
	if err != nil {
		return nil, err
	}

	var page bytes.Buffer
	if err := pageTemplate.Execute(&page, struct{ Title, SpecPath string }{title, specPath}); err != nil {
		return nil, fmt.Errorf("render docs page: %w", err)
	}
	return &Handler{page: page.Bytes(), spec: spec}, nil
}

// retitle rewrites info.title of an OpenAPI document, keeping the rest of
// the node tree (comments and key order included) as written.
func retitle(doc []byte, title string) ([]byte, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(doc, &root); err != nil {
		return nil, fmt.Errorf("parse openapi document: %w", err)
	}
	if len(root.Content) == 0 || root.Content[0].Kind != yaml.MappingNode {
		return nil, fmt.Errorf("openapi document is not a mapping")
	}

	info := mappingValue(root.Content[0], "info")
	if info == nil || info.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("openapi document has no info section")
	}
	if node := mappingValue(info, "title"); node != nil {
		node.Value = title
	} else {
		info.Content = append(info.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: "title"},
			&yaml.Node{Kind: yaml.ScalarNode, Value: title},
		)
	}

	var out bytes.Buffer
	enc := yaml.NewEncoder(&out)
	enc.SetIndent(2)
	if err := enc.Encode(&root); err != nil {
		return nil, fmt.Errorf("encode openapi document: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode openapi document: %w", err)
	}
	return out.Bytes(), nil
}

func mappingValue(m *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			return m.Content[i+1]
		}
	}
	return nil
}

func (h *Handler) Spec(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	_, _ = w.Write(h.spec)
}

func (h *Handler) Page(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Security-Policy",
		"default-src 'self'; "+
			"script-src 'self' https://cdn.jsdelivr.net 'unsafe-inline'; "+
			"style-src 'self' https://cdn.jsdelivr.net 'unsafe-inline'; "+
			"font-src 'self' https://cdn.jsdelivr.net data:; "+
			"img-src 'self' data:; connect-src 'self'; frame-ancestors 'self';")
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(h.page)
}
