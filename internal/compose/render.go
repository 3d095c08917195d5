package compose

import (
	"bytes"
	"embed"
	"fmt"
	"text/template"
)

// DockerSocketMount is the volume entry that exposes the host container runtime.
const DockerSocketMount = "- /var/run/docker.sock:/var/run/docker.sock"

//go:embed templates/docker-compose.yml.tmpl
var templatesFS embed.FS

var composeTemplate = template.Must(
	template.New("docker-compose.yml.tmpl").ParseFS(templatesFS, "templates/docker-compose.yml.tmpl"),
)

type templateData struct {
	GenerationRequest
	DockerSocketMount string
	UserDirective     string
}

// Render produces the compose document for req. The output depends only on
// its arguments.
func Render(req GenerationRequest, userDirective string) ([]byte, error) {
	var buf bytes.Buffer
	data := templateData{
		GenerationRequest: req,
		DockerSocketMount: DockerSocketMount,
		UserDirective:     userDirective,
	}
	if err := composeTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("rendering compose template: %w", err)
	}
	return buf.Bytes(), nil
}
