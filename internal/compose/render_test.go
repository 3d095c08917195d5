package compose

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const defaultDocument = `services:
  code-server:
    image: codercom/code-server:latest # Official image
    container_name: code-server
    command: ["--cert"]
    environment:
      # Optional: Set passwords via environment variables if desired
      # - PASSWORD=your_strong_password_here # Set a fixed password
      # - SUDO_PASSWORD=optional_sudo_password # If you need sudo inside
      - TZ=Etc/UTC
    volumes:
      # Map config dir from host (relative to compose file) to container
      - ./config:/home/coder/.config
      # Map local settings dir from host (relative to compose file) to container
      - ./config/local-share:/home/coder/.local/share/code-server
      # Map projects dir from host (relative to compose file) to container
      - ./projects:/home/coder/projects
      # Optional: Mount docker socket (use with caution)
      # - /var/run/docker.sock:/var/run/docker.sock
    ports:
      # Map host port to container port
      - "8443:8443"
    restart: unless-stopped
    # Run the container process as the host user for correct volume permissions
    user: "1000:1000"

networks:
  default:
    name: code-server_network
`

type document struct {
	Services map[string]struct {
		Image         string   `yaml:"image"`
		ContainerName string   `yaml:"container_name"`
		Command       []string `yaml:"command"`
		Environment   []string `yaml:"environment"`
		Volumes       []string `yaml:"volumes"`
		Ports         []string `yaml:"ports"`
		Restart       string   `yaml:"restart"`
		User          string   `yaml:"user"`
	} `yaml:"services"`
	Networks map[string]struct {
		Name string `yaml:"name"`
	} `yaml:"networks"`
}

func decode(t *testing.T, out []byte) document {
	t.Helper()
	var doc document
	require.NoError(t, yaml.Unmarshal(out, &doc))
	return doc
}

func TestRender_Defaults(t *testing.T) {
	t.Parallel()

	out, err := Render(NewGenerationRequest("docker-compose.yml", "coder"), `user: "1000:1000"`)
	require.NoError(t, err)
	assert.Equal(t, defaultDocument, string(out))
}

func TestRender_Structure(t *testing.T) {
	t.Parallel()

	req := NewGenerationRequest("out.yml", "coder")
	req.ConfigSubdir = "cfg"
	req.ProjectsSubdir = "work"
	req.UseDockerSocket = true

	out, err := Render(req, `user: "1001:1002"`)
	require.NoError(t, err)

	doc := decode(t, out)
	require.Len(t, doc.Services, 1)
	svc, ok := doc.Services["code-server"]
	require.True(t, ok)

	assert.Equal(t, "codercom/code-server:latest", svc.Image)
	assert.Equal(t, "code-server", svc.ContainerName)
	assert.Equal(t, []string{"--cert"}, svc.Command)
	assert.Equal(t, []string{"TZ=Etc/UTC"}, svc.Environment)
	assert.Equal(t, []string{
		"./cfg:/home/coder/.config",
		"./cfg/local-share:/home/coder/.local/share/code-server",
		"./work:/home/coder/projects",
		"/var/run/docker.sock:/var/run/docker.sock",
	}, svc.Volumes)
	assert.Equal(t, []string{"8443:8443"}, svc.Ports)
	assert.Equal(t, "unless-stopped", svc.Restart)
	assert.Equal(t, "1001:1002", svc.User)
	assert.Equal(t, "code-server_network", doc.Networks["default"].Name)
}

func TestRender_DockerSocket(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		useSocket bool
		active    bool
	}{
		{name: "enabled", useSocket: true, active: true},
		{name: "disabled", useSocket: false, active: false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := NewGenerationRequest("out.yml", "coder")
			req.UseDockerSocket = tt.useSocket
			out, err := Render(req, PlaceholderUserDirective)
			require.NoError(t, err)

			var activeLines, commentedLines int
			for _, line := range strings.Split(string(out), "\n") {
				switch strings.TrimSpace(line) {
				case DockerSocketMount:
					activeLines++
				case "# " + DockerSocketMount:
					commentedLines++
				}
			}

			if tt.active {
				assert.Equal(t, 1, activeLines)
				assert.Equal(t, 0, commentedLines)
			} else {
				assert.Equal(t, 0, activeLines)
				assert.Equal(t, 1, commentedLines)
				assert.Len(t, decode(t, out).Services["code-server"].Volumes, 3)
			}
		})
	}
}

func TestRender_PortMappingIsLiteral(t *testing.T) {
	t.Parallel()

	tests := []struct {
		host, container int
		want            string
	}{
		{8080, 8443, `- "8080:8443"`},
		{9000, 9000, `- "9000:9000"`},
		{0, -1, `- "0:-1"`},
	}

	for _, tt := range tests {
		req := NewGenerationRequest("out.yml", "coder")
		req.HostPort = tt.host
		req.ContainerPort = tt.container

		out, err := Render(req, PlaceholderUserDirective)
		require.NoError(t, err)
		assert.Contains(t, string(out), "\n      "+tt.want+"\n")
	}
}

func TestRender_Deterministic(t *testing.T) {
	t.Parallel()

	req := NewGenerationRequest("out.yml", "coder")
	req.UseDockerSocket = true

	first, err := Render(req, `user: "1:2"`)
	require.NoError(t, err)
	second, err := Render(req, `user: "1:2"`)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestRender_PlaceholderDirectiveIsComment(t *testing.T) {
	t.Parallel()

	out, err := Render(NewGenerationRequest("out.yml", "ghost"), PlaceholderUserDirective)
	require.NoError(t, err)

	assert.Contains(t, string(out), "\n    "+PlaceholderUserDirective+"\n")
	assert.Empty(t, decode(t, out).Services["code-server"].User)
}
