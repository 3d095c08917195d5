package compose

const (
	DefaultHostPort       = 8443
	DefaultContainerPort  = 8443
	DefaultProjectsSubdir = "projects"
	DefaultConfigSubdir   = "config"
)

// GenerationRequest holds everything needed to produce one compose file.
// It is built once from the command line and not modified afterwards.
type GenerationRequest struct {
	OutputPath      string
	HostPort        int
	ContainerPort   int
	UserName        string
	ProjectsSubdir  string
	ConfigSubdir    string
	UseDockerSocket bool
}

// NewGenerationRequest returns a request for the given output path and user
// with every optional field set to its default.
func NewGenerationRequest(outputPath, userName string) GenerationRequest {
	return GenerationRequest{
		OutputPath:     outputPath,
		HostPort:       DefaultHostPort,
		ContainerPort:  DefaultContainerPort,
		UserName:       userName,
		ProjectsSubdir: DefaultProjectsSubdir,
		ConfigSubdir:   DefaultConfigSubdir,
	}
}
