package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/enescakir/emoji"
	"github.com/spf13/cobra"

	"codeserver_cli/internal/compose"
	"codeserver_cli/internal/config"
	composeio "codeserver_cli/internal/io"
	"codeserver_cli/internal/logging"
)

var rootCmd = newRootCmd(compose.SystemAccounts{})

func newRootCmd(accounts compose.AccountResolver) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "codeserver-compose",
		Short: "Generate a docker-compose.yml for code-server",
		Long: `Generate a docker-compose.yml that runs code-server as a host user.

Values can also come from CODESERVER_COMPOSE_* environment variables
(e.g. CODESERVER_COMPOSE_HOST_PORT) or from a YAML file passed with --config.
Flags win over the environment, which wins over the file.`,
		Args: cobra.NoArgs,
		// errors are printed once by Execute
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			debug, _ := cmd.Flags().GetBool(config.KeyDebug)
			logging.Init(debug, cmd.ErrOrStderr())

			req, err := config.Load(cmd.Flags())
			if err != nil {
				return err
			}
			return generate(cmd.OutOrStdout(), cmd.ErrOrStderr(), req, accounts)
		},
	}

	flags := cmd.Flags()
	flags.String(config.KeyOutput, "", "Path to save the generated docker-compose.yml file (required)")
	flags.Int(config.KeyHostPort, compose.DefaultHostPort, "Host port to expose code-server on")
	flags.Int(config.KeyContainerPort, compose.DefaultContainerPort, "Container port code-server listens on")
	flags.String(config.KeyUser, "", "Host username to map for volume permissions (required)")
	flags.String(config.KeyProjectsSubdir, compose.DefaultProjectsSubdir, "Subdirectory name for projects volume (relative to compose file)")
	flags.String(config.KeyConfigSubdir, compose.DefaultConfigSubdir, "Subdirectory name for config volume (relative to compose file)")
	flags.Bool(config.KeyUseDockerSocket, false, "Mount the Docker socket into the container")
	flags.String(config.KeyConfigFile, "", "Optional YAML file with default values")
	flags.Bool(config.KeyDebug, false, "Print debug logs to stderr")

	cmd.AddCommand(newCompletionCmd())
	return cmd
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, logging.Failure(err.Error()))
		os.Exit(1)
	}
}

func generate(stdout, stderr io.Writer, req compose.GenerationRequest, accounts compose.AccountResolver) error {
	logging.Log.Debug().
		Str("output", req.OutputPath).
		Int("host_port", req.HostPort).
		Int("container_port", req.ContainerPort).
		Str("user", req.UserName).
		Str("projects_subdir", req.ProjectsSubdir).
		Str("config_subdir", req.ConfigSubdir).
		Bool("docker_socket", req.UseDockerSocket).
		Msg("generating compose file")

	directive, err := compose.ResolveUserDirective(accounts, req.UserName)
	if err != nil {
		// not fatal, the placeholder directive is used instead
		fmt.Fprintln(stderr, logging.Warning(err.Error()))
		logging.Log.Debug().Err(errors.Unwrap(err)).Str("user", req.UserName).Msg("account lookup failed")
	}

	content, err := compose.Render(req, directive)
	if err != nil {
		return err
	}

	if err := composeio.WriteComposeFile(req.OutputPath, content); err != nil {
		return err
	}
	logging.Log.Debug().Int("bytes", len(content)).Str("path", req.OutputPath).Msg("compose file written")

	fmt.Fprintln(stdout, logging.Success(fmt.Sprintf("%v docker-compose.yml successfully generated at: %s", emoji.CheckMarkButton, req.OutputPath)))
	return nil
}
