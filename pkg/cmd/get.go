package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"sigs.k8s.io/yaml"

	"github.com/mvnget/mvnget/pkg/config"
	"github.com/mvnget/mvnget/pkg/coordinate"
	"github.com/mvnget/mvnget/pkg/download"
	"github.com/mvnget/mvnget/pkg/maven"
)

type getOptions struct {
	groupID    string
	artifactID string
	version    string
	classifier string
	extension  string

	dest     string
	repoURL  string
	username string
	password string
	check    bool
	output   string
}

func newGetCmd() *cobra.Command {
	opts := &getOptions{}

	cmd := &cobra.Command{
		Use:   "get [coordinate]",
		Short: "Download an artifact",
		Long: `Downloads a single artifact from a Maven repository.

A coordinate has the form group:artifact[:extension[:classifier]]:version;
omit the version (group:artifact) to resolve the newest one published.
Snapshot versions are resolved to their current timestamped build.

The artifact can alternatively be identified with --group-id and
--artifact-id, mutually exclusive with a positional coordinate. When a
coordinate is given, --version, --classifier and --extension fill in only
the fields the coordinate leaves out.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGet(cmd, args, opts)
		},
	}

	cmd.Flags().StringVar(&opts.groupID, "group-id", "", "groupId of the artifact")
	cmd.Flags().StringVar(&opts.artifactID, "artifact-id", "", "artifactId of the artifact")
	cmd.Flags().StringVar(&opts.version, "version", "", "artifact version (newest published when omitted)")
	cmd.Flags().StringVar(&opts.classifier, "classifier", "", "artifact classifier (e.g. sources)")
	cmd.Flags().StringVar(&opts.extension, "extension", "", "artifact file extension (default jar)")
	cmd.Flags().StringVarP(&opts.dest, "dest", "d", "", "destination file or directory (required)")
	cmd.Flags().StringVar(&opts.repoURL, "repo-url", "", "repository base URL")
	cmd.Flags().StringVarP(&opts.username, "username", "u", "", "username for HTTP basic auth")
	cmd.Flags().StringVarP(&opts.password, "password", "p", "", "password for HTTP basic auth")
	cmd.Flags().BoolVar(&opts.check, "check", false, "fetch without writing the destination")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "text", "result format: text, json or yaml")
	cmd.MarkFlagRequired("dest")
	cmd.MarkFlagsRequiredTogether("group-id", "artifact-id")

	return cmd
}

// coordinateFromArgs builds the requested coordinate from either the
// positional coordinate string or the discrete flags. Flag values fill only
// the fields a coordinate string leaves unspecified.
func coordinateFromArgs(args []string, opts *getOptions) (coordinate.Coordinate, error) {
	if len(args) == 0 {
		return coordinate.New(opts.groupID, opts.artifactID, opts.version, opts.classifier, opts.extension)
	}

	if opts.groupID != "" || opts.artifactID != "" {
		return coordinate.Coordinate{}, fmt.Errorf("a coordinate argument is mutually exclusive with --group-id and --artifact-id")
	}

	c, err := coordinate.Parse(args[0])
	if err != nil {
		return coordinate.Coordinate{}, err
	}

	segments := strings.Count(args[0], ":") + 1
	if c.Version == "" && opts.version != "" {
		c = c.WithVersion(opts.version)
	}
	if segments < 5 && opts.classifier != "" {
		c.Classifier = opts.classifier
	}
	if segments < 4 && opts.extension != "" {
		c.Extension = opts.extension
	}
	return c, nil
}

func runGet(cmd *cobra.Command, args []string, opts *getOptions) error {
	if opts.output != "text" && opts.output != "json" && opts.output != "yaml" {
		return fmt.Errorf("unknown output format %q (expected text, json or yaml)", opts.output)
	}

	c, err := coordinateFromArgs(args, opts)
	if err != nil {
		return err
	}

	repo, err := config.LoadRepository(config.Overrides{
		URL:      opts.repoURL,
		Username: opts.username,
		Password: opts.password,
	})
	if err != nil {
		return err
	}

	logger.Debug("resolved repository", "url", repo.URL, "auth", repo.Username != "" && repo.Password != "")
	logger.Debug("requested artifact", "coordinate", c.String())

	engine := &download.Engine{
		Client: maven.NewClient(repo),
		DryRun: opts.check,
	}
	if opts.output == "text" && !opts.check {
		engine.ProgressOut = os.Stderr
	}

	outcome, err := engine.Download(cmd.Context(), c, opts.dest)
	if err != nil {
		return err
	}

	logger.Debug("download finished", "url", outcome.URL, "path", outcome.Path, "changed", outcome.Changed)

	return printOutcome(cmd, outcome, opts.output)
}

func printOutcome(cmd *cobra.Command, outcome *download.Outcome, format string) error {
	out := cmd.OutOrStdout()

	switch format {
	case "text":
		if outcome.Changed {
			fmt.Fprintf(out, "Downloaded %s to %s\n", outcome.Name, outcome.Path)
		} else {
			fmt.Fprintf(out, "%s is already up to date\n", outcome.Path)
		}
	case "json":
		data, err := json.MarshalIndent(outcome, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling outcome: %w", err)
		}
		fmt.Fprintln(out, string(data))
	case "yaml":
		data, err := yaml.Marshal(outcome)
		if err != nil {
			return fmt.Errorf("marshaling outcome: %w", err)
		}
		fmt.Fprint(out, string(data))
	}
	return nil
}
