package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ghodss/yaml"
	"github.com/imdario/mergo"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/jeffrom/chlog/changelog"
	"github.com/jeffrom/chlog/config"
	"github.com/jeffrom/chlog/runner"
	"github.com/jeffrom/chlog/vcs"
	"github.com/jeffrom/chlog/vcs/gitcli"
	"github.com/jeffrom/chlog/vcs/gogit"
)

// overridden by go build -X
var Version = "dev"

const configFileName = "chlog.yaml"

func main() {
	if err := run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(rawArgs []string) error {
	return execute(&config.DefaultTermIO, rawArgs[1:])
}

func execute(tio *config.TerminalIO, args []string) error {
	cmd := newRootCmd(tio)
	cmd.SetArgs(args)
	cmd.SetIn(tio.Stdin)
	cmd.SetOut(tio.Stdout)
	cmd.SetErr(tio.Stderr)
	return cmd.ExecuteContext(context.Background())
}

func newRootCmd(tio *config.TerminalIO) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "chlog",
		Short:         "Generate changelogs from merge request history",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetVersionTemplate("Version: {{.Version}}\n")
	cmd.AddCommand(newChangelogsCmd(tio), newCommitCmd(tio))
	return cmd
}

type changelogsOptions struct {
	req         changelog.Request
	overrides   config.Config
	cfgFile     string
	printConfig bool
	stats       bool
}

func newChangelogsCmd(tio *config.TerminalIO) *cobra.Command {
	o := &changelogsOptions{}
	cmd := &cobra.Command{
		Use:   "changelogs",
		Short: "Prepend changelog sections for new history",
		Long: `Reads tags and commits from the repository and prepends one section per
range to the changelog document. By default only the changes since the latest
tag are written.`,
		Example: `  # changes since the latest tag, labeled with package.json's version
  chlog changelogs

  # rebuild every section, one per tag
  chlog changelogs --all -v 1.4.0

  # an explicit range
  chlog changelogs --from dev1.2.0 --to dev1.3.0 -v 1.3.0

  # see the result without writing it
  chlog changelogs -n`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChangelogs(cmd.Context(), tio, o)
		},
	}

	addChangelogsFlags(cmd.Flags(), o)
	return cmd
}

func addChangelogsFlags(flags *pflag.FlagSet, o *changelogsOptions) {
	flags.BoolVar(&o.req.All, "all", false, "write one section per tag, then one for untagged changes")
	flags.StringVar(&o.req.From, "from", "", "start the range at `ref` (exclusive)")
	flags.StringVar(&o.req.To, "to", "", "end the range at `ref` (requires --from)")
	flags.StringVarP(&o.overrides.Version, "version", "v", "", "label untagged changes with `version`")
	flags.StringVarP(&o.overrides.Output, "output", "o", "", "write the changelog to `path` (default CHANGELOG.md)")
	flags.StringVar(&o.overrides.ProjectFile, "project", "", "read the fallback version from `file` (default package.json)")
	flags.StringVar(&o.overrides.Backend, "backend", "", fmt.Sprintf("read history using `name` %v", config.Backends))
	flags.BoolVarP(&o.overrides.Dryrun, "dry-run", "n", false, "print the resulting changelog instead of writing it")
	flags.BoolVar(&o.overrides.Debug, "debug", false, "print additional debugging info")
	flags.BoolVarP(&o.overrides.Quiet, "quiet", "q", false, "print as little as necessary")
	flags.BoolVar(&o.stats, "stats", false, "print a summary of the written sections")
	flags.StringVarP(&o.cfgFile, "config", "c", "", "specify config `file`")
	flags.BoolVar(&o.printConfig, "print-config", false, "print the effective configuration and exit")
}

func runChangelogs(ctx context.Context, tio *config.TerminalIO, o *changelogsOptions) error {
	wd, err := os.Getwd()
	if err != nil {
		return err
	}

	fileCfg, err := readConfigYAML(o.cfgFile, wd)
	if err != nil {
		return err
	}
	overrides := &config.Config{}
	if fileCfg != nil {
		*overrides = *fileCfg
	}
	if err := mergo.Merge(overrides, &o.overrides, mergo.WithOverride); err != nil {
		return err
	}
	overrides.Dir = wd
	cfg := config.NewWithTerminalIO(overrides, tio)

	if o.printConfig {
		b, err := yaml.Marshal(cfg)
		if err != nil {
			return err
		}
		tio.Printf("%s", b)
		return nil
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if o.req.To != "" && o.req.From == "" {
		cfg.Warnf("--to %s ignored without --from", o.req.To)
	}

	history, err := openBackend(cfg)
	if err != nil {
		return err
	}
	rnr := runner.New(cfg, history, afero.NewOsFs())

	stats, err := rnr.Changelogs(ctx, o.req)
	if err != nil {
		return err
	}
	if cfg.Dryrun && stats.Sections > 0 {
		if err := rnr.Preview(tio.Stdout); err != nil {
			return err
		}
	}
	if o.stats {
		return stats.TextSummary(tio.Stdout)
	}
	return nil
}

func openBackend(cfg config.Config) (vcs.Interface, error) {
	switch cfg.Backend {
	case "go-git":
		repo, err := gogit.Open(cfg, cfg.Dir)
		if err != nil {
			return nil, err
		}
		return repo, nil
	default:
		return gitcli.New(cfg, cfg.Dir), nil
	}
}

func newCommitCmd(tio *config.TerminalIO) *cobra.Command {
	return &cobra.Command{
		Use:   "commit",
		Short: "Print the commit message format guide",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return changelog.DefaultConvention.TextSummary(tio.Stdout)
		},
	}
}

// readConfigYAML reads p, or the nearest chlog.yaml in wd or its parents.
func readConfigYAML(p, wd string) (*config.Config, error) {
	if p != "" {
		return parseConfigYAML(p)
	}

	for {
		cfg, err := parseConfigYAML(filepath.Join(wd, configFileName))
		if err == nil {
			return cfg, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		parent := filepath.Dir(wd)
		if parent == wd {
			break
		}
		wd = parent
	}
	return nil, nil
}

func parseConfigYAML(p string) (*config.Config, error) {
	b, err := os.ReadFile(p)
	if err != nil {
		return nil, err
	}
	cfg := &config.Config{}
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", p, err)
	}
	return cfg, nil
}
