package main

import (
	"errors"
	"fmt"
	"os"
	"reflect"

	"github.com/fatih/structs"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"
)

var (
	// Store the result of binding cobra flags
	Config string
	Debug  bool

	SourceBase      string
	SourcePostsPath string

	DestBase   string
	UploadPath string
	PostsPath  string

	// Command to run to retrieve the destination API token
	DestTokenCmd []string

	Workers int

	ParsedConfig YamlConfig
)

// Build the cobra command that handles our command line tool.
var rootCmd = &cobra.Command{
	Use:   "wm-migrate",
	Short: "Migrate WordPress content into a headless CMS",
	Long: `
Pulls posts out of a WordPress-style content API, converts their HTML bodies
to Markdown and a typed block tree, rehosts every image on the destination,
and submits the lot to a Strapi-like CMS.
`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := initializeConfig(cmd); err != nil {
			return fmt.Errorf("wm-migrate: failed to initialise config: %w", err)
		}
		return nil
	},
}

func init() {
	// Define cobra flags, the default value has the lowest (least significant) precedence
	rootCmd.PersistentFlags().StringVar(&Config, "config", "", "config file location (default: ~/.config/wm-migrate.yaml, respects WM_MIGRATE_CONFIG)")
	rootCmd.PersistentFlags().BoolVar(&Debug, "debug", false, "display debug output")
	rootCmd.PersistentFlags().StringVar(&SourceBase, "source-base", "", "base URL of the source content API, e.g. https://example.com")
	rootCmd.PersistentFlags().StringVar(&SourcePostsPath, "source-posts-path", "wp-json/wp/v2/posts", "path below the source base where posts are listed")
	rootCmd.PersistentFlags().StringVar(&DestBase, "dest-base", "", "base URL of the destination CMS, e.g. http://localhost:1337")
	rootCmd.PersistentFlags().StringVar(&UploadPath, "upload-path", "api/upload", "destination media upload path")
	rootCmd.PersistentFlags().StringVar(&PostsPath, "posts-path", "api/posts", "destination post creation path")
	rootCmd.PersistentFlags().StringSliceVar(&DestTokenCmd, "dest-token-cmd", []string{}, "shell command to retrieve the destination API token")
	rootCmd.PersistentFlags().IntVar(&Workers, "workers", 4, "number of concurrent post pipelines")
}

func initializeConfig(cmd *cobra.Command) error {
	explicit := Config != ""
	if Config == "" {
		// Did the user provide an ENV?
		envConfig := os.Getenv("WM_MIGRATE_CONFIG")
		if envConfig != "" {
			Config = envConfig
			explicit = true
		} else {
			// As fallback, search for config in home XDG-ish directory
			Config = "~/.config/wm-migrate.yaml"
		}
	}
	config, err := homedir.Expand(Config)
	if err != nil {
		return fmt.Errorf("wm-migrate: unable to expand homedir: %w", err)
	}
	Config = config

	if _, err := os.Stat(Config); errors.Is(err, os.ErrNotExist) {
		if explicit {
			return fmt.Errorf("wm-migrate: specified config file does not exist: %w", err)
		}
		// no config file is fine, flags might be enough
		debugLog("No config file at %s, continuing with flags only.\n", Config)
		return nil
	}

	yamlFile, err := os.ReadFile(Config)
	if err != nil {
		return fmt.Errorf("wm-migrate: error reading config file: %w", err)
	}

	// I'd like to bark if a user sets a flag we don't recognise:
	if err := yaml.UnmarshalStrict(yamlFile, &ParsedConfig); err != nil {
		return fmt.Errorf("wm-migrate: issue parsing config file: %w", err)
	}

	if err := bindFlags(cmd, ParsedConfig); err != nil {
		return fmt.Errorf("wm-migrate: failed to bind flags: %w", err)
	}

	return nil
}

type YamlConfig struct {
	DryRun      *bool `yaml:"dry-run"`
	WithVCR     *bool `yaml:"with-vcr"`
	SummaryYAML *bool `yaml:"summary-yaml"`

	SourceBase      string   `yaml:"source-base"`
	SourcePostsPath string   `yaml:"source-posts-path"`
	DestBase        string   `yaml:"dest-base"`
	UploadPath      string   `yaml:"upload-path"`
	PostsPath       string   `yaml:"posts-path"`
	DestTokenCmd    []string `yaml:"dest-token-cmd"`

	Workers int `yaml:"workers"`
	PerPage int `yaml:"per-page"`
}

// Bind each cobra flag to its associated config file entry.  Flags given on
// the command line win over the file.
func bindFlags(cmd *cobra.Command, v YamlConfig) error {
	for _, field := range structs.Fields(v) {
		key := field.Tag("yaml")
		if key == "" {
			return fmt.Errorf("wm-migrate: could not retrieve struct tag 'yaml'")
		}
		if flag := cmd.Flag(key); flag == nil {
			// the flag is unknown.  that can legitimately happen if you're
			// running e.g. `list posts` which has no `dry-run` flag but your
			// YAML file does define it...
			continue
		}
		if !cmd.Flags().Changed(key) {
			switch field.Kind() {
			case reflect.Ptr:
				// crappy, but YamlConfig only uses pointers for bools
				b, ok := field.Value().(*bool)
				if !ok {
					return fmt.Errorf("wm-migrate: found unrecognised field: %+v", field)
				}
				if b != nil {
					cmd.Flags().Set(key, fmt.Sprintf("%v", *b))
				}

			case reflect.String:
				s, ok := field.Value().(string)
				if !ok {
					return fmt.Errorf("wm-migrate: found unrecognised field: %+v", field)
				}
				if s != "" {
					cmd.Flags().Set(key, s)
				}

			case reflect.Int:
				n, ok := field.Value().(int)
				if !ok {
					return fmt.Errorf("wm-migrate: found unrecognised field: %+v", field)
				}
				if n != 0 {
					cmd.Flags().Set(key, fmt.Sprintf("%d", n))
				}

			case reflect.Slice:
				ss, ok := field.Value().([]string)
				if !ok {
					return fmt.Errorf("wm-migrate: found unrecognised field: %+v", field)
				}
				for _, s := range ss {
					// yes, repeatedly calling Set() appends to the slice...
					cmd.Flags().Set(key, s)
				}

			default:
				return fmt.Errorf("wm-migrate: found unrecognised field: %+v", field)
			}
		}
	}

	return nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		return fmt.Errorf("wm-migrate: execution error: %w", err)
	}

	return nil
}
