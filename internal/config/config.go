package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	trerrors "github.com/naoray/trellis/internal/errors"
)

// FileName is the project configuration file, relative to the meta-repo root.
const FileName = "trellis.json"

// EnvPrefix prefixes environment overrides, e.g. TRELLIS_CODEBASE_REMOTE.
const EnvPrefix = "TRELLIS"

const (
	DefaultBranch         = "main"
	DefaultWorktreeRoot   = "worktrees"
	DefaultPackageManager = "pnpm"
	DefaultFrozenFlag     = "--frozen-lockfile"
)

var (
	DefaultInstallArgs   = []string{"install"}
	DefaultEnableCommand = []string{"corepack", "enable"}
)

// Config represents the project configuration
type Config struct {
	Codebase       CodebaseConfig       `mapstructure:"codebase" yaml:"codebase"`
	Worktrees      WorktreesConfig      `mapstructure:"worktrees" yaml:"worktrees"`
	PackageManager PackageManagerConfig `mapstructure:"packageManager" yaml:"packageManager"`

	// UnusedKeys lists keys present in the file that no field consumed.
	UnusedKeys []string `mapstructure:"-" yaml:"-"`
}

// CodebaseConfig describes the bare codebase repository.
type CodebaseConfig struct {
	Remote        string `mapstructure:"remote" yaml:"remote"`
	DefaultBranch string `mapstructure:"defaultBranch" yaml:"defaultBranch"`
}

// WorktreesConfig describes where worktrees are created.
type WorktreesConfig struct {
	Root string `mapstructure:"root" yaml:"root"`
	// BranchSanitizer is informational only; sanitisation is fixed.
	BranchSanitizer string `mapstructure:"branchSanitizer" yaml:"branchSanitizer,omitempty"`
}

// PackageManagerConfig describes how dependencies are installed.
type PackageManagerConfig struct {
	Command            string   `mapstructure:"command" yaml:"command"`
	InstallArgs        []string `mapstructure:"installArgs" yaml:"installArgs"`
	EnableCommand      []string `mapstructure:"enableCommand" yaml:"enableCommand"`
	FrozenLockfileFlag string   `mapstructure:"frozenLockfileFlag" yaml:"frozenLockfileFlag"`
}

// Path returns the configuration file path for a meta-repo root.
func Path(root string) string {
	return filepath.Join(root, FileName)
}

// Load reads trellis.json from root, applies defaults and environment
// overrides, and validates required fields.
func Load(root string) (*Config, error) {
	path := Path(root)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, trerrors.New(trerrors.ErrConfigNotFound,
				fmt.Sprintf("%s not found in %s", FileName, root),
				fmt.Sprintf("Create %s with at least {\"codebase\": {\"remote\": \"<url>\"}}", path))
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	v := newViper()
	if err := v.ReadConfig(bytes.NewReader(jsonc.ToJSON(data))); err != nil {
		return nil, trerrors.New(trerrors.ErrConfigInvalid,
			fmt.Sprintf("parsing %s: %v", path, err), "")
	}

	var md mapstructure.Metadata
	var cfg Config
	if err := v.Unmarshal(&cfg, func(dc *mapstructure.DecoderConfig) {
		dc.Metadata = &md
	}); err != nil {
		return nil, trerrors.New(trerrors.ErrConfigInvalid,
			fmt.Sprintf("decoding %s: %v", path, err), "")
	}
	cfg.UnusedKeys = md.Unused
	sort.Strings(cfg.UnusedKeys)

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("json")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("codebase.remote", "")
	v.SetDefault("codebase.defaultBranch", DefaultBranch)
	v.SetDefault("worktrees.root", DefaultWorktreeRoot)
	v.SetDefault("packageManager.command", DefaultPackageManager)
	v.SetDefault("packageManager.installArgs", DefaultInstallArgs)
	v.SetDefault("packageManager.enableCommand", DefaultEnableCommand)
	v.SetDefault("packageManager.frozenLockfileFlag", DefaultFrozenFlag)

	return v
}

// applyDefaults fills optional fields that were present but blank.
func (c *Config) applyDefaults() {
	c.Codebase.Remote = strings.TrimSpace(c.Codebase.Remote)
	if strings.TrimSpace(c.Codebase.DefaultBranch) == "" {
		c.Codebase.DefaultBranch = DefaultBranch
	}
	if strings.TrimSpace(c.Worktrees.Root) == "" {
		c.Worktrees.Root = DefaultWorktreeRoot
	}
	if strings.TrimSpace(c.PackageManager.Command) == "" {
		c.PackageManager.Command = DefaultPackageManager
	}
	if len(c.PackageManager.InstallArgs) == 0 {
		c.PackageManager.InstallArgs = append([]string(nil), DefaultInstallArgs...)
	}
	if c.PackageManager.FrozenLockfileFlag == "" {
		c.PackageManager.FrozenLockfileFlag = DefaultFrozenFlag
	}
}

// Validate checks required fields.
func (c *Config) Validate() error {
	if c.Codebase.Remote == "" {
		return trerrors.New(trerrors.ErrConfigInvalid,
			fmt.Sprintf("codebase.remote is required in %s", FileName),
			"Set codebase.remote to the git URL of the codebase repository")
	}
	return nil
}

// YAML renders the effective configuration.
func (c *Config) YAML() ([]byte, error) {
	out, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("marshaling config: %w", err)
	}
	return out, nil
}
