package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/misconfbench/misconfbench/internal/config"
	"github.com/misconfbench/misconfbench/internal/scanner"
	"github.com/misconfbench/misconfbench/internal/trivy"
)

var version = "dev"

func SetVersion(v string) {
	version = v
}

var (
	configPath string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "misconfbench",
	Short: "misconfbench — normalize config-scanner results for benchmarking",
	Long: `misconfbench wraps static configuration scanners and normalizes their
findings into a shared result schema, so multiple scanners can be
compared against a reference corpus of deliberately misconfigured
cluster manifests.`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to the harness config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(scannersCmd)
	rootCmd.AddCommand(toolVersionCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig resolves the harness config from --config or the default
// search locations.
func loadConfig() (*config.Config, error) {
	if configPath != "" {
		cfg, err := config.Load(configPath)
		if err != nil {
			return nil, err
		}
		if errs := config.Validate(cfg); len(errs) > 0 {
			return nil, fmt.Errorf("invalid config %s: %v", configPath, errs[0])
		}
		return cfg, nil
	}
	return config.LoadDefault()
}

func newLogger() (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.DisableCaller = true
	return cfg.Build()
}

// newRegistry builds the adapter registry, applying per-scanner
// invocation overrides from the config. Disabled scanners are skipped.
func newRegistry(cfg *config.Config, log *zap.Logger) *scanner.Registry {
	reg := scanner.NewRegistry()

	if sc := cfg.Scanner(trivy.Name); !sc.Disabled {
		reg.Register(trivy.New(log,
			trivy.WithBinary(sc.Bin),
			trivy.WithExtraArgs(sc.ExtraArgs...)))
	}

	return reg
}

// lookupAdapter resolves a scanner name against the registry, with a
// "did you mean" hint on failure.
func lookupAdapter(reg *scanner.Registry, name string) (scanner.Adapter, error) {
	a, ok := reg.Get(name)
	if ok {
		return a, nil
	}
	if matches := reg.ClosestMatches(name, 2); len(matches) > 0 {
		return nil, fmt.Errorf("unknown scanner %q (did you mean %v?)", name, matches)
	}
	return nil, fmt.Errorf("unknown scanner %q (known: %v)", name, reg.Names())
}
