package app

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const configFlagName = "config"

func addConfigFlag(fs *pflag.FlagSet, basename string, cfgFile *string) {
	fs.StringVarP(cfgFile, configFlagName, "c", *cfgFile,
		fmt.Sprintf("Read configuration from the specified YAML file. Defaults to %s.yaml in $HOME/.%s or the working directory.", basename, basename))
}

// newViper returns a viper instance reading cfgFile, or the default
// <basename>.yaml when cfgFile is empty. Environment variables prefixed with
// the upper-cased basename override file values: output.dir is
// FLEETCARD_OUTPUT_DIR.
func newViper(basename, cfgFile string) (*viper.Viper, error) {
	v := viper.New()

	if cfgFile == "" {
		cfgFile = defaultConfigFile(basename)
	}
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	}

	v.SetEnvPrefix(strings.ToUpper(strings.ReplaceAll(basename, "-", "_")))
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if cfgFile == "" {
		return v, nil
	}
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read configuration file %q: %w", v.ConfigFileUsed(), err)
	}

	return v, nil
}

// defaultConfigFile returns the first regular <basename>.yaml or
// <basename>.yml in $HOME/.<basename> or the working directory. Files
// without one of those extensions are never picked up: the binary itself is
// usually named <basename>.
func defaultConfigFile(basename string) string {
	var dirs []string
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, filepath.Join(home, "."+basename))
	}
	dirs = append(dirs, ".")

	for _, dir := range dirs {
		for _, ext := range []string{".yaml", ".yml"} {
			path := filepath.Join(dir, basename+ext)
			if fi, err := os.Stat(path); err == nil && fi.Mode().IsRegular() {
				return path
			}
		}
	}
	return ""
}
