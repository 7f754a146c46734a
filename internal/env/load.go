// Package env loads settings overrides from a dotenv file into the process environment.
package env

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"

	"github.com/spf13/viper"
)

// DefaultPath is the dotenv file read at startup, relative to the working directory.
const DefaultPath = ".env"

// Load reads the dotenv file at path and exports every KEY=VALUE whose key starts with prefix.
// Variables already set in the environment win over the file. A missing file is not an error.
// It returns the names it exported, sorted.
func Load(path, prefix string) ([]string, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("env")
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("env: %s: %w", path, err)
	}

	prefix = strings.ToUpper(prefix)
	var set []string
	// viper lowercases keys; environment names here are upper case.
	for _, key := range v.AllKeys() {
		name := strings.ToUpper(key)
		if !strings.HasPrefix(name, prefix) {
			continue
		}
		if _, ok := os.LookupEnv(name); ok {
			continue
		}
		if err := os.Setenv(name, v.GetString(key)); err != nil {
			return set, fmt.Errorf("env: %s: %w", name, err)
		}
		set = append(set, name)
	}
	sort.Strings(set)
	return set, nil
}
