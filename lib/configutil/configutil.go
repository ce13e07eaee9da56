package configutil

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"dario.cat/mergo"
	"github.com/titanous/json5"
)

// reads a configuration file, `name` should come with a file extension.
// this function will merge the following files, where higher number is more
// prioritized.
// 1. <name>.<ext>
// 2. <name>.local.<ext>
func ReadConfig[T any](name string) (T, error) {
	var out T

	ext := filepath.Ext(name)
	localName := fmt.Sprintf("%s.local%s", strings.TrimSuffix(name, ext), ext)

	defaultFound, err := readInto(name, &out)
	if err != nil {
		return out, err
	}

	var override T
	localFound, err := readInto(localName, &override)
	if err != nil {
		return out, err
	}
	if localFound {
		err = mergo.Merge(&out, override, mergo.WithOverride)
		if err != nil {
			return out, err
		}
		slog.Info("merging config with local overrides", "local", localName)
	}

	if !defaultFound && !localFound {
		return out, os.ErrNotExist
	}
	return out, nil
}

func readInto[T any](path string, out *T) (bool, error) {
	contents, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if len(contents) == 0 {
		return false, nil
	}
	return true, json5.Unmarshal(contents, out)
}

// ReadConfig but it recursively goes up the filesystem until the root
// to find a configuration file matching the name.
func ReadRecursively[T any](name string) (T, error) {
	var defaultOut T

	current, err := os.Getwd()
	if err != nil {
		return defaultOut, err
	}

	for {
		config, err := ReadConfig[T](filepath.Join(current, name))
		if os.IsNotExist(err) {
			parent := filepath.Dir(current)
			if parent == current {
				return defaultOut, os.ErrNotExist
			}
			current = parent
			continue
		}
		return config, err
	}
}
