package configutil

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"dario.cat/mergo"
	"github.com/titanous/json5"
)

// reads a json5 configuration file into T. a config named conf.json5 may
// sit next to a conf.local.json5 holding overrides, which win during the
// merge. when neither file exists the returned error matches
// fs.ErrNotExist.
func ReadConfig[T any](name string) (T, error) {
	var out T

	found, err := readInto(&out, name)
	if err != nil {
		return out, err
	}

	ext := filepath.Ext(name)
	localName := name[:len(name)-len(ext)] + ".local" + ext

	var override T
	foundLocal, err := readInto(&override, localName)
	if err != nil {
		return out, err
	}
	if foundLocal {
		err = mergo.Merge(&out, override, mergo.WithOverride)
		if err != nil {
			return out, err
		}
		slog.Info("merging config with local overrides", "local", localName)
	}

	if !found && !foundLocal {
		return out, os.ErrNotExist
	}
	return out, nil
}

// an empty file counts the same as a missing one
func readInto[T any](out *T, name string) (bool, error) {
	contents, err := os.ReadFile(name)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if len(contents) == 0 {
		return false, nil
	}
	err = json5.Unmarshal(contents, out)
	if err != nil {
		return false, fmt.Errorf("parse %s: %w", name, err)
	}
	return true, nil
}

// ReadConfig, but walks up from the working directory towards the
// filesystem root until a matching config file is found.
func ReadRecursively[T any](name string) (T, error) {
	var out T

	current, err := os.Getwd()
	if err != nil {
		return out, err
	}

	for {
		config, err := ReadConfig[T](filepath.Join(current, name))
		if errors.Is(err, fs.ErrNotExist) {
			parent := filepath.Dir(current)
			if parent == current {
				return out, os.ErrNotExist
			}
			current = parent
			continue
		}
		return config, err
	}
}
