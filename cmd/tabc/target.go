package main

import (
	"fmt"

	"tabc/internal/config"
)

// resolveTarget returns the file or directory to operate on: the single
// positional argument if given, otherwise the entry file named by a
// tabc.toml manifest discovered above the current directory. It also
// returns the manifest, if one was found, so callers can pull its other
// defaults (e.g. the output path).
func resolveTarget(args []string) (string, *config.Manifest, error) {
	manifest, found, err := config.Load(".")
	if err != nil {
		return "", nil, err
	}
	if len(args) > 0 {
		if found {
			return args[0], manifest, nil
		}
		return args[0], nil, nil
	}
	if !found {
		return "", nil, fmt.Errorf("no file given and no tabc.toml found")
	}
	return manifest.EntryFile(), manifest, nil
}
