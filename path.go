// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package jevents

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"
)

// pathEnv is the environment consulted to resolve a default event file.
type pathEnv struct {
	EventMap  string `env:"EVENTMAP"`
	CacheHome string `env:"XDG_CACHE_HOME"`
	Home      string `env:"HOME"`
}

// cpuInfoPath is the source of the host CPU identity; a variable so tests
// can point it at a fixture.
var cpuInfoPath = "/proc/cpuinfo"

// CPUString returns the host CPU identifier used to name event files, in
// the form "<vendor>-<family>-<model>", for example "GenuineIntel-6-3C".
// The family is decimal and the model is upper-case hexadecimal.
func CPUString() (string, error) {
	f, err := os.Open(cpuInfoPath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	var vendor string
	family, model := -1, -1
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		key, value, ok := strings.Cut(sc.Text(), ":")
		if !ok {
			continue
		}
		key, value = strings.TrimSpace(key), strings.TrimSpace(value)
		switch key {
		case "vendor_id":
			vendor = value
		case "cpu family":
			family, _ = strconv.Atoi(value)
		case "model":
			model, _ = strconv.Atoi(value)
		}
		if vendor != "" && family >= 0 && model >= 0 {
			break
		}
	}
	if err := sc.Err(); err != nil {
		return "", err
	}
	if vendor == "" || family < 0 || model < 0 {
		return "", errors.New("incomplete CPU identity")
	}
	return fmt.Sprintf("%s-%d-%X", vendor, family, model), nil
}

// DefaultPath resolves the event file to use when none is given:
//
//   - $EVENTMAP naming a readable file is used directly.
//   - Otherwise a non-empty $EVENTMAP is used as the CPU identifier, with
//     a "-core" suffix appended.
//   - Otherwise the host CPU identifier is used (see CPUString).
//
// The identifier is combined with the cache directory, $XDG_CACHE_HOME or
// $HOME/.cache, to form <cache>/pmu-events/<id>.json.
func DefaultPath() (string, error) {
	var env pathEnv
	if err := cleanenv.ReadEnv(&env); err != nil {
		return "", err
	}

	var id string
	if env.EventMap != "" {
		if fi, err := os.Stat(env.EventMap); err == nil && fi.Mode().IsRegular() {
			return env.EventMap, nil
		}
		id = env.EventMap + "-core"
	} else {
		s, err := CPUString()
		if err != nil {
			return "", fmt.Errorf("resolving CPU identity: %w", err)
		}
		id = s
	}

	cache := env.CacheHome
	if cache == "" {
		if env.Home == "" {
			return "", errors.New("no cache directory available")
		}
		cache = filepath.Join(env.Home, ".cache")
	}
	return filepath.Join(cache, "pmu-events", id+".json"), nil
}
