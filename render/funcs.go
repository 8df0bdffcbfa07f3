package render

// This file defines the built-in functions available to every template.
// System information is gathered once per process; process environment is
// captured per Engine.

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"text/template"

	"github.com/ardnew/mung"
	"github.com/goccy/go-yaml"
)

// builtins returns a fresh map of the built-in template functions.
// environ is the process environment as KEY=VALUE entries; nil selects
// os.Environ.
func builtins(environ []string) template.FuncMap {
	return template.FuncMap{
		// System information.
		"env":      envFunc(buildProcessEnvMap(environ)),
		"target":   func() target { return system().target },
		"platform": func() target { return system().platform },
		"hostname": func() string { return system().hostname },
		"user":     func() *user.User { return system().user },
		"shell":    func() string { return system().shell },
		"cwd":      getCwd,

		// Filesystem.
		"fileExists": fileExists,
		"isDir":      fileIsDir,
		"isRegular":  fileIsRegular,
		"isSymlink":  fileIsSymlink,

		// Paths.
		"pathAbs":      pathAbs,
		"pathJoin":     pathJoin,
		"pathRel":      pathRel,
		"pathPrefix":   pathPrefix,
		"pathPrefixIf": pathPrefixIf,

		// Values.
		"toJSON":  toJSON,
		"toYAML":  toYAML,
		"list":    toList,
		"join":    join,
		"default": defaultValue,
	}
}

// ---------------------------------------------------------------------------
// System information
// ---------------------------------------------------------------------------

type systemInfo struct {
	user     *user.User
	target   target
	platform target
	hostname string
	shell    string
}

//nolint:gochecknoglobals
var system = sync.OnceValue(func() systemInfo {
	u := getUser()

	return systemInfo{
		user:     u,
		target:   getTarget(),
		platform: getPlatform(),
		hostname: getHostname(),
		shell:    getShell(u),
	}
})

// target identifies an operating system and instruction set architecture.
type target struct {
	OS   string
	Arch string
}

// String returns the target as OS-Arch.
func (t target) String() string {
	return t.OS + "-" + t.Arch
}

// getTarget returns the host target using GNU GCC/LLVM naming conventions.
func getTarget() target {
	t := getPlatform()

	switch t.Arch {
	case "386":
		t.Arch = "i386"
	case "amd64":
		t.Arch = "x86_64"
	case "arm":
		if arm, ok := os.LookupEnv("GOARM"); ok {
			arm, _, _ = strings.Cut(arm, ",")
			switch arm = strings.TrimSpace(arm); arm {
			case "5", "6", "7":
				t.Arch = "armv" + arm
			}
		}
	case "arm64":
		if t.OS != "darwin" {
			t.Arch = "aarch64"
		}
	case "mipsle":
		t.Arch = "mipsel"
	}

	return t
}

// getPlatform returns the host target using Go conventions, preferring the
// GOHOSTOS/GOHOSTARCH and GOOS/GOARCH environment over the running binary.
func getPlatform() target {
	lookup := func(fallback string, keys ...string) string {
		for _, k := range keys {
			if v, ok := os.LookupEnv(k); ok {
				return v
			}
		}

		return fallback
	}

	return target{
		OS:   lookup(runtime.GOOS, "GOHOSTOS", "GOOS"),
		Arch: lookup(runtime.GOARCH, "GOHOSTARCH", "GOARCH"),
	}
}

func getHostname() string {
	hostname, err := os.Hostname()
	if err != nil {
		return ""
	}

	return hostname
}

func getUser() *user.User {
	u, err := user.Current()
	if err != nil {
		return nil
	}

	return u
}

// getShell returns $SHELL, or the login shell of u from /etc/passwd.
func getShell(u *user.User) string {
	if shell, ok := os.LookupEnv("SHELL"); ok {
		return shell
	}

	if u == nil || u.Username == "" {
		return ""
	}

	f, err := os.Open("/etc/passwd")
	if err != nil {
		return ""
	}

	defer f.Close()

	s := bufio.NewScanner(f)
	for s.Scan() {
		e := strings.Split(s.Text(), ":")
		if len(e) > 6 && e[0] == u.Username {
			return e[6]
		}
	}

	return ""
}

func getCwd() string {
	cwd, err := os.Getwd()
	if err != nil {
		return pathAbs(".")
	}

	return cwd
}

// ---------------------------------------------------------------------------
// Environment variables
// ---------------------------------------------------------------------------

// buildProcessEnvMap converts KEY=VALUE entries to a map.
// If environ is nil, os.Environ is used.
func buildProcessEnvMap(environ []string) map[string]string {
	if environ == nil {
		environ = os.Environ()
	}

	result := make(map[string]string, len(environ))

	for _, entry := range environ {
		if key, value, ok := strings.Cut(entry, "="); ok {
			result[key] = value
		}
	}

	return result
}

func envFunc(processEnv map[string]string) func(string) string {
	return func(key string) string {
		return processEnv[key]
	}
}

// ---------------------------------------------------------------------------
// Filesystem
// ---------------------------------------------------------------------------

func fileExists(path string) bool {
	_, err := os.Stat(path)

	return !os.IsNotExist(err)
}

func fileIsDir(path string) bool {
	info, err := os.Stat(path)

	return err == nil && info.IsDir()
}

func fileIsRegular(path string) bool {
	info, err := os.Stat(path)

	return err == nil && info.Mode().IsRegular()
}

func fileIsSymlink(path string) bool {
	info, err := os.Lstat(path)

	return err == nil && info.Mode()&os.ModeSymlink != 0
}

// ---------------------------------------------------------------------------
// Paths
// ---------------------------------------------------------------------------

func pathAbs(path string) string {
	p, err := filepath.Abs(path)
	if err != nil {
		return path
	}

	return p
}

func pathJoin(elem ...string) string {
	return filepath.Join(elem...)
}

func pathRel(from, to string) string {
	p, err := filepath.Rel(pathAbs(from), pathAbs(to))
	if err != nil {
		return pathJoin(from, to)
	}

	return p
}

// pathPrefix prepends prefix to the list-separated subject, removing
// duplicates.
func pathPrefix(subject string, prefix ...string) string {
	return mung.Make(
		mung.WithSubjectItems(subject),
		mung.WithDelim(string(os.PathListSeparator)),
		mung.WithPrefixItems(prefix...),
	).String()
}

// pathPrefixIf is pathPrefix keeping only entries that are existing
// directories.
func pathPrefixIf(subject string, prefix ...string) string {
	return mung.Make(
		mung.WithSubjectItems(subject),
		mung.WithDelim(string(os.PathListSeparator)),
		mung.WithPrefixItems(prefix...),
		mung.WithFilter(fileIsDir),
	).String()
}

// ---------------------------------------------------------------------------
// Values
// ---------------------------------------------------------------------------

func toJSON(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}

	return string(b), nil
}

func toYAML(v any) (string, error) {
	b, err := yaml.Marshal(v)
	if err != nil {
		return "", err
	}

	return strings.TrimSuffix(string(b), "\n"), nil
}

// toList returns v as a list: a list unchanged, nil as an empty list and
// any other value as a single-element list. A key that may hold one value
// or several can be ranged over uniformly.
func toList(v any) []any {
	switch x := v.(type) {
	case nil:
		return []any{}
	case []any:
		return x
	default:
		return []any{x}
	}
}

// join formats the elements of v with fmt and joins them with sep.
func join(sep string, v any) string {
	list := toList(v)
	elem := make([]string, len(list))

	for i, x := range list {
		elem[i] = fmt.Sprint(x)
	}

	return strings.Join(elem, sep)
}

// defaultValue returns v, or def if v is nil or an empty string.
func defaultValue(def, v any) any {
	if v == nil || v == "" {
		return def
	}

	return v
}
