// ABOUTME: TestEnv provides isolated test environments for acceptance tests
// ABOUTME: Creates temp mods directories of fake jars and runs the CLI binary with environment overrides
package helpers

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/onsi/gomega/gexec"

	"github.com/modscmd/modscmd/internal/modscan/jartest"
)

// TestEnv represents an isolated test environment
type TestEnv struct {
	TempDir    string // Root temp directory
	HomeDir    string // Fake ~/.modscmd
	ModsDir    string // Fake instance mods directory
	ConfigFile string // Fake ~/.modscmd/config.yaml
	Binary     string // Path to modscmd binary
}

// Result captures the output of one CLI invocation.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// NewTestEnv creates a new isolated test environment with an empty mods directory
func NewTestEnv(binary string) *TestEnv {
	tempDir := GinkgoT().TempDir()

	env := &TestEnv{
		TempDir:    tempDir,
		HomeDir:    filepath.Join(tempDir, ".modscmd"),
		ModsDir:    filepath.Join(tempDir, "instance", "mods"),
		ConfigFile: filepath.Join(tempDir, ".modscmd", "config.yaml"),
		Binary:     binary,
	}

	Expect(os.MkdirAll(env.HomeDir, 0755)).To(Succeed())
	Expect(os.MkdirAll(env.ModsDir, 0755)).To(Succeed())

	return env
}

// Run executes the CLI with the given arguments
func (e *TestEnv) Run(args ...string) *Result {
	return e.RunWithInput("", args...)
}

// RunWithInput executes the CLI with stdin input
func (e *TestEnv) RunWithInput(input string, args ...string) *Result {
	cmd := exec.Command(e.Binary, args...)
	cmd.Dir = e.TempDir
	cmd.Env = append(os.Environ(),
		"MODSCMD_HOME="+e.HomeDir,
		"MODSCMD_MODS_DIR="+e.ModsDir,
		"NO_COLOR=1",
	)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if input != "" {
		cmd.Stdin = strings.NewReader(input)
	}

	err := cmd.Run()

	exitCode := 0
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		} else {
			exitCode = 1
		}
	}

	return &Result{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		ExitCode: exitCode,
	}
}

// AddMod writes a fake jar into the mods directory
func (e *TestEnv) AddMod(file string, m jartest.Mod) string {
	path := filepath.Join(e.ModsDir, file)
	Expect(jartest.Write(path, m)).To(Succeed())
	return path
}

// AddFile writes raw bytes into the mods directory
func (e *TestEnv) AddFile(file string, data []byte) {
	Expect(os.WriteFile(filepath.Join(e.ModsDir, file), data, 0644)).To(Succeed())
}

// WriteConfig replaces the config file with the given YAML
func (e *TestEnv) WriteConfig(yaml string) {
	Expect(os.WriteFile(e.ConfigFile, []byte(yaml), 0644)).To(Succeed())
}

// ReadFile returns the contents of a path relative to the temp dir
func (e *TestEnv) ReadFile(rel string) string {
	data, err := os.ReadFile(filepath.Join(e.TempDir, rel))
	Expect(err).NotTo(HaveOccurred())
	return string(data)
}

// AddStandardMods installs a small, realistic mod set: Fabric API with two
// bundled modules, Sodium, Lithium, Iris and Mod Menu.
func (e *TestEnv) AddStandardMods() {
	module := map[string]any{"fabric-api:module-lifecycle": "stable"}
	e.AddMod("fabric-api-0.92.0.jar", jartest.Mod{
		ID: "fabric-api", Name: "Fabric API", Version: "0.92.0+1.20.1",
		Description: "Core API module providing key hooks and intercompatibility features.",
		Authors:     []string{"FabricMC"},
		Nested: []jartest.Mod{
			{ID: "fabric-api-base", Name: "Fabric API Base", Version: "0.4.31", Custom: module},
			{ID: "fabric-networking-api-v1", Name: "Fabric Networking API (v1)", Version: "3.0.1", Custom: module},
		},
	})
	e.AddMod("sodium-0.5.3.jar", jartest.Mod{
		ID: "sodium", Name: "Sodium", Version: "0.5.3",
		Description: "Sodium is a free and open-source rendering engine replacement for Minecraft.",
		Authors:     []string{"jellysquid3"},
		Environment: "client",
	})
	e.AddMod("lithium-0.11.2.jar", jartest.Mod{
		ID: "lithium", Name: "Lithium", Version: "0.11.2",
		Description: "No-compromises game logic optimization mod.",
		Authors:     []string{"jellysquid3"},
		License:     "LGPL-3.0-only",
	})
	e.AddMod("iris-1.6.11.jar", jartest.Mod{
		ID: "iris", Name: "Iris", Version: "1.6.11",
		Description: "A modern shaders mod for Minecraft intended to be compatible with existing OptiFine shader packs",
		Authors:     []string{"coderbot", "IMS"},
		Environment: "client",
		Contact:     map[string]string{"homepage": "https://irisshaders.dev", "issues": "https://github.com/IrisShaders/Iris/issues"},
	})
	e.AddMod("modmenu-7.2.2.jar", jartest.Mod{
		ID: "modmenu", Name: "Mod Menu", Version: "7.2.2",
		Description: "Adds a mod menu to view the list of mods you have installed.",
		Authors:     []string{"Prospector"},
		Environment: "client",
	})
}

// BuildBinary compiles the modscmd binary for the suite
func BuildBinary() string {
	path, err := gexec.Build("github.com/modscmd/modscmd/cmd/modscmd")
	Expect(err).NotTo(HaveOccurred())
	return path
}
