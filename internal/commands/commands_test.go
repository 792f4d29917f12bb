// ABOUTME: Unit tests for the cobra commands run in-process
// ABOUTME: Builds fake mods directories and checks rendered output and errors
package commands

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/modscmd/modscmd/internal/config"
	"github.com/modscmd/modscmd/internal/modscan"
	"github.com/modscmd/modscmd/internal/modscan/jartest"
)

// setupModsDir creates an isolated home and a mods directory with a few jars.
func setupModsDir(t *testing.T) string {
	t.Helper()

	t.Setenv(config.HomeEnv, filepath.Join(t.TempDir(), ".modscmd"))
	t.Setenv(config.ModsDirEnv, "")
	modsDir := filepath.Join(t.TempDir(), "instance", "mods")

	mods := map[string]jartest.Mod{
		"fabric-api.jar": {
			ID: "fabric-api", Name: "Fabric API", Version: "0.92.0",
			Nested: []jartest.Mod{
				{ID: "fabric-api-base", Name: "Fabric API Base", Version: "0.4.31",
					Custom: map[string]any{"fabric-api:module-lifecycle": "stable"}},
				{ID: "fabric-networking-api-v1", Name: "Fabric Networking API (v1)", Version: "3.0.1",
					Custom: map[string]any{"fabric-api:module-lifecycle": "stable"}},
			},
		},
		"sodium.jar": {ID: "sodium", Name: "Sodium", Version: "0.5.3", Description: "Modern rendering engine", Environment: "client"},
		"lithium.jar": {ID: "lithium", Name: "Lithium", Version: "0.11.2", Authors: []string{"jellysquid3"}},
		"iris.jar": {
			ID: "iris", Name: "Iris", Version: "1.6.11", Environment: "client",
			Contact: map[string]string{"homepage": "https://irisshaders.dev"},
		},
	}
	for file, m := range mods {
		if err := jartest.Write(filepath.Join(modsDir, file), m); err != nil {
			t.Fatal(err)
		}
	}
	return modsDir
}

// runCommand executes the root command with fresh flag values.
func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	configPath, modsDirFlag, verbose, pageSizeFlag, envFlag = "", "", false, 0, ""
	listAll, listFormat = false, ""
	infoTree, infoFormat = false, ""
	searchFormat, dumpOutput, shellWatch = "", "", false
	settings.cfg = nil

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetIn(strings.NewReader(""))
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestList(t *testing.T) {
	modsDir := setupModsDir(t)

	out, err := runCommand(t, "--mods-dir", modsDir, "list")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}

	for _, want := range []string{"Loaded Mods (6 total, 4 top-level)", "Fabric API (fabric-api)", "(2 child mods)", "Sodium (sodium) v0.5.3"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Fabric API Base") {
		t.Errorf("list should not show child mods without --all:\n%s", out)
	}
}

func TestList_PagesWithHints(t *testing.T) {
	modsDir := setupModsDir(t)

	out, err := runCommand(t, "--mods-dir", modsDir, "--page-size", "2", "list", "--all", "2")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	for _, want := range []string{"Page 2/3", "modscmd list 1 --all --page-size 2", "modscmd list 3 --all --page-size 2"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestList_OutOfRange(t *testing.T) {
	modsDir := setupModsDir(t)

	out, err := runCommand(t, "--mods-dir", modsDir, "list", "9")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if !strings.Contains(out, "Page 9 is out of range! There are only 1 pages of results.") {
		t.Errorf("expected out of range message:\n%s", out)
	}
}

func TestList_InvalidPage(t *testing.T) {
	modsDir := setupModsDir(t)

	if _, err := runCommand(t, "--mods-dir", modsDir, "list", "0"); err == nil {
		t.Error("expected error for page 0")
	}
	if _, err := runCommand(t, "--mods-dir", modsDir, "list", "two"); err == nil {
		t.Error("expected error for non-numeric page")
	}
}

func TestSearch_TrailingPage(t *testing.T) {
	modsDir := setupModsDir(t)

	out, err := runCommand(t, "--mods-dir", modsDir, "--page-size", "1", "search", "Fabric", "API", "2")
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	for _, want := range []string{"results for query: fabric api", "Page 2/", "modscmd search fabric api 1 --page-size 1"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestSearch_NoResults(t *testing.T) {
	modsDir := setupModsDir(t)

	out, err := runCommand(t, "--mods-dir", modsDir, "search", "optifine")
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if !strings.Contains(out, "No results for query 'optifine'.") {
		t.Errorf("expected no results message:\n%s", out)
	}
}

func TestSearch_ClientSided(t *testing.T) {
	modsDir := setupModsDir(t)

	out, err := runCommand(t, "--mods-dir", modsDir, "search", "client", "sided", "--format", "json")
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if !strings.Contains(out, `"id": "iris"`) || !strings.Contains(out, `"id": "sodium"`) {
		t.Errorf("expected client mods:\n%s", out)
	}
	if strings.Contains(out, `"id": "lithium"`) {
		t.Errorf("universal mods should be filtered out:\n%s", out)
	}
}

func TestSearch_InvalidFormat(t *testing.T) {
	modsDir := setupModsDir(t)

	_, err := runCommand(t, "--mods-dir", modsDir, "search", "sodium", "--format", "xml")
	if err == nil || !strings.Contains(err.Error(), "invalid --format") {
		t.Errorf("expected format error, got %v", err)
	}
}

func TestInfo(t *testing.T) {
	modsDir := setupModsDir(t)

	out, err := runCommand(t, "--mods-dir", modsDir, "info", "iris")
	if err != nil {
		t.Fatalf("info failed: %v", err)
	}
	for _, want := range []string{"Mod ID: iris", "Version: 1.6.11", "Only runs on the client.", "https://irisshaders.dev"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestInfo_Children(t *testing.T) {
	modsDir := setupModsDir(t)

	out, err := runCommand(t, "--mods-dir", modsDir, "info", "fabric-api", "children")
	if err != nil {
		t.Fatalf("info children failed: %v", err)
	}
	if !strings.Contains(out, "Fabric API child mods (2)") || !strings.Contains(out, "fabric-networking-api-v1") {
		t.Errorf("expected child listing:\n%s", out)
	}

	if _, err := runCommand(t, "--mods-dir", modsDir, "info", "fabric-api", "parents"); err == nil {
		t.Error("expected error for unknown info argument")
	}
}

func TestInfo_NotFound(t *testing.T) {
	modsDir := setupModsDir(t)

	out, err := runCommand(t, "--mods-dir", modsDir, "info", "optifine")
	if err != nil {
		t.Fatalf("info failed: %v", err)
	}
	if !strings.Contains(out, "No mod with id 'optifine'") {
		t.Errorf("expected not found message:\n%s", out)
	}
}

func TestMissingModsDir(t *testing.T) {
	t.Setenv(config.HomeEnv, filepath.Join(t.TempDir(), ".modscmd"))
	missing := filepath.Join(t.TempDir(), "nope")

	_, err := runCommand(t, "--mods-dir", missing, "list")

	var notFound *modscan.ModsDirNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected ModsDirNotFoundError, got %v", err)
	}
	if notFound.Source != "--mods-dir" {
		t.Errorf("Source = %q, want --mods-dir", notFound.Source)
	}
}

func TestInvalidEnvFlag(t *testing.T) {
	modsDir := setupModsDir(t)

	if _, err := runCommand(t, "--mods-dir", modsDir, "--env", "nether", "list"); err == nil {
		t.Error("expected error for invalid --env")
	}
}

func TestDump(t *testing.T) {
	modsDir := setupModsDir(t)

	out, err := runCommand(t, "--mods-dir", modsDir, "dump")
	if err != nil {
		t.Fatalf("dump failed: %v", err)
	}

	path := filepath.Join(filepath.Dir(modsDir), "installed-mods.yml")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("dump file not written: %v", err)
	}
	if !strings.Contains(string(data), "mod-id: fabric-api-base") {
		t.Errorf("dump missing nested mod:\n%s", data)
	}
	if !strings.Contains(out, "Saved list of 6 installed mods") {
		t.Errorf("expected confirmation:\n%s", out)
	}
}

func TestDump_Stdout(t *testing.T) {
	modsDir := setupModsDir(t)

	out, err := runCommand(t, "--mods-dir", modsDir, "dump", "--output", "-")
	if err != nil {
		t.Fatalf("dump failed: %v", err)
	}
	if !strings.HasPrefix(out, "generated-by: modscmd") {
		t.Errorf("expected YAML document on stdout:\n%s", out)
	}
}

func TestConfigShow(t *testing.T) {
	modsDir := setupModsDir(t)

	out, err := runCommand(t, "--mods-dir", modsDir, "config", "show")
	if err != nil {
		t.Fatalf("config show failed: %v", err)
	}
	for _, want := range []string{"page_size: 8", "color_scheme: default", "hidden_mod_ids: none", modsDir, "(--mods-dir)"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestHiddenModIDs(t *testing.T) {
	modsDir := setupModsDir(t)
	t.Setenv("MODSCMD_HIDDEN_MOD_IDS", "lithium")

	out, err := runCommand(t, "--mods-dir", modsDir, "list")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if strings.Contains(out, "Lithium") {
		t.Errorf("hidden mod listed:\n%s", out)
	}
}

func TestModIDCompletion(t *testing.T) {
	modsDir := setupModsDir(t)
	if _, err := runCommand(t, "--mods-dir", modsDir, "config", "show"); err != nil {
		t.Fatal(err)
	}

	completions, directive := modIDCompletionFunc(infoCmd, []string{}, "fabric-")
	if directive != cobra.ShellCompDirectiveNoFileComp {
		t.Errorf("expected NoFileComp directive, got %v", directive)
	}
	want := []string{
		"fabric-api\tFabric API",
		"fabric-api-base\tFabric API Base",
		"fabric-networking-api-v1\tFabric Networking API (v1)",
	}
	if !slices.Equal(completions, want) {
		t.Fatalf("expected %v, got %v", want, completions)
	}

	narrow, _ := modIDCompletionFunc(infoCmd, []string{}, "fabric-api-")
	if len(narrow) != 1 || narrow[0] != "fabric-api-base\tFabric API Base" {
		t.Errorf("expected only fabric-api-base, got %v", narrow)
	}

	next, _ := modIDCompletionFunc(infoCmd, []string{"fabric-api"}, "")
	if len(next) != 1 || next[0] != "children" {
		t.Errorf("expected 'children' after the id, got %v", next)
	}
}
