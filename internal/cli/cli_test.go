package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/banaszakw/dir-maker/internal/config"
	"github.com/banaszakw/dir-maker/internal/model"
	"github.com/banaszakw/dir-maker/internal/order"
	"github.com/banaszakw/dir-maker/internal/validate"
)

// runCLI executes the root command with the given stdin and arguments in a
// fresh home directory and returns what was written to stdout and stderr.
func runCLI(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	t.Cleanup(closeApp)

	cmd := NewRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

// newHome points HOME at a temp directory and returns it.
func newHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	return home
}

func requireExitCode(t *testing.T, err error, code model.ExitCode) {
	t.Helper()
	var cliErr *model.CLIError
	require.ErrorAs(t, err, &cliErr)
	assert.Equal(t, code, cliErr.Code)
}

func TestMake_FromStdin(t *testing.T) {
	home := newHome(t)
	base := t.TempDir()

	stdout, _, err := runCLI(t, "A1 first\n\nB2 second\n", "make", "--base", base, "--brand", "Audi")
	require.NoError(t, err)

	assert.Contains(t, stdout, "Created "+filepath.Join(base, "A1_Audi"))
	assert.Contains(t, stdout, order.StatusDone)
	for _, p := range []string{"A1_Audi/01_poczatek", "B2_Audi/rozliczenia_dla_klienta", "B2_Audi/90_koniec"} {
		info, err := os.Stat(filepath.Join(base, p))
		require.NoError(t, err, p)
		assert.True(t, info.IsDir())
	}

	settings, err := os.ReadFile(config.NewPaths(home).ConfigFile)
	require.NoError(t, err)
	assert.Contains(t, string(settings), base)

	_, err = os.Stat(config.NewPaths(home).LogFile)
	assert.NoError(t, err, "log file is created at startup")
}

func TestMake_InputFileAndToggles(t *testing.T) {
	newHome(t)
	base := t.TempDir()
	input := filepath.Join(t.TempDir(), "ids.txt")
	require.NoError(t, os.WriteFile(input, []byte("ZL_9 text"), 0o644))

	_, _, err := runCLI(t, "", "make", "--base", base, "--brand", model.NoBrand,
		"--input", input, "--secondary", "--no-pdf")
	require.NoError(t, err)

	for _, p := range []string{
		"ZL_9/02_przygotowanie/02_sdlxliff_trans",
		"ZL_9/02_przygotowanie/01_DE.pdf",
		"ZL_9/rozliczenia_dla_klienta/brak_pliku_PDF.txt",
	} {
		_, err := os.Stat(filepath.Join(base, p))
		assert.NoError(t, err, p)
	}
}

func TestMake_ValidationFailure(t *testing.T) {
	newHome(t)
	base := t.TempDir()

	_, stderr, err := runCLI(t, "---", "make", "--base", filepath.Join(base, "missing"))
	requireExitCode(t, err, model.ExitValidationFailed)

	assert.Contains(t, stderr, validate.MsgInvalidDirectory)
	assert.Contains(t, stderr, validate.MsgBrandNotSelected)
	assert.Contains(t, stderr, validate.MsgEmptyInput)

	entries, err := os.ReadDir(base)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestMake_DryRun(t *testing.T) {
	home := newHome(t)
	base := t.TempDir()

	stdout, _, err := runCLI(t, "K1", "make", "--base", base, "--brand", "VW66", "--dry-run", "--no-pdf")
	require.NoError(t, err)

	assert.Contains(t, stdout, "Would create "+filepath.Join(base, "K1_VW66"))
	assert.Contains(t, stdout, "rozliczenia_dla_klienta/brak_pliku_PDF.txt")

	entries, err := os.ReadDir(base)
	require.NoError(t, err)
	assert.Empty(t, entries, "dry run writes nothing")

	_, err = os.Stat(config.NewPaths(home).ConfigFile)
	assert.True(t, os.IsNotExist(err), "dry run does not store the base path")
}

func TestMake_JSONOutput(t *testing.T) {
	newHome(t)
	base := t.TempDir()

	stdout, _, err := runCLI(t, "A1\nB2", "--json", "make", "--base", base, "--brand", "Seat")
	require.NoError(t, err)

	var result makeResult
	require.NoError(t, json.Unmarshal([]byte(stdout), &result))
	assert.True(t, result.Success)
	assert.Equal(t, order.StatusDone, result.Status)
	assert.Empty(t, result.Errors)
	require.Len(t, result.Folders, 2)
	assert.Equal(t, "B2_Seat", result.Folders[1].Name)
}

func TestMake_JSONValidationFailure(t *testing.T) {
	newHome(t)

	stdout, stderr, err := runCLI(t, "", "--json", "make", "--brand", "Audi")
	requireExitCode(t, err, model.ExitValidationFailed)
	assert.Empty(t, stderr, "JSON mode does not print colored messages")

	var result makeResult
	require.NoError(t, json.Unmarshal([]byte(stdout), &result))
	assert.False(t, result.Success)
	assert.Equal(t, []string{validate.MsgEmptyInput}, result.Errors)
	assert.Empty(t, result.Folders)
}

// TestMake_Precedence checks flag > environment > order file.
func TestMake_Precedence(t *testing.T) {
	newHome(t)
	base := t.TempDir()
	orderFile := filepath.Join(t.TempDir(), "order.jsonc")
	content := `{
  // written by hand
  "basePath": "` + filepath.ToSlash(base) + `",
  "brand": "Skoda",
  "input": "A1 from file",
}`
	require.NoError(t, os.WriteFile(orderFile, []byte(content), 0o644))

	t.Run("order file", func(t *testing.T) {
		_, _, err := runCLI(t, "", "make", "--order", orderFile)
		require.NoError(t, err)
		assert.DirExists(t, filepath.Join(base, "A1_Skoda"))
	})

	t.Run("environment beats file", func(t *testing.T) {
		t.Setenv("DIRMAKER_BRAND", "Seat")
		_, _, err := runCLI(t, "", "make", "--order", orderFile)
		require.NoError(t, err)
		assert.DirExists(t, filepath.Join(base, "A1_Seat"))
	})

	t.Run("flag beats environment", func(t *testing.T) {
		t.Setenv("DIRMAKER_BRAND", "Seat")
		_, _, err := runCLI(t, "", "make", "--order", orderFile, "--brand", "VW12")
		require.NoError(t, err)
		assert.DirExists(t, filepath.Join(base, "A1_VW12"))
	})

	t.Run("input flag replaces file input", func(t *testing.T) {
		_, _, err := runCLI(t, "Q7 from stdin", "make", "--order", orderFile, "--input", "-")
		require.NoError(t, err)
		assert.DirExists(t, filepath.Join(base, "Q7_Skoda"))
	})
}

func TestMake_MissingOrderFile(t *testing.T) {
	newHome(t)

	_, _, err := runCLI(t, "", "make", "--order", filepath.Join(t.TempDir(), "nope.jsonc"))
	requireExitCode(t, err, model.ExitOrderFileError)
}

// TestMake_UsesStoredBase verifies that the base path saved by one run is
// the default of the next.
func TestMake_UsesStoredBase(t *testing.T) {
	newHome(t)
	base := t.TempDir()

	_, _, err := runCLI(t, "", "config", "set-base", base)
	require.NoError(t, err)

	_, _, err = runCLI(t, "M1", "make", "--brand", "Audi")
	require.NoError(t, err)
	assert.DirExists(t, filepath.Join(base, "M1_Audi"))
}

func TestMake_FilesystemError(t *testing.T) {
	newHome(t)
	base := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(base, "A1_Audi"), []byte("x"), 0o644))

	_, _, err := runCLI(t, "A1", "make", "--base", base, "--brand", "Audi")
	requireExitCode(t, err, model.ExitFilesystemError)
}

// TestMake_SettingsSaveError puts a directory where the settings file
// belongs. The run fails with the config exit code before any folder
// is created.
func TestMake_SettingsSaveError(t *testing.T) {
	home := newHome(t)
	base := t.TempDir()
	require.NoError(t, os.MkdirAll(config.NewPaths(home).ConfigFile, 0o755))

	_, _, err := runCLI(t, "A1", "make", "--base", base, "--brand", "Audi")
	requireExitCode(t, err, model.ExitConfigError)
	assert.ErrorIs(t, err, order.ErrSettingsNotSaved)

	entries, err := os.ReadDir(base)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestMake_MalformedOrderFile(t *testing.T) {
	newHome(t)
	orderFile := filepath.Join(t.TempDir(), "bad.jsonc")
	require.NoError(t, os.WriteFile(orderFile, []byte("{ nope"), 0o644))

	_, _, err := runCLI(t, "", "make", "--order", orderFile)
	requireExitCode(t, err, model.ExitOrderFileError)
}

func TestTemplates_YAML(t *testing.T) {
	newHome(t)

	stdout, _, err := runCLI(t, "", "templates")
	require.NoError(t, err)

	var doc struct {
		Templates []templateView `yaml:"templates"`
	}
	require.NoError(t, yaml.Unmarshal([]byte(stdout), &doc))
	require.Len(t, doc.Templates, 4)
	assert.Equal(t, "basic", doc.Templates[0].Name)
	assert.Equal(t, model.KindDirectory, doc.Templates[0].Kind)
	assert.Equal(t, []string{"01_poczatek", "rozliczenia_dla_klienta", "90_koniec"}, doc.Templates[0].Paths)
	assert.Equal(t, model.KindFile, doc.Templates[3].Kind)
}

func TestTemplates_JSON(t *testing.T) {
	newHome(t)

	stdout, _, err := runCLI(t, "", "templates", "--json")
	require.NoError(t, err)

	var doc struct {
		Templates []templateView `json:"templates"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &doc))
	require.Len(t, doc.Templates, 4)
	assert.Equal(t, []string{"rozliczenia_dla_klienta/brak_pliku_PDF.txt"}, doc.Templates[3].Paths)
}

func TestConfigShow(t *testing.T) {
	home := newHome(t)

	stdout, _, err := runCLI(t, "", "--json", "config", "show")
	require.NoError(t, err)

	var got map[string]string
	require.NoError(t, json.Unmarshal([]byte(stdout), &got))
	assert.Equal(t, config.NewPaths(home).ConfigFile, got["settingsFile"])
	assert.Equal(t, home, got["basePath"], "home directory is the default base")
	assert.Equal(t, home, got["defaultBase"])
}

func TestConfigShow_Text(t *testing.T) {
	home := newHome(t)
	base := t.TempDir()

	_, _, err := runCLI(t, "", "config", "set-base", base)
	require.NoError(t, err)

	stdout, _, err := runCLI(t, "", "config", "show")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Base path:     "+base)
	assert.Contains(t, stdout, "Default base:  "+home)
}

func TestConfigSetBase_Invalid(t *testing.T) {
	home := newHome(t)

	_, _, err := runCLI(t, "", "config", "set-base", filepath.Join(home, "missing"))
	requireExitCode(t, err, model.ExitValidationFailed)

	_, err = os.Stat(config.NewPaths(home).ConfigFile)
	assert.True(t, os.IsNotExist(err))
}

func TestCompleteBrand(t *testing.T) {
	tests := []struct {
		prefix string
		want   []string
	}{
		{"", model.KnownBrands},
		{"vw", []string{"VW11", "VW12", "VW51", "VW66"}},
		{"S", []string{"Seat", "Skoda"}},
		{"x", nil},
	}

	for _, tt := range tests {
		t.Run(tt.prefix, func(t *testing.T) {
			got, _ := completeBrand(nil, nil, tt.prefix)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConsoleReporter(t *testing.T) {
	var stderr bytes.Buffer

	r := newConsoleReporter(&stderr, false)
	assert.Equal(t, []string{}, r.Errors())
	r.Error(validate.MsgEmptyInput)
	r.Status(order.StatusDone)

	assert.Contains(t, stderr.String(), validate.MsgEmptyInput)
	assert.Equal(t, []string{validate.MsgEmptyInput}, r.Errors())
	assert.Equal(t, order.StatusDone, r.status)

	stderr.Reset()
	quiet := newConsoleReporter(&stderr, true)
	quiet.Error(validate.MsgBrandNotSelected)
	assert.Empty(t, stderr.String())
	assert.Equal(t, []string{validate.MsgBrandNotSelected}, quiet.Errors())
}
