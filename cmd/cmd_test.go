package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// execute runs the root command with args and returns its output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		resetFlags(rootCmd)
	})
	err := rootCmd.Execute()
	return out.String(), err
}

// resetFlags restores every flag so tests do not leak values.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.PersistentFlags().VisitAll(reset)
	c.Flags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func writeBank(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bank.csv")
	data := "id,round,prompt,qtype,option_1,option_2,correct\n" +
		"1,Animals,Octopuses have three hearts.,tf,True,False,1\n" +
		"2,Animals,Cats are reptiles.,tf,True,False,2\n" +
		"3,History,Which came first?,either,Rome,Carthage,Carthage\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.HasPrefix(out, "calibrate ") {
		t.Errorf("output = %q", out)
	}
}

func TestCheck(t *testing.T) {
	t.Chdir(t.TempDir())
	bank := writeBank(t)

	out, err := execute(t, "check", "--bank", bank, "--size", "5")
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	for _, want := range []string{"3 questions OK", "Animals", "History", "shortened to 3"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestCheckUnknownCategory(t *testing.T) {
	t.Chdir(t.TempDir())
	bank := writeBank(t)

	out, err := execute(t, "check", "--bank", bank, "--category", "Sport")
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if !strings.Contains(out, `no questions in category "Sport"`) {
		t.Errorf("output = %s", out)
	}
}

func TestCheckRejectsBadBank(t *testing.T) {
	t.Chdir(t.TempDir())
	path := filepath.Join(t.TempDir(), "bad.csv")
	if err := os.WriteFile(path, []byte("id,prompt\n1,Hi\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := execute(t, "check", "--bank", path)
	if err == nil || !strings.Contains(err.Error(), "missing required columns") {
		t.Errorf("err = %v, want missing columns", err)
	}
}
