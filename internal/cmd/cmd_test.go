package cmd

import (
	"testing"
)

func TestRootCommand(t *testing.T) {
	if rootCmd == nil {
		t.Fatal("rootCmd is nil")
	}
	if rootCmd.Use != "papyru2" {
		t.Errorf("rootCmd.Use = %q, want %q", rootCmd.Use, "papyru2")
	}

	// Check for expected subcommands (compare by Name(), not Use which includes args)
	expectedCmds := []string{"new", "rename", "save", "list", "info", "logs"}
	cmdMap := make(map[string]bool)
	for _, cmd := range rootCmd.Commands() {
		cmdMap[cmd.Name()] = true
	}

	for _, expected := range expectedCmds {
		if !cmdMap[expected] {
			t.Errorf("expected subcommand %q not found", expected)
		}
	}
}

func TestLayoutFlagsAreMutuallyExclusive(t *testing.T) {
	rootCmd.SetArgs([]string{"info", "--portable", "--installed"})
	defer rootCmd.SetArgs(nil)

	if err := rootCmd.Execute(); err == nil {
		t.Error("expected an error combining --portable and --installed")
	}
}
