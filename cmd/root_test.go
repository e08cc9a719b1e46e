package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

func TestConfirm(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{name: "exact yes confirms", input: "yes\n", want: true},
		{name: "yes with whitespace confirms", input: "  yes  \n", want: true},
		{name: "uppercase is rejected", input: "YES\n", want: false},
		{name: "y alone is rejected", input: "y\n", want: false},
		{name: "empty line is rejected", input: "\n", want: false},
		{name: "closed input is rejected", input: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cmd := &cobra.Command{}
			cmd.SetIn(strings.NewReader(tt.input))
			cmd.SetOut(&bytes.Buffer{})

			if got := confirm(cmd, "proceed? "); got != tt.want {
				t.Errorf("confirm(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestOnOff(t *testing.T) {
	t.Parallel()
	if onOff(true) != "on" || onOff(false) != "off" {
		t.Error("onOff renders wrong status words")
	}
}

func TestVersionCmd(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	cmd := newVersionCmd()
	cmd.SetOut(&out)
	cmd.Run(cmd, nil)

	if !strings.Contains(out.String(), Version) {
		t.Errorf("version output %q missing %q", out.String(), Version)
	}
}
