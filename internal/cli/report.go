package cli

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mccahan/geojson-clipping/internal/domain"
)

const exitFailure = 1

// reportFailure prints err and returns the exit status. Usage and precondition errors
// always come with the command's usage. Other errors get the full chain when verbose,
// and a single line otherwise.
func reportFailure(w io.Writer, th Theme, cmd *cobra.Command, err error, verbose bool) int {
	if domain.IsUserError(err) {
		_, _ = io.WriteString(w, cmd.UsageString())
		writeLine(w, "")
		writeLine(w, th.Error.Render("Error: "+domain.Message(err)))
		return exitFailure
	}

	if verbose {
		writeVerbose(w, th, err)
	} else {
		writeLine(w, th.Error.Render("Error: "+conciseMessage(err)))
	}
	return exitFailure
}

func writeVerbose(w io.Writer, th Theme, err error) {
	writeLine(w, th.Error.Render("Error: "+err.Error()))

	var oe *domain.OpError
	if errors.As(err, &oe) {
		writeLine(w, th.Detail.Render(fmt.Sprintf("  kind: %s", oe.Kind)))
		writeLine(w, th.Detail.Render(fmt.Sprintf("  op:   %s", oe.Op)))
		if oe.Path != "" {
			writeLine(w, th.Detail.Render(fmt.Sprintf("  path: %s", oe.Path)))
		}
	}
	for cause := errors.Unwrap(err); cause != nil; cause = errors.Unwrap(cause) {
		writeLine(w, th.Detail.Render(fmt.Sprintf("  caused by: %s", cause)))
	}
}

var reLine = regexp.MustCompile(`(?i)\bline\s+(\d+)\b`)

// conciseMessage is the one-line form of err. YAML syntax problems in the config
// file are reduced to the file name and line.
func conciseMessage(err error) string {
	var oe *domain.OpError
	if errors.As(err, &oe) && oe.Kind == domain.KindInvalidConfig && looksLikeYAMLProblem(err.Error()) {
		base := "config"
		if strings.TrimSpace(oe.Path) != "" {
			base = filepath.Base(oe.Path)
		}
		if m := reLine.FindStringSubmatch(err.Error()); len(m) == 2 {
			return "invalid YAML at " + base + " line " + m[1]
		}
		return "invalid YAML at " + base
	}
	return domain.Message(err)
}

func looksLikeYAMLProblem(s string) bool {
	ls := strings.ToLower(s)
	return strings.Contains(ls, "yaml:") || strings.Contains(ls, "did not find expected") || strings.Contains(ls, "cannot unmarshal")
}
