package cli

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mccahan/geojson-clipping/internal/buildinfo"
	"github.com/mccahan/geojson-clipping/internal/domain"
)

func newOperationCmd(spec domain.OperationSpec, global *globalOptions, deps Deps) *cobra.Command {
	var subject string

	c := &cobra.Command{
		Use:     spec.Op.String() + " [geojson...]",
		Short:   spec.Short,
		Version: buildinfo.String(),
		Args:    cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req := domain.InvocationRequest{
				Operation:   spec.Op,
				Positionals: append([]string(nil), args...),
				Options: domain.Options{
					OutputPath: normalizePath(global.output),
					Subject:    normalizeSubject(subject),
					Quiet:      global.quiet,
				},
			}
			return newHandler(deps).Handle(cmd.Context(), req)
		},
	}

	if spec.AcceptsSubject {
		c.Flags().StringVarP(&subject, "subject", "s", "", "GeoJSON `file or literal` to subtract from")
	}
	return c
}

func normalizePath(p string) string {
	if blank(p) {
		return ""
	}
	return filepath.Clean(p)
}

// normalizeSubject cleans a subject path; inline GeoJSON is kept verbatim.
func normalizeSubject(s string) string {
	if blank(s) || domain.IsLiteral(s) {
		return s
	}
	return filepath.Clean(s)
}
