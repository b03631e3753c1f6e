package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/distribution/reference"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"tasnim.dev/ecr-mirror/internal/api"
	"tasnim.dev/ecr-mirror/internal/model"
	"tasnim.dev/ecr-mirror/internal/tui/theme"
)

type mirrorOutcome struct {
	source  string
	message string
	err     error
}

func NewMirrorCmd() *cobra.Command {
	var flags sourceFlags
	var kind string
	var parallel int

	cmd := &cobra.Command{
		Use:   "mirror <source>...",
		Short: "Request mirroring of one or more images or charts",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mt := model.MirrorType(kind)
			if !mt.Valid() {
				return fmt.Errorf("invalid --type %q (want %s or %s)", kind, model.MirrorTypeImage, model.MirrorTypeChart)
			}
			if parallel < 1 {
				return fmt.Errorf("--parallel must be at least 1")
			}

			rt, err := flags.setup(cmd.Context())
			if err != nil {
				return err
			}
			defer rt.closeLog()
			if rt.cfg.LogFile == "" {
				rt.log.SetOutput(cmd.ErrOrStderr())
			}

			outcomes := requestMirrors(cmd.Context(), rt.source, rt.log, mt, args, parallel)
			return reportMirrors(cmd.OutOrStdout(), outcomes)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&kind, "type", "t", string(model.MirrorTypeImage), "artifact type: image or chart")
	cmd.Flags().IntVar(&parallel, "parallel", 4, "maximum concurrent requests")

	return cmd
}

// requestMirrors submits every source, at most parallel at a time. Outcomes
// keep the order of sources.
func requestMirrors(ctx context.Context, src api.Source, log logrus.FieldLogger, kind model.MirrorType, sources []string, parallel int) []mirrorOutcome {
	outcomes := make([]mirrorOutcome, len(sources))
	var g errgroup.Group
	g.SetLimit(parallel)

	for i, s := range sources {
		g.Go(func() error {
			outcomes[i].source = s
			if kind == model.MirrorTypeImage {
				if _, err := reference.ParseNormalizedNamed(s); err != nil {
					outcomes[i].err = fmt.Errorf("invalid image reference: %w", err)
					return nil
				}
			}
			res, err := src.RequestMirror(ctx, model.MirrorRequest{SourceURL: s, Type: kind})
			if err != nil {
				log.WithError(err).WithField("source", s).Error("mirror request failed")
				outcomes[i].err = err
				return nil
			}
			outcomes[i].message = res.Message
			return nil
		})
	}
	// Failures are recorded per source; the group itself never fails.
	_ = g.Wait()
	return outcomes
}

func reportMirrors(w io.Writer, outcomes []mirrorOutcome) error {
	failed := 0
	for _, o := range outcomes {
		if o.err != nil {
			failed++
			fmt.Fprintf(w, "%s %s: %v\n", theme.ErrorStyle.Render("FAIL"), o.source, o.err)
			continue
		}
		fmt.Fprintf(w, "%s %s: %s\n", theme.SuccessStyle.Render("ok  "), o.source, o.message)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d mirror requests failed", failed, len(outcomes))
	}
	return nil
}
