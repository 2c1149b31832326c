package schedule

import (
	"context"
	"io"
	"time"

	"github.com/thomas-vilte/relnotes/internal/config"
	"github.com/thomas-vilte/relnotes/internal/i18n"
	"github.com/thomas-vilte/relnotes/internal/relnotes"
	"github.com/thomas-vilte/relnotes/internal/render"
	"github.com/thomas-vilte/relnotes/internal/ui"
	"github.com/urfave/cli/v3"
)

const flagCount = "count"

type ScheduleCommandFactory struct {
	out io.Writer
	now func() time.Time
}

func NewScheduleCommandFactory(out io.Writer, now func() time.Time) *ScheduleCommandFactory {
	return &ScheduleCommandFactory{out: out, now: now}
}

func (s *ScheduleCommandFactory) CreateCommand(t *i18n.Translations, _ *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "schedule",
		Usage: t.GetMessage("schedule.usage", 0, nil),
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  flagCount,
				Value: 1,
				Usage: t.GetMessage("schedule.count_flag", 0, nil),
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			date := relnotes.NextReleaseDate(s.now())
			n := int(cmd.Int(flagCount))
			for i := 0; i < n; i++ {
				ui.PrintKeyValue(s.out, t.GetMessage("schedule.release", 0, nil), render.DateOf(date).String())
				date = date.Add(relnotes.ReleaseCadence)
			}
			return nil
		},
	}
}
