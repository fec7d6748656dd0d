package main

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"broadcast-scheduler/internal/platform/config"
	"broadcast-scheduler/internal/platform/logger"
	"broadcast-scheduler/internal/schedule"

	"github.com/urfave/cli"
)

var reportFlags = []cli.Flag{
	cli.StringFlag{
		Name:  "date, d",
		Usage: "first day of the report as YYYY-MM-DD (default: today)",
	},
	cli.IntFlag{
		Name:  "days, n",
		Value: 1,
		Usage: "number of consecutive days to report",
	},
	cli.StringFlag{
		Name:   "tz",
		Value:  "Local",
		Usage:  "IANA time zone used as local time",
		EnvVar: "SCHEDULE_TIMEZONE",
	},
	cli.BoolFlag{
		Name:  "no-fill",
		Usage: "skip filling gaps with music before printing",
	},
	cli.BoolTFlag{
		Name:  "seed",
		Usage: "seed the first day with the sample programme (default: true)",
	},
	cli.StringFlag{
		Name:   "log-level",
		Value:  "warn",
		Usage:  "log level (debug, info, warn, error)",
		EnvVar: "LOG_LEVEL",
	},
}

func run(args []string, out, errOut io.Writer) error {
	_ = config.Load()

	app := cli.NewApp()
	app.Name = "schedule-report"
	app.HelpName = "schedule-report"
	app.Usage = "print the daily programming schedule"
	app.UsageText = "schedule-report [--date YYYY-MM-DD] [--days N] [--no-fill]"
	app.Writer = out
	app.ErrWriter = errOut
	app.Flags = reportFlags
	app.Action = func(ctx *cli.Context) error {
		return report(ctx, out)
	}
	return app.Run(args)
}

func report(ctx *cli.Context, out io.Writer) error {
	log := logger.NewWithWriter(ctx.App.ErrWriter, ctx.String("log-level"), "text")

	loc, err := config.LoadLocation(ctx.String("tz"))
	if err != nil {
		return err
	}
	svc := schedule.NewService(schedule.NewInMemoryRepository(), schedule.Options{
		Location:       loc,
		FillerTitle:    config.GetEnv("FILLER_TITLE", schedule.DefaultFillerTitle),
		FillerPlaylist: config.GetEnv("FILLER_PLAYLIST", ""),
		MaxSpanDays:    config.GetEnvInt("MAX_SPAN_DAYS", schedule.DefaultMaxSpanDays),
	})

	start := svc.DateOf(time.Now())
	if s := ctx.String("date"); s != "" {
		if start, err = schedule.ParseDate(s); err != nil {
			return err
		}
	}
	days := ctx.Int("days")
	if days <= 0 || days > svc.MaxSpanDays() {
		return fmt.Errorf("--days must be between 1 and %d, got %d", svc.MaxSpanDays(), days)
	}

	if ctx.BoolT("seed") {
		if err := seedSampleDay(svc, start); err != nil {
			return err
		}
		log.Info("sample day seeded", slog.String("date", start.String()))
	}
	if !ctx.Bool("no-fill") {
		created := svc.EnsureCoverage(start, days)
		log.Info("gaps filled", slog.Int("created", created))
	}

	for i, day := range svc.GetWeek(start, days) {
		if i > 0 {
			fmt.Fprintln(out)
		}
		fmt.Fprint(out, schedule.BuildDayReport(day))
		occupied, length := svc.Coverage(day.Date)
		fmt.Fprintf(out, "Covered: %s of %s\n", occupied, length)
	}
	return nil
}

// seedSampleDay adds the morning reportage and the lunchtime live session.
func seedSampleDay(svc *schedule.Service, date schedule.Date) error {
	at := func(hour int) time.Time {
		return time.Date(date.Year, date.Month, date.Day, hour, 0, 0, 0, svc.Location())
	}

	sample := []schedule.Item{
		schedule.NewReportage("Morning Reportage", at(9), at(10), "Alice"),
		schedule.NewLiveSession("Lunch Live", at(12), at(14), 2, true),
	}
	for _, it := range sample {
		if _, err := svc.AddContent(date, it); err != nil {
			return fmt.Errorf("seed %q: %w", it.Title, err)
		}
	}
	return nil
}
