package cli

import (
	"context"
	"log/slog"
	"slices"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/revtmpl/log"
)

// logLevel configures the logger level as a side effect of parsing via
// encoding.TextUnmarshaler. Kong calls UnmarshalText while parsing the
// --log-level flag, which lets the configured level affect messages
// emitted during parsing itself.
type logLevel string

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *logLevel) UnmarshalText(text []byte) error {
	*l = logLevel(text)
	log.Config(log.WithLevel(log.ParseLevel(string(*l))))

	return nil
}

// logFormat configures the logger format as a side effect of parsing via
// encoding.TextUnmarshaler.
type logFormat string

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *logFormat) UnmarshalText(text []byte) error {
	*f = logFormat(text)
	log.Config(log.WithFormat(log.ParseFormat(string(*f))))

	return nil
}

type logConfig struct {
	Level      logLevel  `default:"info"    enum:"${logLevelEnum}"  help:"Set log level."`
	Format     logFormat `default:"text"    enum:"${logFormatEnum}" help:"Set log format."`
	TimeLayout string    `default:"RFC3339"                         help:"Set timestamp format."`
	Caller     bool      `default:"false"                           help:"Include caller information." negatable:""`
	Pretty     bool      `default:"true"                            help:"Enable colorized output."    negatable:""`
}

func (*logConfig) vars() kong.Vars {
	return kong.Vars{
		"logLevelEnum":  strings.Join(slices.Collect(log.Levels()), ","),
		"logFormatEnum": strings.Join(slices.Collect(log.Formats()), ","),
	}
}

func (*logConfig) group() kong.Group {
	var group kong.Group

	group.Key = "log"
	group.Title = "Logging options"

	return group
}

// start finalizes logger configuration with all parsed values, including
// TimeLayout and Caller which don't use TextUnmarshaler.
func (f *logConfig) start(ctx context.Context) func() {
	log.Config(
		log.WithLevel(log.ParseLevel(string(f.Level))),
		log.WithFormat(log.ParseFormat(string(f.Format))),
		log.WithTimeLayout(timeLayout(f.TimeLayout)),
		log.WithCaller(f.Caller),
		log.WithColor(f.Pretty),
	)

	log.Default().DebugContext(ctx, "logger initialized",
		slog.String("level", string(f.Level)),
		slog.String("format", string(f.Format)),
		slog.String("time", f.TimeLayout),
		slog.Bool("caller", f.Caller),
		slog.Bool("pretty", f.Pretty),
	)

	return func() {}
}

// scan performs an early pass over command-line arguments to apply logger
// configuration before Kong begins parsing. The TextUnmarshaler types
// handle --log-level and --log-format during normal parsing, but this
// pre-scan makes the configuration effective regardless of flag position
// and also catches the boolean flags, which bypass TextUnmarshaler.
func (f *logConfig) scan(args []string) {
	for i := 0; i < len(args); i++ {
		name, value, assigned := strings.Cut(args[i], "=")

		// Non-boolean flags consume the next argument when the value
		// was not assigned with "=".
		next := func() string {
			if assigned {
				return value
			}

			if i+1 < len(args) && len(args[i+1]) > 0 && args[i+1][0] != '-' {
				i++

				return args[i]
			}

			return ""
		}

		switch name {
		case "--log-level":
			_ = f.Level.UnmarshalText([]byte(next()))

		case "--log-format":
			_ = f.Format.UnmarshalText([]byte(next()))

		case "--log-pretty", "--no-log-pretty":
			v := name == "--log-pretty"
			if assigned {
				if b, err := strconv.ParseBool(value); err == nil {
					v = (v == b)
				}
			}

			f.Pretty = v

			log.Config(log.WithColor(v))

		case "--log-caller", "--no-log-caller":
			v := name == "--log-caller"
			if assigned {
				if b, err := strconv.ParseBool(value); err == nil {
					v = (v == b)
				}
			}

			f.Caller = v

			log.Config(log.WithCaller(v))
		}
	}
}

// timeLayout translates the symbolic layout names accepted on the command
// line to time package layouts. Unrecognized values pass through so that
// a literal layout string also works.
func timeLayout(name string) string {
	switch name {
	case "RFC3339":
		return "2006-01-02T15:04:05Z07:00"
	case "RFC3339Nano":
		return "2006-01-02T15:04:05.999999999Z07:00"
	case "Kitchen":
		return "3:04PM"
	case "TimeOnly":
		return "15:04:05"
	case "DateTime":
		return "2006-01-02 15:04:05"
	case "none":
		return ""
	}

	return name
}
