package app

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"
)

const (
	ImagePNG  = "png"
	ImageJPEG = "jpeg"
)

type ImageFormat string

type Config struct {
	DBPath        string
	SessionID     int64
	OutputFile    string
	Format        ImageFormat
	Size          int
	Theme         ColorTheme
	TimeZone      *time.Location
	MinTimestamp  *time.Time
	MaxTimestamp  *time.Time
	NoAnnotations bool
}

var validImageFormats = map[ImageFormat]struct{}{
	ImagePNG:  {},
	ImageJPEG: {},
}

func NewConfig() *Config {
	return &Config{
		Format:   ImagePNG,
		Size:     defaultPlotSize,
		Theme:    ClassicTheme,
		TimeZone: time.Local,
	}
}

func NewConfigFromCLI() (*Config, error) {
	return NewConfigFromArgs(os.Args[1:])
}

// NewConfigFromArgs parses the command line arguments
func NewConfigFromArgs(args []string) (*Config, error) {
	c := NewConfig()
	fs := flag.NewFlagSet("trackplot", flag.ContinueOnError)
	fs.Usage = func() { printUsage(fs) }

	var imageFormat, theme, timeZone, start, end string
	fs.StringVar(&c.DBPath, "db", "", "Path to the database file")
	fs.Int64Var(&c.SessionID, "s", 1, "Session ID")
	fs.StringVar(&c.OutputFile, "o", "", "Path to the output file, without extension")
	fs.StringVar(&imageFormat, "f", string(ImagePNG), "Output image format. [png, jpeg]")
	fs.IntVar(&c.Size, "size", defaultPlotSize, "Size of the plot area in pixels")
	fs.StringVar(&theme, "theme", string(ClassicTheme), "Altitude color theme. [classic, grayscale, jungle, thermal, marine]")
	fs.StringVar(&timeZone, "tz", "Local", "Time zone of the annotations")
	fs.StringVar(&start, "start", "", "Start of the time range (RFC 3339)")
	fs.StringVar(&end, "end", "", "End of the time range (RFC 3339)")
	fs.BoolVar(&c.NoAnnotations, "no-annotations", false, "Disable annotations such as scales and flight info")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	imageFormat = strings.ToLower(imageFormat)

	var err error
	if c.DBPath == "" {
		err = errors.New("db path is required")
	} else if c.SessionID <= 0 {
		err = errors.New("session id is required")
	} else if c.OutputFile == "" {
		err = errors.New("output file is required")
	} else if _, ok := validImageFormats[ImageFormat(imageFormat)]; !ok {
		err = fmt.Errorf("invalid image format: %s", imageFormat)
	} else if _, ok := validColorThemes[ColorTheme(theme)]; !ok {
		err = fmt.Errorf("invalid color theme: %s", theme)
	} else if c.Size < minPlotSize {
		err = fmt.Errorf("plot size must be at least %d pixels", minPlotSize)
	} else if c.TimeZone, err = time.LoadLocation(timeZone); err != nil {
		err = fmt.Errorf("invalid time zone: %w", err)
	} else if c.MinTimestamp, err = parseTime(start); err != nil {
		err = fmt.Errorf("invalid start time: %w", err)
	} else if c.MaxTimestamp, err = parseTime(end); err != nil {
		err = fmt.Errorf("invalid end time: %w", err)
	}

	if err != nil {
		fs.Usage()
		return nil, err
	}

	c.Format = ImageFormat(imageFormat)
	c.Theme = ColorTheme(theme)
	c.OutputFile = fmt.Sprintf("%s.%s", c.OutputFile, c.Format)
	return c, nil
}

func printUsage(fs *flag.FlagSet) {
	fmt.Fprintf(fs.Output(), "%s renders the flight track of a recorded session as a top-down image,\n", fs.Name())
	fmt.Fprint(fs.Output(), "colored by altitude and annotated with the flight info.\n\n")
	fmt.Fprintf(fs.Output(), "Usage: %s -db <file> -o <output> [options]\n\n", fs.Name())
	fs.PrintDefaults()
}

func parseTime(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
