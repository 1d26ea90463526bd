package cmd

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-drift/stylematrix/pkg/style"
	"github.com/go-drift/stylematrix/pkg/styler"
)

// flagSet describes the --name flags a command accepts. Values may be given
// as "--name value" or "--name=value".
type flagSet struct {
	values map[string]*string
	bools  map[string]*bool
}

func newFlagSet() *flagSet {
	return &flagSet{values: map[string]*string{}, bools: map[string]*bool{}}
}

func (fs *flagSet) String(name string) *string {
	v := new(string)
	fs.values[name] = v
	return v
}

func (fs *flagSet) Bool(name string) *bool {
	v := new(bool)
	fs.bools[name] = v
	return v
}

// Parse fills the registered flags and returns the positional arguments.
func (fs *flagSet) Parse(args []string) ([]string, error) {
	var positional []string
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if !strings.HasPrefix(arg, "--") {
			positional = append(positional, arg)
			continue
		}
		name, value, hasValue := strings.Cut(strings.TrimPrefix(arg, "--"), "=")
		if b, ok := fs.bools[name]; ok {
			if hasValue {
				parsed, err := strconv.ParseBool(value)
				if err != nil {
					return nil, fmt.Errorf("invalid value for --%s: %q", name, value)
				}
				*b = parsed
			} else {
				*b = true
			}
			continue
		}
		v, ok := fs.values[name]
		if !ok {
			return nil, fmt.Errorf("unknown flag: --%s", name)
		}
		if !hasValue {
			if i+1 >= len(args) {
				return nil, fmt.Errorf("--%s requires a value", name)
			}
			value = args[i+1]
			i++
		}
		*v = value
	}
	return positional, nil
}

// styleFlags are the style attributes accepted by apply, sheet and modes.
type styleFlags struct {
	mode       *string
	brightness *string
	contrast   *string
	saturation *string
}

func addStyleFlags(fs *flagSet) styleFlags {
	return styleFlags{
		mode:       fs.String("mode"),
		brightness: fs.String("brightness"),
		contrast:   fs.String("contrast"),
		saturation: fs.String("saturation"),
	}
}

// attributes converts the flags that were given to attributes.
func (f styleFlags) attributes() (styler.Attributes, error) {
	var a styler.Attributes
	if *f.mode != "" {
		m, err := style.ParseMode(*f.mode)
		if err != nil {
			return a, err
		}
		a.Mode = &m
	}
	if *f.brightness != "" {
		b, err := strconv.Atoi(*f.brightness)
		if err != nil {
			return a, fmt.Errorf("invalid --brightness %q", *f.brightness)
		}
		a.Brightness = &b
	}
	if *f.contrast != "" {
		c, err := strconv.ParseFloat(*f.contrast, 64)
		if err != nil {
			return a, fmt.Errorf("invalid --contrast %q", *f.contrast)
		}
		a.Contrast = &c
	}
	if *f.saturation != "" {
		s, err := strconv.ParseFloat(*f.saturation, 64)
		if err != nil {
			return a, fmt.Errorf("invalid --saturation %q", *f.saturation)
		}
		a.Saturation = &s
	}
	return a, nil
}

// styleOptions merges the config file's style section with flags and
// validates the result. A mode given on the command line replaces the
// file's saturation, matching Styler.SetMode.
func (f styleFlags) styleOptions() (styler.Options, error) {
	flags, err := f.attributes()
	if err != nil {
		return styler.Options{}, err
	}
	base := cfg.Style
	if flags.Mode != nil && flags.Saturation == nil && *flags.Mode != style.ModeSaturation {
		base.Saturation = nil
	}
	return base.Merge(flags).Options()
}

func parseIntFlag(name, value string, def int) (int, error) {
	if value == "" {
		return def, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("--%s must be a positive integer (got %q)", name, value)
	}
	return n, nil
}

func parseDurationFlag(name, value string, def time.Duration) (time.Duration, error) {
	if value == "" {
		return def, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil || d < 0 {
		return 0, fmt.Errorf("--%s must be a non-negative duration like 500ms (got %q)", name, value)
	}
	return d, nil
}
