// Package flagx contains helpers for parsing a subset of the command line
// without tripping over flags owned by other packages.
package flagx

import (
	"flag"
	"os"
	"strings"
)

// FilterArgs returns only the arguments belonging to the allowed flags,
// keeping their values. Both "-f value" and "--flag=value" forms are
// recognized. Everything else is dropped, so a FlagSet parsing the result
// never sees flags it does not define.
func FilterArgs(args []string, allowed []string) []string {
	keep := make(map[string]struct{}, len(allowed))
	for _, name := range allowed {
		keep[name] = struct{}{}
	}

	out := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]

		if strings.HasPrefix(arg, "-") && strings.Contains(arg, "=") {
			name, _, _ := strings.Cut(arg, "=")
			if _, ok := keep[name]; ok {
				out = append(out, arg)
			}
			continue
		}

		if _, ok := keep[arg]; ok {
			out = append(out, arg)
			// A following non-flag argument is this flag's value.
			if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
				out = append(out, args[i+1])
				i++
			}
		}
	}
	return out
}

// JSONConfigPath extracts the config-file path given via -c or -config.
// Returns "" when neither flag is present. Other arguments are ignored.
func JSONConfigPath() string {
	var path string

	args := FilterArgs(os.Args[1:], []string{"-c", "-config"})

	fs := flag.NewFlagSet("jsonconfig", flag.ContinueOnError)
	fs.StringVar(&path, "config", "", "path to config file")
	fs.StringVar(&path, "c", "", "path to config file (short)")
	_ = fs.Parse(args)

	return path
}
