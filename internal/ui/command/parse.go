package command

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/nhle/taskflow/internal/tasks"
)

// Names of the commands understood by the palette.
const (
	NameFilter = "filter"
	NameSort   = "sort"
	NameSearch = "search"
	NameWork   = "work"
	NameBreak  = "break"
	NameTheme  = "theme"
	NameClear  = "clear"
	NameQuit   = "quit"
)

// Command is a parsed palette line.
type Command struct {
	Name string
	Arg  string
	// Minutes is set for work and break.
	Minutes int
}

var aliases = map[string]string{
	"q":    NameQuit,
	"exit": NameQuit,
	"f":    NameFilter,
	"s":    NameSort,
}

// Parse splits a palette line into a command and its argument. Argument
// values are checked by the caller, except for work and break which must
// be whole minutes.
func Parse(line string) (Command, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Command{}, fmt.Errorf("empty command")
	}

	name := strings.ToLower(fields[0])
	if full, ok := aliases[name]; ok {
		name = full
	}
	arg := strings.Join(fields[1:], " ")

	c := Command{Name: name, Arg: arg}
	switch name {
	case NameClear, NameQuit:
		return c, nil
	case NameSearch:
		return c, nil
	case NameFilter, NameSort, NameTheme:
		if arg == "" {
			return Command{}, fmt.Errorf("%s needs an argument", name)
		}
		return c, nil
	case NameWork, NameBreak:
		n, err := strconv.Atoi(arg)
		if err != nil {
			return Command{}, fmt.Errorf("%s needs a number of minutes", name)
		}
		c.Minutes = n
		return c, nil
	default:
		return Command{}, fmt.Errorf("unknown command %q", fields[0])
	}
}

// Usage lists every command with the form of its argument, in the order
// shown to the user.
func Usage() []string {
	return []string{
		NameFilter + " " + alternatives(tasks.Filters),
		NameSort + " " + alternatives(tasks.Sorts),
		NameSearch + " TEXT",
		NameWork + " N",
		NameBreak + " N",
		NameTheme + " dark|light",
		NameClear,
		NameQuit,
	}
}

func alternatives[T ~string](names []T) string {
	parts := make([]string, len(names))
	for i, n := range names {
		parts[i] = string(n)
	}
	return strings.Join(parts, "|")
}
