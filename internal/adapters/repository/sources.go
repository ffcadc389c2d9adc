package repository

import "os"

// Source names, used as metric labels and in status output.
const (
	SourceEvents   = "events"
	SourceResults  = "results"
	SourceStats    = "stats"
	SourceFighters = "fighters"
)

// Sources holds the file path of every CSV export. Fighters is optional.
type Sources struct {
	Events   string
	Results  string
	Stats    string
	Fighters string
}

// Path returns the configured path for the named source.
func (s Sources) Path(name string) string {
	switch name {
	case SourceEvents:
		return s.Events
	case SourceResults:
		return s.Results
	case SourceStats:
		return s.Stats
	case SourceFighters:
		return s.Fighters
	default:
		return ""
	}
}

// Missing returns the required sources whose files do not exist.
func (s Sources) Missing() []string {
	var out []string
	for _, name := range []string{SourceEvents, SourceResults, SourceStats} {
		if !exists(s.Path(name)) {
			out = append(out, name)
		}
	}
	return out
}

func exists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}
