// Package chapters extracts chapter markers from a video description.
//
// A description opts in with a header line reading "Chapters" or "Timestamps". The lines that
// follow are read as long as each carries a timestamp:
//
//	Chapters
//	0:00 Intro
//	- 1:30 | Setup
//	12:05 Wrap up
package chapters

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/creatv/creatv/format"
)

// Chapter is one marker.
type Chapter struct {
	Title     string `json:"title"`
	Start     int    `json:"start_seconds"`
	Timestamp string `json:"timestamp"`
	Line      string `json:"-"`
}

func (c Chapter) String() string {
	return fmt.Sprintf("%s %s", c.Timestamp, c.Title)
}

const durationEpsilon = 2

var (
	timestampPattern = regexp.MustCompile(`(\d{1,2}:\d{2}(?::\d{2})?)`)
	nonLetters       = regexp.MustCompile(`[^a-z]`)
	listMarker       = regexp.MustCompile(`^\s*[-*]\s*`)
	leadingSeps      = regexp.MustCompile(`^[\s|\-:]+`)
	trailingSeps     = regexp.MustCompile(`[\s|\-:]+$`)
	lineBreak        = regexp.MustCompile(`\r?\n`)
)

func isHeader(line string) bool {
	switch nonLetters.ReplaceAllString(strings.ToLower(line), "") {
	case "chapters", "timestamps":
		return true
	default:
		return false
	}
}

func title(line string, loc []int, timestamp string) string {
	rest := line[:loc[0]] + line[loc[1]:]
	rest = listMarker.ReplaceAllString(rest, "")
	rest = leadingSeps.ReplaceAllString(rest, "")
	rest = trailingSeps.ReplaceAllString(rest, "")
	rest = strings.TrimSpace(rest)

	if rest == "" {
		return "Chapter @ " + timestamp
	}
	return rest
}

// Parse reads chapters from description. A positive duration drops markers past its end,
// allowing a couple of seconds of slack. Entries sharing a start keep the longer title.
func Parse(description string, duration float64) []Chapter {
	if description == "" {
		return nil
	}

	lines := lineBreak.Split(description, -1)
	header := -1
	for i, line := range lines {
		if isHeader(line) {
			header = i
			break
		}
	}

	if header == -1 {
		return nil
	}

	var (
		entries []Chapter
		seen    = make(map[int]int)
		started bool
	)

	for _, line := range lines[header+1:] {
		if strings.TrimSpace(line) == "" {
			if started {
				break
			}
			continue
		}

		loc := timestampPattern.FindStringSubmatchIndex(line)
		if loc == nil {
			if started {
				break
			}
			continue
		}

		timestamp := line[loc[2]:loc[3]]
		seconds := format.ParseTimestamp(timestamp)
		if duration > 0 && float64(seconds) > duration+durationEpsilon {
			if started {
				break
			}
			continue
		}

		started = true
		entry := Chapter{
			Title:     title(line, loc[2:4], timestamp),
			Start:     seconds,
			Timestamp: timestamp,
			Line:      line,
		}

		if i, ok := seen[seconds]; !ok {
			seen[seconds] = len(entries)
			entries = append(entries, entry)
		} else if len(entry.Title) > len(entries[i].Title) {
			entries[i] = entry
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Start < entries[j].Start
	})

	return entries
}

// At returns the chapter playing at position seconds.
func At(chapters []Chapter, position float64) (Chapter, bool) {
	var (
		current Chapter
		found   bool
	)

	for _, c := range chapters {
		if float64(c.Start) > position {
			break
		}
		current, found = c, true
	}

	return current, found
}
