package lookerlib

import (
	"sort"
	"strconv"
)

// SecurityIndent prefixes security annotations in rendered report.
const SecurityIndent = "    "

// Consolidate groups results by display line. Groups are sorted by a
// number of sources, most popular first. Groups with the same number
// of sources keep an order of the first appearance.
func Consolidate(results []Result) []DisplayGroup {
	groups := []*DisplayGroup{}
	index := map[string]*DisplayGroup{}
	security := map[string]map[string]bool{}

	for _, res := range results {
		line := res.DisplayLine()
		group, ok := index[line]

		if !ok {
			group = &DisplayGroup{Line: line, Source: res.Source}
			index[line] = group
			security[line] = map[string]bool{}
			groups = append(groups, group)
		}

		group.Count++

		if res.HasSecurity() {
			security[line][res.Security] = true
		}
	}

	rv := make([]DisplayGroup, 0, len(groups))

	for _, group := range groups {
		if group.Count > 1 {
			group.Source = ""
		}

		for note := range security[group.Line] {
			group.Security = append(group.Security, note)
		}

		sort.Strings(group.Security)

		rv = append(rv, *group)
	}

	sort.SliceStable(rv, func(i, j int) bool {
		return rv[i].Count > rv[j].Count
	})

	return rv
}

// Label names who has reported the line: either a number of sources
// or a name of the single one.
func (d DisplayGroup) Label() string {
	if d.Count > 1 {
		return strconv.Itoa(d.Count) + " sources"
	}

	return d.Source
}

// Header returns a first line of the group in the report.
func (d DisplayGroup) Header() string {
	return d.Label() + ": " + d.Line
}

// Render builds a consolidated report. Each group gives a header line
// followed by its security annotations.
func Render(results []Result) []string {
	rv := []string{}

	for _, group := range Consolidate(results) {
		rv = append(rv, group.Header())

		for _, note := range group.Security {
			rv = append(rv, SecurityIndent+note)
		}
	}

	return rv
}
