package services

import "strings"

// BulletPlaceholder is used when a model response yields no usable lines at
// all.
const BulletPlaceholder = "No specific insights could be generated from the analysis"

// ParseBullets turns a model response into clean bullet points. Lines
// starting with "-" or "•" win; if none exist, every non-empty line is taken
// as-is. An empty response yields the placeholder. Running the output
// through again returns it unchanged.
func ParseBullets(text string) []string {
	lines := strings.Split(text, "\n")

	var points []string
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || (!strings.HasPrefix(line, "-") && !strings.HasPrefix(line, "•")) {
			continue
		}
		if clean := strings.TrimSpace(strings.TrimLeft(line, "-•")); clean != "" {
			points = append(points, clean)
		}
	}

	if len(points) == 0 {
		for _, line := range lines {
			if line = strings.TrimSpace(line); line != "" {
				points = append(points, line)
			}
		}
	}

	if len(points) == 0 {
		points = []string{BulletPlaceholder}
	}
	return points
}

// ExtractHeadings returns the markdown headings of the content, with the
// leading hash marks stripped.
func ExtractHeadings(content string) []string {
	var headings []string
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "#") {
			continue
		}
		if h := strings.TrimSpace(strings.TrimLeft(line, "# ")); h != "" {
			headings = append(headings, h)
		}
	}
	return headings
}
