package ui

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/ryo246912/gh-rest-bindings/pkg/models"
)

func PadRight(str string, width int) string {
	w := runewidth.StringWidth(str)
	if w < width {
		return str + strings.Repeat(" ", width-w)
	}
	return str
}

// Truncate shortens str to width display columns, marking the cut with "..."
func Truncate(str string, width int) string {
	if runewidth.StringWidth(str) <= width {
		return str
	}
	return runewidth.Truncate(str, width, "...")
}

// CheckRunItem renders one line of the check run picker
func CheckRunItem(run models.CheckRun) string {
	state := string(run.Status)
	if run.Conclusion != "" {
		state = string(run.Conclusion)
	}
	sha := run.HeadSHA
	if len(sha) > 7 {
		sha = sha[:7]
	}
	return fmt.Sprintf(
		"%s %s %s %s",
		PadRight(fmt.Sprintf("%d", run.ID), 12),
		PadRight(Truncate(run.Name, 50), 50),
		PadRight(state, 16),
		sha,
	)
}

// VersionItem renders one line of the package version picker
func VersionItem(v models.PackageVersion) string {
	tags := strings.Join(v.Tags(), ",")
	if tags == "" {
		tags = "(untagged)"
	}
	updated := ""
	if v.UpdatedAt != nil {
		updated = v.UpdatedAt.Format("2006-01-02 15:04")
	}
	return fmt.Sprintf(
		"%s %s %s %s",
		PadRight(fmt.Sprintf("%d", v.ID), 12),
		PadRight(Truncate(v.Name, 40), 40),
		PadRight(Truncate(tags, 30), 30),
		updated,
	)
}
