package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/ryo246912/gh-rest-bindings/pkg/models"
)

func SelectCheckRun(runs []models.CheckRun) (int64, error) {
	if len(runs) == 0 {
		return 0, fmt.Errorf("no check runs to choose from")
	}

	items := make([]string, len(runs))
	for i, run := range runs {
		items[i] = CheckRunItem(run)
	}

	idx, err := runSelect("Select check run", items)
	if err != nil {
		return 0, err
	}
	return runs[idx].ID, nil
}

func SelectPackageVersion(versions []models.PackageVersion) (int64, error) {
	if len(versions) == 0 {
		return 0, fmt.Errorf("no package versions to choose from")
	}

	items := make([]string, len(versions))
	for i, v := range versions {
		items[i] = VersionItem(v)
	}

	idx, err := runSelect("Select package version", items)
	if err != nil {
		return 0, err
	}
	return versions[idx].ID, nil
}

func runSelect(label string, items []string) (int, error) {
	prompt := promptui.Select{
		Label: label,
		Items: items,
		Size:  12,
		Searcher: func(input string, index int) bool {
			return strings.Contains(strings.ToLower(items[index]), strings.ToLower(input))
		},
		StartInSearchMode: true,
	}

	idx, _, err := prompt.Run()
	if err != nil {
		return 0, fmt.Errorf("prompt failed: %w", err)
	}
	return idx, nil
}

// ConfirmSelection asks for user confirmation until a yes/no answer is read
func ConfirmSelection(in io.Reader, out io.Writer, label string) (bool, error) {
	var confirm string
	for {
		fmt.Fprintf(out, "You selected: %s. Is this correct? (y/n): ", label)
		if _, err := fmt.Fscan(in, &confirm); err != nil {
			return false, fmt.Errorf("failed to read confirmation: %w", err)
		}
		switch strings.ToLower(confirm) {
		case "yes", "y":
			return true, nil
		case "no", "n":
			return false, nil
		default:
			fmt.Fprintln(out, "Please enter 'y' or 'n'.")
		}
	}
}
