package output

import (
	"strconv"
	"strings"
	"time"

	"github.com/cli/go-gh/v2/pkg/tableprinter"
	"github.com/ryo246912/gh-rest-bindings/pkg/models"
)

func CheckRunRows(tp tableprinter.TablePrinter, list models.CheckRunList) {
	tp.AddHeader([]string{"ID", "NAME", "STATUS", "CONCLUSION", "SHA", "COMPLETED"})
	for _, run := range list.CheckRuns {
		addCheckRun(tp, run)
	}
}

func CheckRunRow(tp tableprinter.TablePrinter, run models.CheckRun) {
	tp.AddHeader([]string{"ID", "NAME", "STATUS", "CONCLUSION", "SHA", "COMPLETED"})
	addCheckRun(tp, run)
}

func addCheckRun(tp tableprinter.TablePrinter, run models.CheckRun) {
	tp.AddField(id(run.ID))
	tp.AddField(run.Name)
	tp.AddField(string(run.Status))
	tp.AddField(string(run.Conclusion))
	tp.AddField(shortSHA(run.HeadSHA))
	tp.AddField(timestamp(run.CompletedAt))
	tp.EndRow()
}

func AnnotationRows(tp tableprinter.TablePrinter, annotations []models.CheckAnnotation) {
	tp.AddHeader([]string{"PATH", "LINES", "LEVEL", "MESSAGE"})
	for _, a := range annotations {
		lines := strconv.Itoa(a.StartLine)
		if a.EndLine != a.StartLine {
			lines += "-" + strconv.Itoa(a.EndLine)
		}
		tp.AddField(a.Path)
		tp.AddField(lines)
		tp.AddField(a.AnnotationLevel)
		tp.AddField(a.Message)
		tp.EndRow()
	}
}

func CheckSuiteRows(tp tableprinter.TablePrinter, list models.CheckSuiteList) {
	tp.AddHeader([]string{"ID", "APP", "BRANCH", "STATUS", "CONCLUSION", "RUNS"})
	for _, suite := range list.CheckSuites {
		addCheckSuite(tp, suite)
	}
}

func CheckSuiteRow(tp tableprinter.TablePrinter, suite models.CheckSuite) {
	tp.AddHeader([]string{"ID", "APP", "BRANCH", "STATUS", "CONCLUSION", "RUNS"})
	addCheckSuite(tp, suite)
}

func addCheckSuite(tp tableprinter.TablePrinter, suite models.CheckSuite) {
	app := ""
	if suite.App != nil {
		app = suite.App.Slug
	}
	tp.AddField(id(suite.ID))
	tp.AddField(app)
	tp.AddField(suite.HeadBranch)
	tp.AddField(string(suite.Status))
	tp.AddField(string(suite.Conclusion))
	tp.AddField(strconv.Itoa(suite.LatestCheckRunsCount))
	tp.EndRow()
}

func PackageRows(tp tableprinter.TablePrinter, pkgs []models.Package) {
	tp.AddHeader([]string{"ID", "NAME", "TYPE", "VISIBILITY", "VERSIONS", "UPDATED"})
	for _, p := range pkgs {
		addPackage(tp, p)
	}
}

func PackageRow(tp tableprinter.TablePrinter, p models.Package) {
	PackageRows(tp, []models.Package{p})
}

func addPackage(tp tableprinter.TablePrinter, p models.Package) {
	tp.AddField(id(p.ID))
	tp.AddField(p.Name)
	tp.AddField(string(p.PackageType))
	tp.AddField(string(p.Visibility))
	tp.AddField(strconv.Itoa(p.VersionCount))
	tp.AddField(timestamp(p.UpdatedAt))
	tp.EndRow()
}

func VersionRows(tp tableprinter.TablePrinter, versions []models.PackageVersion) {
	tp.AddHeader([]string{"ID", "NAME", "TAGS", "UPDATED"})
	for _, v := range versions {
		tp.AddField(id(v.ID))
		tp.AddField(v.Name)
		tp.AddField(strings.Join(v.Tags(), ","))
		tp.AddField(timestamp(v.UpdatedAt))
		tp.EndRow()
	}
}

func UserRow(tp tableprinter.TablePrinter, u models.User) {
	tp.AddHeader([]string{"LOGIN", "ID", "NAME"})
	tp.AddField(u.Login)
	tp.AddField(id(u.ID))
	tp.AddField(u.Name)
	tp.EndRow()
}

func id(n int64) string {
	return strconv.FormatInt(n, 10)
}

func shortSHA(sha string) string {
	if len(sha) > 7 {
		return sha[:7]
	}
	return sha
}

func timestamp(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
