// Package report renders a package verdict as an XLSX workbook for bank
// operations staff who review presentations in spreadsheets.
package report

import (
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/LucasDotTrade/lucas-brain/internal/model"
)

// WriteXLSX writes the verdict workbook to path. Three sheets: Summary,
// Documents, and Issues.
func WriteXLSX(v *model.PackageVerdict, path string) error {
	f := xlsx.NewFile()

	if err := addSummarySheet(f, v); err != nil {
		return err
	}
	if err := addDocumentsSheet(f, v); err != nil {
		return err
	}
	if err := addIssuesSheet(f, v); err != nil {
		return err
	}

	return eris.Wrap(f.Save(path), "report: save workbook")
}

func addSummarySheet(f *xlsx.File, v *model.PackageVerdict) error {
	sheet, err := f.AddSheet("Summary")
	if err != nil {
		return eris.Wrap(err, "report: add summary sheet")
	}

	addPair(sheet, "Package ID", v.PackageID)
	addPair(sheet, "Client", v.ClientIdentifier)
	addPair(sheet, "Payment Mode", string(v.PaymentMode))
	addPair(sheet, "Overall Verdict", string(v.OverallVerdict))
	addPair(sheet, "Documents", strconv.Itoa(len(v.DocumentResults)))
	addPair(sheet, "Cross-Reference Issues", strconv.Itoa(len(v.CrossReferenceIssues)))
	addPair(sheet, "Recommendation", v.Recommendation)
	return nil
}

func addDocumentsSheet(f *xlsx.File, v *model.PackageVerdict) error {
	sheet, err := f.AddSheet("Documents")
	if err != nil {
		return eris.Wrap(err, "report: add documents sheet")
	}

	addRow(sheet, "Document", "Verdict", "Issues", "Analysis")
	for _, doc := range v.DocumentResults {
		issues := make([]string, 0, len(doc.Issues))
		for _, issue := range doc.Issues {
			issues = append(issues, string(issue.Severity)+": "+issue.Description)
		}
		addRow(sheet, doc.Type.Display(), string(doc.Verdict), strings.Join(issues, "\n"), doc.Analysis)
	}
	return nil
}

func addIssuesSheet(f *xlsx.File, v *model.PackageVerdict) error {
	sheet, err := f.AddSheet("Issues")
	if err != nil {
		return eris.Wrap(err, "report: add issues sheet")
	}

	addRow(sheet, "Field", "Severity", "Documents", "Values", "Description")
	for _, issue := range v.CrossReferenceIssues {
		addRow(sheet,
			issue.Field,
			string(issue.Severity),
			strings.Join(issue.Documents, "; "),
			strings.Join(issue.Values, "; "),
			issue.Description,
		)
	}
	return nil
}

func addPair(sheet *xlsx.Sheet, label, value string) {
	addRow(sheet, label, value)
}

func addRow(sheet *xlsx.Sheet, values ...string) {
	row := sheet.AddRow()
	for _, v := range values {
		row.AddCell().Value = v
	}
}
