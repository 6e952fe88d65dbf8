package dataset

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"
)

// LoadXLSX reads one worksheet of a .xlsx workbook into a Dataset.
// If sheetName is empty the sheet is picked by its 1-based sheetIndex (Sheet1 == 1).
func LoadXLSX(filePath string, opt LoadOptions, sheetName string, sheetIndex int) (*Dataset, error) {
	b, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("read xlsx: %w", err)
	}
	wb, err := openWorkbook(b)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(filePath), err)
	}
	target, err := wb.resolve(sheetName, sheetIndex)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(filePath), err)
	}
	records, err := wb.records(target, opt.MaxRows)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(filePath), err)
	}
	ds, err := FromRecords(records, opt)
	if err != nil {
		return nil, err
	}
	ds.Name = filepath.Base(filePath)
	return ds, nil
}

type xlsxSheet struct {
	Name    string `xml:"name,attr"`
	SheetID int    `xml:"sheetId,attr"`
	RelID   string `xml:"id,attr"`
}

type xlsxWorkbook struct {
	Sheets []xlsxSheet `xml:"sheets>sheet"`
}

type xlsxRelationships struct {
	Rels []struct {
		ID     string `xml:"Id,attr"`
		Target string `xml:"Target,attr"`
	} `xml:"Relationship"`
}

// xlsxText is rich or plain text: <si>/<is> hold either <t> or runs of <r><t>.
type xlsxText struct {
	T    string `xml:"t"`
	Runs []struct {
		T string `xml:"t"`
	} `xml:"r"`
}

func (x xlsxText) String() string {
	if len(x.Runs) == 0 {
		return x.T
	}
	var b strings.Builder
	b.WriteString(x.T)
	for _, r := range x.Runs {
		b.WriteString(r.T)
	}
	return b.String()
}

type xlsxSharedStrings struct {
	Items []xlsxText `xml:"si"`
}

type xlsxCell struct {
	Ref    string   `xml:"r,attr"`
	Type   string   `xml:"t,attr"`
	Value  string   `xml:"v"`
	Inline xlsxText `xml:"is"`
}

type xlsxRow struct {
	Cells []xlsxCell `xml:"c"`
}

// workbook is an opened .xlsx archive with its sheet index and shared strings.
type workbook struct {
	zr     *zip.Reader
	sheets []xlsxSheet
	rels   map[string]string
	shared []string
}

func openWorkbook(data []byte) (*workbook, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	wb := &workbook{zr: zr, rels: map[string]string{}}

	var book xlsxWorkbook
	if err := wb.decode("xl/workbook.xml", &book); err != nil {
		return nil, err
	}
	wb.sheets = book.Sheets

	var rels xlsxRelationships
	if err := wb.decode("xl/_rels/workbook.xml.rels", &rels); err != nil && !errors.Is(err, errNoEntry) {
		return nil, err
	}
	for _, r := range rels.Rels {
		wb.rels[r.ID] = normalizeRelPath(r.Target)
	}

	var sst xlsxSharedStrings
	if err := wb.decode("xl/sharedStrings.xml", &sst); err != nil && !errors.Is(err, errNoEntry) {
		return nil, err
	}
	for _, si := range sst.Items {
		wb.shared = append(wb.shared, si.String())
	}
	return wb, nil
}

var errNoEntry = errors.New("entry missing from workbook")

func (wb *workbook) open(name string) (io.ReadCloser, error) {
	for _, f := range wb.zr.File {
		if f.Name == name {
			return f.Open()
		}
	}
	return nil, fmt.Errorf("%w: %s", errNoEntry, name)
}

func (wb *workbook) decode(name string, v any) error {
	rc, err := wb.open(name)
	if err != nil {
		return err
	}
	defer rc.Close()
	if err := xml.NewDecoder(rc).Decode(v); err != nil {
		return fmt.Errorf("parse %s: %w", name, err)
	}
	return nil
}

// resolve returns the zip entry of the sheet named sheetName (case-insensitive)
// or, when the name is empty, of the sheet whose sheetId is sheetIndex.
func (wb *workbook) resolve(sheetName string, sheetIndex int) (string, error) {
	if sheetName != "" {
		for _, s := range wb.sheets {
			if strings.EqualFold(s.Name, sheetName) {
				if t, ok := wb.rels[s.RelID]; ok {
					return t, nil
				}
				break
			}
		}
		names := make([]string, len(wb.sheets))
		for i, s := range wb.sheets {
			names[i] = s.Name
		}
		return "", fmt.Errorf("sheet %q not found; available sheets: %s", sheetName, strings.Join(names, ", "))
	}
	if sheetIndex <= 0 {
		sheetIndex = 1
	}
	for _, s := range wb.sheets {
		if s.SheetID == sheetIndex {
			if t, ok := wb.rels[s.RelID]; ok {
				return t, nil
			}
		}
	}
	return fmt.Sprintf("xl/worksheets/sheet%d.xml", sheetIndex), nil
}

// records returns the header plus at most maxRows data rows (0 = all) of the
// worksheet at target. Cells are placed by their reference so gaps stay empty.
func (wb *workbook) records(target string, maxRows int) ([][]string, error) {
	rc, err := wb.open(target)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	dec := xml.NewDecoder(rc)
	var out [][]string
	for maxRows <= 0 || len(out) <= maxRows {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", target, err)
		}
		se, ok := tok.(xml.StartElement)
		if !ok || se.Name.Local != "row" {
			continue
		}
		var row xlsxRow
		if err := dec.DecodeElement(&row, &se); err != nil {
			return nil, fmt.Errorf("parse %s: %w", target, err)
		}
		out = append(out, wb.rowValues(row))
	}
	if len(out) == 0 || len(out[0]) == 0 {
		return nil, ErrEmptyInput
	}
	return out, nil
}

func (wb *workbook) rowValues(row xlsxRow) []string {
	var vals []string
	for _, c := range row.Cells {
		col := colIndexFromRef(c.Ref)
		if col < 0 {
			col = len(vals)
		}
		for len(vals) <= col {
			vals = append(vals, "")
		}
		vals[col] = wb.cellValue(c)
	}
	return vals
}

func (wb *workbook) cellValue(c xlsxCell) string {
	switch c.Type {
	case "s":
		idx, err := strconv.Atoi(strings.TrimSpace(c.Value))
		if err != nil || idx < 0 || idx >= len(wb.shared) {
			return ""
		}
		return wb.shared[idx]
	case "inlineStr":
		return c.Inline.String()
	default:
		return c.Value
	}
}

// colIndexFromRef converts refs like "C12" to a 0-based column index; -1 when absent.
func colIndexFromRef(ref string) int {
	idx := 0
	for _, r := range strings.ToUpper(ref) {
		if r < 'A' || r > 'Z' {
			break
		}
		idx = idx*26 + int(r-'A'+1)
	}
	return idx - 1
}

// normalizeRelPath converts relationship targets ("/xl/worksheets/sheet1.xml",
// "worksheets/sheet1.xml") to zip entry names.
func normalizeRelPath(rel string) string {
	rel = strings.TrimPrefix(rel, "/")
	if strings.HasPrefix(rel, "xl/") {
		return rel
	}
	return path.Join("xl", rel)
}
