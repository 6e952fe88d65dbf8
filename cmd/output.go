package cmd

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/KaramelBytes/edakit/internal/utils"
)

// renderable is anything the commands can print as a table, Markdown or JSON.
type renderable struct {
	markdown func() string
	table    func(w io.Writer)
	value    any
}

// emit prints r to w in the effective format, or writes it to outPath when set
// (JSON for a .json path, Markdown otherwise).
func emit(w io.Writer, r renderable, outPath string) error {
	if outPath != "" {
		var data []byte
		if strings.EqualFold(filepath.Ext(outPath), ".json") {
			b, err := utils.PrettyJSON(r.value)
			if err != nil {
				return err
			}
			data = b
		} else {
			data = []byte(r.markdown())
		}
		if err := utils.SafeWriteFile(outPath, data); err != nil {
			return err
		}
		fmt.Fprintf(w, "✓ Wrote %s\n", outPath)
		return nil
	}
	switch f := format(); f {
	case "json":
		b, err := utils.PrettyJSON(r.value)
		if err != nil {
			return err
		}
		_, err = w.Write(b)
		return err
	case "md", "markdown":
		_, err := fmt.Fprint(w, r.markdown())
		return err
	case "table", "":
		if r.table == nil {
			_, err := fmt.Fprint(w, r.markdown())
			return err
		}
		r.table(w)
		return nil
	default:
		return fmt.Errorf("unsupported --format: %s (use table|md|json)", f)
	}
}
