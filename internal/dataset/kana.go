package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/heartmarshall/nihongo-dataset/internal/domain"
	"github.com/heartmarshall/nihongo-dataset/internal/kana"
)

// KanaHeader is the column layout of a kana table file.
var KanaHeader = []string{"kana", "romaji", "type", "stroke_count"}

// ReadKanaTableFile opens path and parses it with ReadKanaTable.
func ReadKanaTableFile(path string) ([]kana.Row, error) {
	f, err := openInput(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rows, err := ReadKanaTable(f)
	if err != nil {
		return nil, fmt.Errorf("dataset: %s: %w", path, err)
	}
	return rows, nil
}

// ReadKanaTable parses kana,romaji,type,stroke_count rows. Columns are
// matched by header name. A blank stroke_count is read as zero, which is
// how digraph rows are usually written.
func ReadKanaTable(r io.Reader) ([]kana.Row, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("read header: %w", domain.ErrMissingInput)
		}
		return nil, fmt.Errorf("read header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))] = i
	}
	for _, need := range KanaHeader {
		if _, ok := cols[need]; !ok {
			return nil, fmt.Errorf("header has no %s column: %w", need, domain.ErrMalformed)
		}
	}

	var rows []kana.Row
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		line++

		get := func(col string) string {
			i := cols[col]
			if i >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[i])
		}

		k := get("kana")
		if k == "" {
			continue
		}

		strokes := 0
		if raw := get("stroke_count"); raw != "" {
			f, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: stroke_count %q: %w", line, raw, domain.ErrMalformed)
			}
			strokes = int(f)
		}

		rows = append(rows, kana.Row{
			Kana:    k,
			Romaji:  get("romaji"),
			Script:  domain.Script(strings.ToLower(get("type"))),
			Strokes: strokes,
		})
	}
	return rows, nil
}

// WriteKanaTable writes rows in KanaHeader layout. Digraph rows get an
// empty stroke_count.
func WriteKanaTable(w io.Writer, rows []kana.Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(KanaHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, r := range rows {
		strokes := strconv.Itoa(r.Strokes)
		if len([]rune(r.Kana)) > 1 {
			strokes = ""
		}
		if err := cw.Write([]string{r.Kana, r.Romaji, r.Script.String(), strokes}); err != nil {
			return fmt.Errorf("write row %q: %w", r.Kana, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteKanaTableFile writes rows to path atomically.
func WriteKanaTableFile(path string, rows []kana.Row) error {
	return writeFile(path, func(w io.Writer) error { return WriteKanaTable(w, rows) })
}
