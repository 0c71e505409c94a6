package csvsource

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/nguyentantai21042004/qa-video/internal/models"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// errUndecodable marks bytes that are not valid under a given encoding.
var errUndecodable = errors.New("bytes are not valid in this encoding")

type candidate struct {
	name   string
	decode func([]byte) (string, error)
}

// encodings is the fixed order the input is tried in.
var encodings = []candidate{
	{"utf-8", decodeStrictUTF8},
	{"utf-8-sig", decodeUTF8BOM},
	{"latin-1", decodeWith(charmap.ISO8859_1)},
	{"windows-1252", decodeWith(charmap.Windows1252)},
}

// Result is what Read hands back on success.
type Result struct {
	Pairs    []models.QAPair
	Encoding string
}

// Read loads question/answer pairs from a CSV file. The header row is skipped.
// A file that decodes but holds nothing beyond the header yields zero pairs
// and no error.
func Read(path string) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &InputError{Path: path, Err: err}
	}
	return Parse(path, data)
}

// Parse is Read on an in-memory file; name is only used in errors.
func Parse(name string, data []byte) (*Result, error) {
	var (
		decodedEmpty string
		lastErr      error
	)

	for _, enc := range encodings {
		text, err := enc.decode(data)
		if err != nil {
			lastErr = fmt.Errorf("%s: %w", enc.name, err)
			continue
		}

		rows, err := readRows(text)
		if err != nil {
			lastErr = fmt.Errorf("%s: %w", enc.name, err)
			continue
		}

		if len(rows) <= 1 {
			if decodedEmpty == "" {
				decodedEmpty = enc.name
			}
			continue
		}

		pairs, err := toPairs(rows[1:])
		if err != nil {
			return nil, &InputError{Path: name, Err: err}
		}
		return &Result{Pairs: pairs, Encoding: enc.name}, nil
	}

	if decodedEmpty != "" {
		return &Result{Encoding: decodedEmpty}, nil
	}
	return nil, &InputError{Path: name, Err: fmt.Errorf("no encoding could read the file: %w", lastErr)}
}

func readRows(text string) ([][]string, error) {
	r := csv.NewReader(strings.NewReader(text))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	var rows [][]string
	for {
		rec, err := r.Read()
		if err == io.EOF {
			return rows, nil
		}
		if err != nil {
			return nil, err
		}
		rows = append(rows, rec)
	}
}

// toPairs takes data rows (header already removed). Line numbers in errors are
// 1-based file lines.
func toPairs(rows [][]string) ([]models.QAPair, error) {
	pairs := make([]models.QAPair, 0, len(rows))
	for i, row := range rows {
		if len(row) < 2 {
			return nil, fmt.Errorf("row %d: expected question and answer columns, got %d", i+2, len(row))
		}
		pairs = append(pairs, models.QAPair{
			Question: strings.TrimSpace(row[0]),
			Answer:   strings.TrimSpace(row[1]),
		})
	}
	return pairs, nil
}

func decodeStrictUTF8(data []byte) (string, error) {
	if !utf8.Valid(data) {
		return "", errUndecodable
	}
	return string(data), nil
}

func decodeUTF8BOM(data []byte) (string, error) {
	if !utf8.Valid(data) {
		return "", errUndecodable
	}
	out, err := unicode.UTF8BOM.NewDecoder().Bytes(data)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func decodeWith(enc encoding.Encoding) func([]byte) (string, error) {
	return func(data []byte) (string, error) {
		out, err := enc.NewDecoder().Bytes(data)
		if err != nil {
			return "", err
		}
		return string(bytes.ToValidUTF8(out, []byte("�"))), nil
	}
}
