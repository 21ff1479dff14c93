package watchlist

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"stock-alert-cockpit/internal/domain"
)

// Mode selects where the dashboard takes its watchlist from.
type Mode int

const (
	ModeUpload Mode = iota
	ModeManual
	ModeSample
)

var modeLabels = map[Mode]string{
	ModeUpload: "Upload file",
	ModeManual: "Enter manually",
	ModeSample: "Use sample data",
}

func (m Mode) String() string {
	if label, ok := modeLabels[m]; ok {
		return label
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// Modes lists the selectable modes in display order.
var Modes = []Mode{ModeUpload, ModeManual, ModeSample}

var ErrUnsupportedFile = errors.New("watchlist file must be .txt or .csv")

// Parse splits content into tickers: one per line, trimmed, blanks dropped.
// Order and case are kept and duplicates are not removed.
func Parse(content string) []domain.Ticker {
	lines := strings.Split(content, "\n")
	out := make([]domain.Ticker, 0, len(lines))
	for _, line := range lines {
		if t := strings.TrimSpace(line); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// ParseReader parses uploaded content. A nil reader yields an empty watchlist.
func ParseReader(r io.Reader) ([]domain.Ticker, error) {
	if r == nil {
		return []domain.Ticker{}, nil
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read watchlist: %w", err)
	}
	return Parse(string(data)), nil
}

// LoadFile reads a .txt or .csv watchlist. CSV rows contribute their first column.
func LoadFile(path string) ([]domain.Ticker, error) {
	ext := strings.ToLower(filepath.Ext(strings.TrimSpace(path)))
	if ext != ".txt" && ext != ".csv" {
		return nil, ErrUnsupportedFile
	}
	f, err := os.Open(strings.TrimSpace(path))
	if err != nil {
		return nil, fmt.Errorf("open watchlist: %w", err)
	}
	defer f.Close()

	if ext == ".txt" {
		return ParseReader(f)
	}
	return parseCSV(f)
}

func parseCSV(r io.Reader) ([]domain.Ticker, error) {
	reader := csv.NewReader(bufio.NewReader(r))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var b strings.Builder
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse watchlist csv: %w", err)
		}
		if len(row) == 0 {
			continue
		}
		b.WriteString(row[0])
		b.WriteByte('\n')
	}
	return Parse(b.String()), nil
}

// Resolve returns the watchlist for the active mode. For ModeUpload input is a
// file path, for ModeManual it is the pasted text, and ModeSample ignores it.
func Resolve(mode Mode, input string) ([]domain.Ticker, error) {
	switch mode {
	case ModeUpload:
		if strings.TrimSpace(input) == "" {
			return []domain.Ticker{}, nil
		}
		return LoadFile(input)
	case ModeManual:
		return Parse(input), nil
	case ModeSample:
		return append([]domain.Ticker(nil), domain.SampleWatchlist...), nil
	default:
		return nil, fmt.Errorf("unknown watchlist mode %d", int(mode))
	}
}

// ParseList splits an inline list such as "TCS, INFY RELIANCE" taken from a
// query string or chat command. Commas and whitespace both separate tickers.
func ParseList(s string) []domain.Ticker {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
	out := make([]domain.Ticker, 0, len(fields))
	out = append(out, fields...)
	return out
}
