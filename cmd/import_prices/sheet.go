package main

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/shopspring/decimal"

	"bakery/internal/catalog"
)

var (
	// name, a decimal price and an optional supplier on one line of extracted text.
	textLinePattern = regexp.MustCompile(`^(.+?)[\s,;]+(\d+[.,]\d+)(?:[\s,;]+(.*))?$`)
	cleanWhitespace = regexp.MustCompile(`\s+`)
)

// readPriceSheet loads price lines from a CSV file or from the text of a PDF.
func readPriceSheet(path string) ([]catalog.PriceUpdate, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		text, err := extractTextFromPDF(data)
		if err != nil {
			return nil, fmt.Errorf("extract pdf text: %w", err)
		}
		return parseText(text)
	}
	return parseCSV(bytes.NewReader(data))
}

func extractTextFromPDF(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}
	var builder strings.Builder
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return "", err
		}
		builder.WriteString(text)
		builder.WriteString("\n")
	}
	return builder.String(), nil
}

// parseCSV reads name,price_per_gram[,supplier] records. A leading header
// row whose first cell is "name" is skipped.
func parseCSV(r io.Reader) ([]catalog.PriceUpdate, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	var updates []catalog.PriceUpdate
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		if blankRow(row) {
			continue
		}
		line, _ := reader.FieldPos(0)
		if line == 1 && strings.EqualFold(strings.TrimSpace(row[0]), "name") {
			continue
		}
		if len(row) < 2 {
			return nil, fmt.Errorf("line %d: expected name and price_per_gram", line)
		}
		price, err := parsePrice(row[1])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		update := catalog.PriceUpdate{Name: normalizeText(row[0]), PricePerGram: price}
		if len(row) > 2 {
			update.Supplier = normalizeText(row[2])
		}
		updates = append(updates, update)
	}
	return updates, nil
}

// parseText reads one price line per line of text. Lines without a price,
// such as titles and column headings, are ignored.
func parseText(text string) ([]catalog.PriceUpdate, error) {
	var updates []catalog.PriceUpdate
	for i, line := range strings.Split(text, "\n") {
		line = normalizeText(line)
		if line == "" {
			continue
		}
		match := textLinePattern.FindStringSubmatch(line)
		if match == nil {
			continue
		}
		price, err := parsePrice(match[2])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
		updates = append(updates, catalog.PriceUpdate{
			Name:         strings.TrimSpace(match[1]),
			PricePerGram: price,
			Supplier:     strings.TrimSpace(match[3]),
		})
	}
	return updates, nil
}

func parsePrice(value string) (decimal.Decimal, error) {
	value = strings.ReplaceAll(strings.TrimSpace(value), ",", ".")
	price, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid price %q", value)
	}
	return price, nil
}

func normalizeText(value string) string {
	return strings.TrimSpace(cleanWhitespace.ReplaceAllString(value, " "))
}

func blankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
