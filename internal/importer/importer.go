package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"applestore-clone/internal/catalog"
	"applestore-clone/internal/domain"
	"go.uber.org/zap"
)

// DocumentWriter is the write half of docstore.Store.
type DocumentWriter interface {
	Set(ctx context.Context, collection, id string, fields map[string]interface{}) error
}

// Columns of an item export. Only name is required; itemId is generated when empty.
const (
	colItemID        = "itemId"
	colName          = "name"
	colCategory      = "category"
	colPrice         = "price"
	colDescription   = "description"
	colStockQuantity = "stockQuantity"
	colImageURL      = "imageURL"
	colColor         = "color"
	colIsAvailable   = "isAvailable"
)

// CSVImporter reads item CSV exports and writes each row to Item/{itemId}.
type CSVImporter struct {
	reader *csv.Reader
	docs   DocumentWriter
	logger *zap.Logger
}

func NewCSVImporter(r io.Reader, docs DocumentWriter, logger *zap.Logger) *CSVImporter {
	if logger == nil {
		logger = zap.NewNop()
	}
	csvr := csv.NewReader(r)
	csvr.FieldsPerRecord = -1 // rows may have trailing commas
	csvr.TrimLeadingSpace = true
	return &CSVImporter{
		reader: csvr,
		docs:   docs,
		logger: logger,
	}
}

// Run parses CSV rows and overwrites one item document per row. It stops at the first bad row.
func (i *CSVImporter) Run(ctx context.Context) (int, error) {
	headers, err := i.reader.Read()
	if err != nil {
		return 0, fmt.Errorf("read headers: %w", err)
	}
	index := headerIndex(headers)
	if _, ok := index[colName]; !ok {
		return 0, fmt.Errorf("missing %q column", colName)
	}

	imported := 0
	for line := 2; ; line++ {
		record, err := i.reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return imported, fmt.Errorf("read row: %w", err)
		}
		if blank(record) {
			continue
		}

		item, err := parseRow(record, index)
		if err != nil {
			return imported, fmt.Errorf("line %d: %w", line, err)
		}
		if err := i.docs.Set(ctx, catalog.ItemCollection, item.ItemID, catalog.ItemFields(item)); err != nil {
			return imported, fmt.Errorf("write item %q: %w", item.ItemID, err)
		}
		i.logger.Debug("importer: item written", zap.String("item_id", item.ItemID))
		imported++
	}

	return imported, nil
}

func parseRow(record []string, index map[string]int) (domain.Item, error) {
	item := domain.Item{
		ItemID:      pick(record, index, colItemID),
		Name:        pick(record, index, colName),
		Category:    pick(record, index, colCategory),
		Description: pick(record, index, colDescription),
		ImageURL:    pick(record, index, colImageURL),
		Color:       pick(record, index, colColor),
		IsAvailable: true,
	}
	if item.Name == "" {
		return item, errors.New("name is required")
	}
	if item.ItemID == "" {
		item.ItemID = domain.NewItemID()
	}

	var err error
	if item.Price, err = nonNegative(pick(record, index, colPrice), colPrice); err != nil {
		return item, err
	}
	if item.StockQuantity, err = nonNegative(pick(record, index, colStockQuantity), colStockQuantity); err != nil {
		return item, err
	}
	if raw := pick(record, index, colIsAvailable); raw != "" {
		if item.IsAvailable, err = strconv.ParseBool(raw); err != nil {
			return item, fmt.Errorf("invalid %s %q", colIsAvailable, raw)
		}
	}
	return item, nil
}

func nonNegative(raw, column string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(strings.ReplaceAll(raw, ",", ""))
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid %s %q", column, raw)
	}
	return n, nil
}

func headerIndex(headers []string) map[string]int {
	idx := make(map[string]int, len(headers))
	for i, h := range headers {
		idx[strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))] = i
	}
	return idx
}

func pick(record []string, index map[string]int, key string) string {
	pos, ok := index[key]
	if !ok || pos >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[pos])
}

func blank(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
