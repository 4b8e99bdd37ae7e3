package sync

import (
	"context"
	"time"

	"libas.GO/config"
	"libas.GO/core/fault"
)

// RawResult is one full extraction: ordered column names and rows in source
// order. Partial results are never produced.
type RawResult struct {
	Columns []string
	Rows    []map[string]interface{}
}

// Extractor pulls the item snapshot from the external source.
type Extractor interface {
	Extract(ctx context.Context) (*RawResult, error)
}

// BusyExtractor runs BusySQL against the configured Busy SQL Server.
type BusyExtractor struct {
	cfg     config.BusyConfig
	timeout time.Duration
}

func NewBusyExtractor(cfg config.BusyConfig) *BusyExtractor {
	return &BusyExtractor{cfg: cfg, timeout: 60 * time.Second}
}

func (e *BusyExtractor) Extract(ctx context.Context) (*RawResult, error) {
	if err := e.cfg.Validate(); err != nil {
		return nil, fault.Wrap(fault.Configuration, "extract", err)
	}

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	db, err := config.NewBusyDB(e.cfg)
	if err != nil {
		return nil, fault.Wrap(fault.Connection, "extract", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fault.Wrap(fault.Connection, "extract", err)
	}
	defer sqlDB.Close()
	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, fault.Wrap(fault.Connection, "extract", err)
	}

	rows, err := db.WithContext(ctx).Raw(BusySQL).Rows()
	if err != nil {
		return nil, fault.Wrap(fault.Query, "extract", err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fault.Wrap(fault.Query, "extract", err)
	}

	res := &RawResult{Columns: cols}
	for rows.Next() {
		values := make([]interface{}, len(cols))
		ptrs := make([]interface{}, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fault.Wrap(fault.Query, "extract", err)
		}
		row := make(map[string]interface{}, len(cols))
		for i, col := range cols {
			if b, ok := values[i].([]byte); ok {
				row[col] = string(b)
			} else {
				row[col] = values[i]
			}
		}
		res.Rows = append(res.Rows, row)
	}
	if err := rows.Err(); err != nil {
		// no partial results: the whole extraction is discarded
		return nil, fault.Wrap(fault.Query, "extract", err)
	}
	return res, nil
}
