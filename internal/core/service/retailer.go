package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

var ErrUnsupportedFile = errors.New("unsupported catalog file type")

// RetailerFlow covers the retailer management surface: bulk catalog
// ingestion pass-through with a typed report.
type RetailerFlow struct {
	uploader port.BulkUploader
}

func NewRetailerFlow(uploader port.BulkUploader) RetailerFlow {
	return RetailerFlow{uploader}
}

// BulkUpload forwards a CSV or XLSX catalog file to the upstream. Only
// the file extension is validated locally, row-level errors come back in
// the report.
func (f RetailerFlow) BulkUpload(
	ctx context.Context, retailerID, filename string, file io.Reader,
) (domain.BulkUploadReport, error) {
	const op = "RetailerFlow.BulkUpload"

	if err := ctx.Err(); err != nil {
		return domain.BulkUploadReport{}, fmt.Errorf("%s: %w", op, err)
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv", ".xlsx":
	default:
		return domain.BulkUploadReport{}, fmt.Errorf(
			"%s: %w: %s", op, ErrUnsupportedFile, filename,
		)
	}

	report, err := f.uploader.BulkUpload(ctx, retailerID, filename, file)
	if err != nil {
		return domain.BulkUploadReport{}, fmt.Errorf("%s: %w", op, err)
	}
	return report, nil
}
