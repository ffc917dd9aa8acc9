package restapi

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

var _ port.BulkUploader = (*Client)(nil)

type bulkReportPayload struct {
	TotalRows  int      `json:"total_rows"`
	AddedCount int      `json:"added_count"`
	ErrorCount int      `json:"error_count"`
	Errors     []string `json:"errors"`
}

// BulkUpload streams a retailer catalog file (CSV/XLSX) upstream and
// returns the ingestion report.
func (c Client) BulkUpload(
	ctx context.Context, retailerID, filename string, file io.Reader,
) (domain.BulkUploadReport, error) {
	const op = "Client.BulkUpload"

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	fw, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return domain.BulkUploadReport{}, fmt.Errorf("%s: %w", op, err)
	}
	if _, err := io.Copy(fw, file); err != nil {
		return domain.BulkUploadReport{}, fmt.Errorf("%s: %w", op, err)
	}
	if err := mw.Close(); err != nil {
		return domain.BulkUploadReport{}, fmt.Errorf("%s: %w", op, err)
	}

	path := "/retailers/" + retailerID + "/products/bulk-upload"
	var p bulkReportPayload
	err = c.postMultipart(ctx, path, mw.FormDataContentType(), &buf, &p)
	if err != nil {
		return domain.BulkUploadReport{}, fmt.Errorf("%s: %w", op, err)
	}

	return domain.BulkUploadReport{
		TotalRows:  p.TotalRows,
		AddedCount: p.AddedCount,
		ErrorCount: p.ErrorCount,
		Errors:     p.Errors,
	}, nil
}
