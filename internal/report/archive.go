package report

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"landscapecore/internal/blob"
	"landscapecore/internal/core"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Archive renders the current session as a workbook and stores it in the
// archive under a dated, uniquely-keyed path. Returns the stored object's
// info.
func Archive(ctx context.Context, store blob.Store, svc *core.Service, now time.Time) (blob.Info, error) {
	payload, err := WorkbookBytes(Build(svc))
	if err != nil {
		return blob.Info{}, err
	}
	key := fmt.Sprintf("reports/%s/%s.xlsx", now.Format("2006-01-02"), uuid.NewString())
	meta := map[string]string{}
	if wc, ok := svc.Context(); ok {
		if wc.Country != "" {
			meta["country"] = wc.Country
		}
		if wc.GroupName != "" {
			meta["group"] = wc.GroupName
		}
	}
	info, err := store.Put(ctx, key, bytes.NewReader(payload), blob.PutOptions{
		ContentType: xlsxContentType,
		Metadata:    meta,
	})
	if err != nil {
		return blob.Info{}, fmt.Errorf("archive report: %w", err)
	}
	return info, nil
}
