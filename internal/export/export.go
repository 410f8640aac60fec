// Package export dumps the Bridges collection as newline-delimited JSON by
// walking it page by page with forward cursors.
package export

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/gogotex/bridges/internal/bridge"
	"github.com/gogotex/bridges/internal/bridge/pager"
	"github.com/gogotex/bridges/internal/bridge/service"
	"github.com/gogotex/bridges/pkg/logger"
)

const ContentType = "application/x-ndjson"

type Options struct {
	PageSize int // defaults to pager.MaxLimit
	Sort     pager.Sort
}

type Stats struct {
	Records int
	Pages   int
}

// Uploader stores an object body. *storage.MinIOStorage satisfies it.
type Uploader interface {
	UploadFile(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error
}

// Write streams every record to w, one JSON object per line, in opts.Sort
// order.
func Write(ctx context.Context, env *service.Env, w io.Writer, opts Options) (Stats, error) {
	size := opts.PageSize
	if size <= 0 {
		size = pager.MaxLimit
	}
	enc := json.NewEncoder(w)
	var st Stats
	params := bridge.ListParams{Limit: &size, Sort: opts.Sort}
	for {
		page, err := service.List(ctx, env, params)
		if err != nil {
			return st, fmt.Errorf("export page %d: %w", st.Pages+1, err)
		}
		st.Pages++
		for _, b := range page.Data {
			if err := enc.Encode(b); err != nil {
				return st, err
			}
			st.Records++
		}
		logger.Debugf("export: page %d, %d records so far", st.Pages, st.Records)
		if page.Meta.After == nil {
			return st, nil
		}
		params.After = *page.Meta.After
	}
}

// Key names a snapshot object after its creation time.
func Key(now time.Time) string {
	return "bridges/" + now.UTC().Format("2006-01-02T15-04-05Z") + ".ndjson"
}

// Snapshot exports the collection and uploads it under Key(now).
func Snapshot(ctx context.Context, env *service.Env, up Uploader, opts Options, now time.Time) (string, Stats, error) {
	var buf bytes.Buffer
	st, err := Write(ctx, env, &buf, opts)
	if err != nil {
		return "", st, err
	}
	key := Key(now)
	if err := up.UploadFile(ctx, key, &buf, int64(buf.Len()), ContentType); err != nil {
		return "", st, fmt.Errorf("upload %s: %w", key, err)
	}
	logger.Infof("export: uploaded %d records to %s", st.Records, key)
	return key, st, nil
}
