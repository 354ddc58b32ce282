package importer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"path"
	"time"

	"dummy-importer/core/dummyapi"
	"dummy-importer/core/storage"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// ArchivingClient stores every non-empty upstream payload in object storage
// before handing it to the caller. Archive failures are logged only.
type ArchivingClient struct {
	next   dummyapi.Client
	store  storage.Client
	bucket string
	prefix string
	logger *zap.Logger
	now    func() time.Time
}

// NewArchivingClient wraps next.
func NewArchivingClient(next dummyapi.Client, store storage.Client, bucket, prefix string, logger *zap.Logger) *ArchivingClient {
	return &ArchivingClient{
		next:   next,
		store:  store,
		bucket: bucket,
		prefix: prefix,
		logger: logger,
		now:    time.Now,
	}
}

// Fetch implements dummyapi.Client.
func (a *ArchivingClient) Fetch(ctx context.Context, resource string, limit, skip int) dummyapi.Payload {
	payload := a.next.Fetch(ctx, resource, limit, skip)
	if payload.Empty() {
		return payload
	}

	key := ObjectKey(a.prefix, resource, a.now())
	if err := a.put(ctx, key, payload); err != nil {
		a.logger.Warn("Failed to archive payload",
			zap.String("bucket", a.bucket),
			zap.String("key", key),
			zap.Error(err),
		)
	}
	return payload
}

func (a *ArchivingClient) put(ctx context.Context, key string, payload dummyapi.Payload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode payload: %w", err)
	}

	_, err = a.store.PutObject(ctx, a.bucket, key, bytes.NewReader(body), int64(len(body)), minio.PutObjectOptions{
		ContentType: "application/json",
	})
	return err
}

// ObjectKey returns {prefix}/{resource}/{timestamp}.json for a payload fetched at t.
func ObjectKey(prefix, resource string, t time.Time) string {
	stamp := t.UTC().Format("20060102T150405.000000000") + "Z"
	return path.Join(prefix, resource, stamp+".json")
}
