// Package storage wraps the MinIO client used to archive raw upstream payloads.
//
// Any S3-compatible service works. Client covers only the calls the archive
// makes; storage/mocks provides a testify mock of it.
package storage
