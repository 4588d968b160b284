// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client to provide a simplified interface for common operations
// like checking bucket existence, uploading files, and removing objects. This abstraction
// supports both AWS S3 and self-hosted MinIO instances.
//
// The circuit features use it to keep binary payloads out of the database:
// contract documents uploaded by operators and path archives (KMZ and similar)
// fetched from carrier APIs.
//
// # Client Interface
//
// The Client interface abstracts the underlying storage provider, making it easier
// to mock storage interactions for unit testing (as seen in core/storage/mocks).
//
// # Operations
//
//   - BucketExists: Verifies access to the target bucket.
//   - MakeBucket: Creates a new bucket if needed.
//   - PutObject: Uploads content (with size and options).
//   - GetObject: Retrieves content as a stream.
//   - RemoveObject: Deletes a stored object.
//
// EnsureBucket combines the first two: features call it at load time so a
// fresh deployment gets its bucket before the first upload.
//
// # Usage
//
//	client, err := storage.NewClient(config)
//	err = storage.EnsureBucket(ctx, client, "circuits")
package storage
