package services

import (
	"context"
	"errors"
	"time"

	"github.com/minio/minio-go/v7"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

type fakeObjectStore struct {
	info    minio.ObjectInfo
	statErr error
	gets    int
}

func (f *fakeObjectStore) StatObject(_ context.Context, _, _ string, _ minio.StatObjectOptions) (minio.ObjectInfo, error) {
	return f.info, f.statErr
}

func (f *fakeObjectStore) GetObject(_ context.Context, _, _ string, _ minio.GetObjectOptions) (*minio.Object, error) {
	f.gets++
	return nil, errors.New("not reachable in tests")
}

var _ = Describe("MinIOSource internals", func() {
	It("should report object metadata", func() {
		modified := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
		store := &fakeObjectStore{info: minio.ObjectInfo{Size: 2048, ETag: "abc123", LastModified: modified, ContentType: "application/json"}}
		src := &MinIOSource{client: store, bucket: "models", object: "penguins/classifier.json"}

		metadata, err := src.Stat(context.Background())
		Expect(err).NotTo(HaveOccurred())
		Expect(metadata.Path).To(Equal("models/penguins/classifier.json"))
		Expect(metadata.Size).To(Equal(int64(2048)))
		Expect(metadata.ETag).To(Equal("abc123"))
		Expect(metadata.LastModified).To(Equal(modified))
	})

	It("should not fetch the object when stat fails", func() {
		store := &fakeObjectStore{statErr: errors.New("The specified key does not exist.")}
		src := &MinIOSource{client: store, bucket: "models", object: "classifier.json"}

		_, err := src.Open(context.Background())
		Expect(err).To(MatchError(ContainSubstring("stat object minio://models/classifier.json")))
		Expect(store.gets).To(BeZero())
	})

	It("should surface fetch errors", func() {
		store := &fakeObjectStore{info: minio.ObjectInfo{Size: 10}}
		src := &MinIOSource{client: store, bucket: "models", object: "classifier.json"}

		_, err := src.Open(context.Background())
		Expect(err).To(MatchError(ContainSubstring("get object")))
		Expect(store.gets).To(Equal(1))
	})
})
