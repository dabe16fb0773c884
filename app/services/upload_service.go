package services

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/repwear/pkg/logger"
	"github.com/shashiranjanraj/repwear/pkg/storage"
	"github.com/shashiranjanraj/repwear/pkg/workerpool"
)

// Upload limits.
const (
	MaxUploadBytes  = 5 << 20 // 5 MB per file
	MaxBannerCount  = 8
	MaxMemoryBuffer = 10 << 20
)

var (
	ErrFileTooLarge    = errors.New("file exceeds the 5MB size limit")
	ErrTooManyFiles    = fmt.Errorf("too many files; at most %d banners per color", MaxBannerCount)
	ErrUnsupportedType = errors.New("unsupported file type; only jpeg, png, webp, and gif images are accepted")
	ErrNoFile          = errors.New("no file provided")
)

var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

// UploadResult is the stored location of one uploaded file.
type UploadResult struct {
	Path string `json:"path"`
	URL  string `json:"url"`
}

// UploadService stores validated images on the configured disk. Banner
// sets are uploaded concurrently through the shared worker pool.
type UploadService struct {
	disk storage.Disk
	pool *workerpool.Pool
}

func NewUploadService(disk storage.Disk, pool *workerpool.Pool) *UploadService {
	return &UploadService{disk: disk, pool: pool}
}

// UploadOne validates and stores a single multipart file under dir.
func (s *UploadService) UploadOne(fh *multipart.FileHeader, dir string) (*UploadResult, error) {
	if fh == nil {
		return nil, ErrNoFile
	}
	data, ext, err := readImage(fh)
	if err != nil {
		return nil, err
	}

	path := fmt.Sprintf("%s/%s%s", strings.Trim(dir, "/"), primitive.NewObjectID().Hex(), ext)
	if err := s.disk.Put(path, data); err != nil {
		return nil, err
	}

	return &UploadResult{Path: path, URL: s.disk.URL(path)}, nil
}

// UploadBanners validates and stores a banner set concurrently. The
// whole batch is validated before any byte is written, so a bad file
// rejects the request without leaving partial uploads behind.
func (s *UploadService) UploadBanners(files []*multipart.FileHeader, dir string) ([]UploadResult, error) {
	if len(files) == 0 {
		return nil, ErrNoFile
	}
	if len(files) > MaxBannerCount {
		return nil, ErrTooManyFiles
	}

	type staged struct {
		data []byte
		path string
	}
	batch := make([]staged, len(files))
	for i, fh := range files {
		data, ext, err := readImage(fh)
		if err != nil {
			return nil, err
		}
		batch[i] = staged{
			data: data,
			path: fmt.Sprintf("%s/%s%s", strings.Trim(dir, "/"), primitive.NewObjectID().Hex(), ext),
		}
	}

	results := make([]UploadResult, len(batch))
	errs := make([]error, len(batch))

	var wg sync.WaitGroup
	for i := range batch {
		i := i
		wg.Add(1)
		submit := func() {
			defer wg.Done()
			if err := s.disk.Put(batch[i].path, batch[i].data); err != nil {
				errs[i] = err
				return
			}
			results[i] = UploadResult{Path: batch[i].path, URL: s.disk.URL(batch[i].path)}
		}
		if err := s.pool.SubmitWait(submit); err != nil {
			wg.Done()
			errs[i] = err
		}
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			// Best-effort cleanup of the siblings that did land.
			for _, r := range results {
				if r.Path != "" {
					_ = s.disk.Delete(r.Path)
				}
			}
			logger.Error("upload: banner batch failed", "index", i, "error", err)
			return nil, err
		}
	}
	return results, nil
}

// readImage enforces the size limit and sniffs the content type from
// the first bytes rather than trusting the client header.
func readImage(fh *multipart.FileHeader) ([]byte, string, error) {
	if fh.Size > MaxUploadBytes {
		return nil, "", ErrFileTooLarge
	}

	f, err := fh.Open()
	if err != nil {
		return nil, "", err
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, MaxUploadBytes+1))
	if err != nil {
		return nil, "", err
	}
	if len(data) > MaxUploadBytes {
		return nil, "", ErrFileTooLarge
	}
	if len(data) == 0 {
		return nil, "", ErrNoFile
	}

	contentType := http.DetectContentType(data)
	ext, ok := allowedImageTypes[contentType]
	if !ok {
		return nil, "", ErrUnsupportedType
	}

	// Keep the original extension when it agrees with the sniffed type.
	if orig := strings.ToLower(filepath.Ext(fh.Filename)); orig == ext || (ext == ".jpg" && orig == ".jpeg") {
		ext = orig
	}

	return data, ext, nil
}
