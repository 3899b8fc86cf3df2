package storage

import (
	"fmt"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go-leaveco/internal/shared/apperror"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const MaxAttachmentSize = 10 << 20 // 10 MB

var (
	ErrAttachmentTooLarge = apperror.New(
		apperror.CodeInvalidInput,
		"attachment exceeds the 10 MB limit",
		http.StatusBadRequest,
	)
	ErrAttachmentNotPDF = apperror.New(
		apperror.CodeInvalidInput,
		"attachment must be a PDF document",
		http.StatusBadRequest,
	)
	ErrStorageWrite = apperror.New(
		apperror.CodeStorageError,
		"failed to store attachment",
		http.StatusInternalServerError,
	)
)

//go:generate mockgen -source=storage.go -destination=mock/storage_mock.go -package=mock
type Store interface {
	// SaveAttachment persists the uploaded proof document and returns the
	// stored path reference. Only the path is kept on the claim row.
	SaveAttachment(employeeID string, file *multipart.FileHeader) (string, error)
	Remove(path string) error
}

type localStore struct {
	baseDir string
	logger  *zap.Logger
}

func NewLocalStore(baseDir string, logger ...*zap.Logger) Store {
	l := zap.L().Named("storage.local")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("storage.local")
	}
	if baseDir == "" {
		baseDir = "uploads"
	}
	return &localStore{baseDir: baseDir, logger: l}
}

func (s *localStore) SaveAttachment(employeeID string, file *multipart.FileHeader) (string, error) {
	if file.Size > MaxAttachmentSize {
		return "", ErrAttachmentTooLarge
	}
	if !strings.EqualFold(filepath.Ext(file.Filename), ".pdf") {
		return "", ErrAttachmentNotPDF
	}

	dir := filepath.Join(s.baseDir, "change_off", employeeID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		s.logger.Error("create attachment dir failed", zap.String("dir", dir), zap.Error(err))
		return "", apperror.Wrap(err, apperror.CodeStorageError, "failed to store attachment", http.StatusInternalServerError)
	}

	name := fmt.Sprintf("%s_%s.pdf", time.Now().UTC().Format("20060102150405"), uuid.NewString()[:8])
	dst := filepath.Join(dir, name)

	src, err := file.Open()
	if err != nil {
		return "", apperror.Wrap(err, apperror.CodeStorageError, "failed to store attachment", http.StatusInternalServerError)
	}
	defer src.Close()

	out, err := os.Create(dst)
	if err != nil {
		s.logger.Error("create attachment file failed", zap.String("path", dst), zap.Error(err))
		return "", apperror.Wrap(err, apperror.CodeStorageError, "failed to store attachment", http.StatusInternalServerError)
	}
	defer out.Close()

	if _, err := out.ReadFrom(src); err != nil {
		// Partial writes are cleaned up so the claim never points at garbage.
		_ = os.Remove(dst)
		s.logger.Error("write attachment failed", zap.String("path", dst), zap.Error(err))
		return "", apperror.Wrap(err, apperror.CodeStorageError, "failed to store attachment", http.StatusInternalServerError)
	}

	return dst, nil
}

func (s *localStore) Remove(path string) error {
	if path == "" {
		return nil
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		s.logger.Warn("remove attachment failed", zap.String("path", path), zap.Error(err))
		return err
	}
	return nil
}
