package services

import (
	"archive/zip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/agrisight/agrisight-backend/internal/logger"
	"github.com/agrisight/agrisight-backend/internal/repos"
	"github.com/agrisight/agrisight-backend/internal/types"
)

const datasetFetchTimeout = 120 * time.Second

var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

type DatasetMeta struct {
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description"`
	Source      *string `json:"source"`
}

type DatasetDetail struct {
	Dataset *types.Dataset       `json:"dataset"`
	Items   []*types.DatasetItem `json:"items"`
}

type DatasetService interface {
	// Upload ingests an on-disk ZIP archive. There is no transaction
	// boundary: a failure mid-extraction or mid-walk leaves the created
	// Dataset row behind with empty stats, and callers recover by
	// re-ingesting into a fresh dataset rather than repairing this one.
	Upload(ctx context.Context, meta DatasetMeta, zipPath string) (*types.Dataset, error)
	ImportFromURL(ctx context.Context, meta DatasetMeta, url string) (*types.Dataset, error)
	List(ctx context.Context) ([]*types.Dataset, error)
	Get(ctx context.Context, id uuid.UUID) (*DatasetDetail, error)
}

type datasetService struct {
	log         *logger.Logger
	datasetRepo repos.DatasetRepo
	itemRepo    repos.DatasetItemRepo
	uploadsDir  string
	httpClient  *http.Client
}

func NewDatasetService(log *logger.Logger, datasetRepo repos.DatasetRepo, itemRepo repos.DatasetItemRepo, uploadsDir string) DatasetService {
	return &datasetService{
		log:         log.With("service", "DatasetService"),
		datasetRepo: datasetRepo,
		itemRepo:    itemRepo,
		uploadsDir:  uploadsDir,
		httpClient:  &http.Client{Timeout: datasetFetchTimeout},
	}
}

func (ds *datasetService) Upload(ctx context.Context, meta DatasetMeta, zipPath string) (*types.Dataset, error) {
	emptyClasses, _ := json.Marshal([]string{})
	created, err := ds.datasetRepo.Create(ctx, nil, &types.Dataset{
		ID:          uuid.New(),
		Name:        meta.Name,
		Description: meta.Description,
		Source:      meta.Source,
		Classes:     emptyClasses,
		ImageCount:  0,
	})
	if err != nil {
		return nil, fmt.Errorf("create dataset record: %w", err)
	}

	extractDir := filepath.Join(ds.uploadsDir, "datasets", created.ID.String())
	if err := os.MkdirAll(extractDir, 0o755); err != nil {
		return nil, fmt.Errorf("create extraction dir: %w", err)
	}

	if err := extractZip(zipPath, extractDir); err != nil {
		return nil, fmt.Errorf("extract archive: %w", err)
	}

	items, labels, err := ds.indexImages(created.ID, extractDir)
	if err != nil {
		return nil, fmt.Errorf("index extracted images: %w", err)
	}

	if _, err := ds.itemRepo.CreateMany(ctx, nil, items); err != nil {
		return nil, fmt.Errorf("store dataset items: %w", err)
	}

	classesJSON, err := json.Marshal(labels)
	if err != nil {
		return nil, fmt.Errorf("encode class labels: %w", err)
	}
	if err := ds.datasetRepo.UpdateStats(ctx, nil, created.ID, classesJSON, len(items)); err != nil {
		return nil, fmt.Errorf("update dataset stats: %w", err)
	}

	created.Classes = classesJSON
	created.ImageCount = len(items)
	ds.log.Info("Dataset ingested", "dataset_id", created.ID, "images", len(items), "classes", len(labels))
	return created, nil
}

// indexImages walks the extracted tree and records every image file. The
// label is the first path element under the extraction root; top-level files
// carry no label.
func (ds *datasetService) indexImages(datasetID uuid.UUID, extractDir string) ([]*types.DatasetItem, []string, error) {
	labelSet := map[string]bool{}
	var items []*types.DatasetItem

	err := filepath.WalkDir(extractDir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if !imageExtensions[strings.ToLower(filepath.Ext(d.Name()))] {
			return nil
		}
		rel, err := filepath.Rel(extractDir, path)
		if err != nil {
			return err
		}
		item := &types.DatasetItem{
			ID:        uuid.New(),
			DatasetID: datasetID,
			ImagePath: filepath.ToSlash(filepath.Join("datasets", datasetID.String(), rel)),
		}
		parts := strings.Split(filepath.ToSlash(rel), "/")
		if len(parts) > 1 {
			label := parts[0]
			item.Label = &label
			labelSet[label] = true
		}
		items = append(items, item)
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	labels := make([]string, 0, len(labelSet))
	for l := range labelSet {
		labels = append(labels, l)
	}
	sort.Strings(labels)
	return items, labels, nil
}

func (ds *datasetService) ImportFromURL(ctx context.Context, meta DatasetMeta, url string) (*types.Dataset, error) {
	tmpDir := filepath.Join(ds.uploadsDir, "datasets", "tmp")
	if err := os.MkdirAll(tmpDir, 0o755); err != nil {
		return nil, fmt.Errorf("create temp dir: %w", err)
	}

	tmpFile, err := os.CreateTemp(tmpDir, "import-*.zip")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		if err := os.Remove(tmpPath); err != nil && !os.IsNotExist(err) {
			ds.log.Warn("Failed to cleanup staged archive", "path", tmpPath, "error", err)
		}
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		tmpFile.Close()
		return nil, fmt.Errorf("build fetch request: %w", err)
	}
	resp, err := ds.httpClient.Do(req)
	if err != nil {
		tmpFile.Close()
		return nil, fmt.Errorf("fetch dataset archive: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		tmpFile.Close()
		return nil, fmt.Errorf("fetch dataset archive: status %d", resp.StatusCode)
	}

	if _, err := io.Copy(tmpFile, resp.Body); err != nil {
		tmpFile.Close()
		return nil, fmt.Errorf("stage dataset archive: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return nil, fmt.Errorf("flush staged archive: %w", err)
	}

	return ds.Upload(ctx, meta, tmpPath)
}

func (ds *datasetService) List(ctx context.Context) ([]*types.Dataset, error) {
	return ds.datasetRepo.List(ctx, nil)
}

func (ds *datasetService) Get(ctx context.Context, id uuid.UUID) (*DatasetDetail, error) {
	dataset, err := ds.datasetRepo.GetByID(ctx, nil, id)
	if err != nil {
		return nil, err
	}
	if dataset == nil {
		return nil, nil
	}
	items, err := ds.itemRepo.ListByDatasetID(ctx, nil, id, 100)
	if err != nil {
		return nil, err
	}
	return &DatasetDetail{Dataset: dataset, Items: items}, nil
}

func extractZip(zipPath, destDir string) error {
	reader, err := zip.OpenReader(zipPath)
	if err != nil {
		return err
	}
	defer reader.Close()

	for _, f := range reader.File {
		target := filepath.Join(destDir, filepath.FromSlash(f.Name))
		// Reject entries that escape the extraction root.
		if !strings.HasPrefix(filepath.Clean(target), filepath.Clean(destDir)+string(os.PathSeparator)) {
			return fmt.Errorf("archive entry escapes extraction dir: %s", f.Name)
		}
		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0o755); err != nil {
				return err
			}
			continue
		}
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return err
		}
		src, err := f.Open()
		if err != nil {
			return err
		}
		dst, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, f.Mode())
		if err != nil {
			src.Close()
			return err
		}
		_, copyErr := io.Copy(dst, src)
		src.Close()
		if closeErr := dst.Close(); copyErr == nil {
			copyErr = closeErr
		}
		if copyErr != nil {
			return copyErr
		}
	}
	return nil
}
