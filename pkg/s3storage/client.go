// "Тупой" клиент: заливает готовые CSV в бакет, ничего про их содержимое не знает.

package s3storage

import (
	"context"
	"fmt"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/k00baPriv/Synthetic-Data-Generation/pkg/config"
)

// ClientInterface определяет интерфейс для S3 клиента.
// Используется для мокания в тестах и внедрения зависимостей.
type ClientInterface interface {
	UploadCSV(ctx context.Context, localPath string) (string, error)
	ListDatasets(ctx context.Context, prefix string) ([]StoredObject, error)
}

type Client struct {
	api    *minio.Client
	bucket string
	region string
}

// Проверка что Client реализует ClientInterface
var _ ClientInterface = (*Client)(nil)

// StoredObject - сырой объект из S3
type StoredObject struct {
	Key          string
	Size         int64
	LastModified time.Time
}

// New создает клиент, используя наш конфиг
func New(cfg config.S3Config) (*Client, error) {
	minioClient, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, err
	}

	return &Client{
		api:    minioClient,
		bucket: cfg.Bucket,
		region: cfg.Region,
	}, nil
}

// Bucket возвращает имя рабочего бакета (для логов и сообщений).
func (c *Client) Bucket() string {
	return c.bucket
}

// EnsureBucket проверяет существование бакета и создает его при отсутствии.
//
// Rule 11: context.Context propagation for cancellation support.
func (c *Client) EnsureBucket(ctx context.Context) error {
	exists, err := c.api.BucketExists(ctx, c.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket '%s': %w", c.bucket, err)
	}
	if exists {
		return nil
	}

	if err := c.api.MakeBucket(ctx, c.bucket, minio.MakeBucketOptions{Region: c.region}); err != nil {
		return fmt.Errorf("failed to create bucket '%s': %w", c.bucket, err)
	}
	return nil
}

// UploadCSV заливает локальный CSV файл в бакет и возвращает ключ объекта.
//
// Ключ строится как datasets/<дата>/<имя файла>: выгрузки группируются
// по дням, одноимённый файл в один день перезаписывается.
//
// Rule 11: context.Context propagation for cancellation support.
func (c *Client) UploadCSV(ctx context.Context, localPath string) (string, error) {
	objectName := path.Join("datasets", time.Now().Format("2006-01-02"), filepath.Base(localPath))

	_, err := c.api.FPutObject(ctx, c.bucket, objectName, localPath, minio.PutObjectOptions{
		ContentType: "text/csv",
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", localPath, err)
	}

	return objectName, nil
}

// ListDatasets возвращает выгруженные датасеты по префиксу.
//
// Пустой префикс возвращает всё содержимое бакета. Пустой бакет — не
// ошибка: свежее хранилище до первой выгрузки выглядит именно так.
func (c *Client) ListDatasets(ctx context.Context, prefix string) ([]StoredObject, error) {
	// Нормализация префикса (добавляем слеш, если это "папка")
	if !strings.HasSuffix(prefix, "/") && prefix != "" {
		prefix += "/"
	}

	var objects []StoredObject

	opts := minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
	}

	for obj := range c.api.ListObjects(ctx, c.bucket, opts) {
		if obj.Err != nil {
			return nil, obj.Err
		}
		// Пропускаем саму "папку"
		if obj.Key == prefix {
			continue
		}
		objects = append(objects, StoredObject{
			Key:          obj.Key,
			Size:         obj.Size,
			LastModified: obj.LastModified,
		})
	}

	return objects, nil
}
