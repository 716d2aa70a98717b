// Package storage 封装S3兼容的对象存储，负责Blob的上传与删除。
// 文件元数据记录由internal/repository维护，不归本包管。
package storage

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"classboard/config"
)

// Store 对象存储接口。onProgress在上传期间收到单调不减的百分比（0-100），
// 可以为nil表示不关心进度。
type Store interface {
	Upload(ctx context.Context, key string, r io.Reader, size int64, contentType string, onProgress func(percent int)) (string, error)
	Delete(ctx context.Context, key string) error
}

// S3Store 基于AWS S3 API的对象存储实现，兼容MinIO等自建服务
type S3Store struct {
	client  *s3.Client
	bucket  string
	region  string
	baseURL string
}

// NewS3Store 创建对象存储客户端
func NewS3Store(ctx context.Context, cfg config.StorageConfig) (*S3Store, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey, cfg.SecretKey, "")))
	if err != nil {
		return nil, fmt.Errorf("加载存储配置失败: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			// 自建S3服务通常只支持路径风格的访问
			o.UsePathStyle = true
		}
	})

	return &S3Store{
		client:  client,
		bucket:  cfg.Bucket,
		region:  cfg.Region,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
	}, nil
}

// Upload 上传对象并返回可访问的URL
func (s *S3Store) Upload(ctx context.Context, key string, r io.Reader, size int64, contentType string, onProgress func(int)) (string, error) {
	body := &progressReader{r: r, total: size, onProgress: onProgress}

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          body,
		ContentLength: aws.Int64(size),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		return "", err
	}

	return s.ObjectURL(key), nil
}

// Delete 删除对象
func (s *S3Store) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	return err
}

// ObjectURL 构造对象的下载地址
func (s *S3Store) ObjectURL(key string) string {
	if s.baseURL != "" {
		return fmt.Sprintf("%s/%s/%s", s.baseURL, s.bucket, key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key)
}

// progressReader 包装上传读取流，按读取进度回调百分比。
// 回调值单调不减，最大100；总大小未知时不回调。
type progressReader struct {
	r          io.Reader
	total      int64
	read       int64
	last       int
	onProgress func(int)
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	if n > 0 {
		p.read += int64(n)
		p.report()
	}
	return n, err
}

func (p *progressReader) report() {
	if p.onProgress == nil || p.total <= 0 {
		return
	}
	pct := int(p.read * 100 / p.total)
	if pct > 100 {
		pct = 100
	}
	if pct > p.last {
		p.last = pct
		p.onProgress(pct)
	}
}
