package services

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"io"
	"mime/multipart"
	"path/filepath"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"github.com/nfnt/resize"

	"github.com/Gupta-Developer/earnbyapps/config"
)

const MaxImageFileSize = 5 * 1024 * 1024 // 5 MB

// MediaService uploads task artwork (icons, banners) to S3. Images are
// square-cropped and a thumbnail rendition is stored next to the full size.
type MediaService interface {
	UploadTaskImage(file *multipart.FileHeader, folder string) (string, error)
}

type mediaService struct {
	Config *config.Config
	client *s3.Client
}

func NewMediaService(conf *config.Config) (MediaService, error) {
	cfg, err := awsConfig.LoadDefaultConfig(context.Background(),
		awsConfig.WithRegion(conf.AwsRegion),
		awsConfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			conf.AwsAccessKeyID,
			conf.AwsSecretAccessKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("unable to load SDK config, %v", err)
	}

	return &mediaService{
		Config: conf,
		client: s3.NewFromConfig(cfg),
	}, nil
}

func checkSupportedImage(filename string) (bool, string) {
	supported := map[string]bool{
		".png":  true,
		".jpeg": true,
		".jpg":  true,
	}
	ext := filepath.Ext(filename)
	return supported[ext], ext
}

func generateUniqueFilename(extension string) string {
	return fmt.Sprintf("%d_%s%s", time.Now().UnixNano(), uuid.New(), extension)
}

func (m *mediaService) UploadTaskImage(fileHeader *multipart.FileHeader, folder string) (string, error) {
	if fileHeader.Size > MaxImageFileSize {
		return "", fmt.Errorf("file size exceeds limit of %d bytes", MaxImageFileSize)
	}
	supported, _ := checkSupportedImage(fileHeader.Filename)
	if !supported {
		return "", fmt.Errorf("unsupported file type: %s", fileHeader.Filename)
	}

	file, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open file: %v", err)
	}
	defer file.Close()

	fileBytes, err := io.ReadAll(file)
	if err != nil {
		return "", fmt.Errorf("failed to read file content: %v", err)
	}

	img, _, err := image.Decode(bytes.NewReader(fileBytes))
	if err != nil {
		return "", fmt.Errorf("failed to decode image: %v", err)
	}

	// Square primary rendition plus a small thumbnail, both jpeg.
	fullImg := imaging.Fill(img, 512, 512, imaging.Center, imaging.Lanczos)
	thumbImg := resize.Thumbnail(161, 161, img, resize.Lanczos3)

	fullKey := filepath.Join("tasks", folder, generateUniqueFilename(".jpg"))
	thumbKey := filepath.Join("tasks", folder, "thumbnails", generateUniqueFilename(".jpg"))

	fullURL, err := m.putJPEG(fullImg, fullKey)
	if err != nil {
		return "", err
	}
	if _, err := m.putJPEG(thumbImg, thumbKey); err != nil {
		return "", err
	}

	return fullURL, nil
}

func (m *mediaService) putJPEG(img image.Image, key string) (string, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, nil); err != nil {
		return "", fmt.Errorf("failed to encode image: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*30)
	defer cancel()

	_, err := m.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(m.Config.AwsBucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(buf.Bytes()),
		ContentType: aws.String("image/jpeg"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload file to S3: %v", err)
	}

	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", m.Config.AwsBucket, m.Config.AwsRegion, key), nil
}
