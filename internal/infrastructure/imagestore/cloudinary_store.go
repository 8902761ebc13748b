package imagestore

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/drovo/drovo-service/internal/config"
	"github.com/drovo/drovo-service/internal/domain"
)

const uploadTransformation = "c_limit,w_800,h_800,q_auto,dpr_auto/f_auto"

type CloudinaryStore struct {
	cld *cloudinary.Cloudinary
}

func NewCloudinaryStore(cfg config.Cloudinary) (*CloudinaryStore, error) {
	cld, err := cloudinary.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	if err != nil {
		return nil, fmt.Errorf("init cloudinary: %w", err)
	}
	return &CloudinaryStore{cld: cld}, nil
}

func (s *CloudinaryStore) Upload(ctx context.Context, image io.Reader, folder string) (string, error) {
	res, err := s.cld.Upload.Upload(ctx, image, uploader.UploadParams{
		Folder:         folder,
		Transformation: uploadTransformation,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrImageStore, err)
	}
	if res.Error.Message != "" {
		return "", fmt.Errorf("%w: %s", domain.ErrImageStore, res.Error.Message)
	}
	return res.SecureURL, nil
}

func (s *CloudinaryStore) Delete(ctx context.Context, imageURL string) error {
	publicID, err := PublicIDFromURL(imageURL)
	if err != nil {
		return err
	}
	res, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrImageStore, err)
	}
	if res.Error.Message != "" {
		return fmt.Errorf("%w: %s", domain.ErrImageStore, res.Error.Message)
	}
	return nil
}

// PublicIDFromURL extracts the asset id from a delivery URL: the path after
// "upload/", minus an optional version segment and the file extension.
func PublicIDFromURL(imageURL string) (string, error) {
	u, err := url.Parse(imageURL)
	if err != nil {
		return "", fmt.Errorf("%w: parse url: %v", domain.ErrImageStore, err)
	}
	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	uploadIdx := -1
	for i, p := range parts {
		if p == "upload" {
			uploadIdx = i
			break
		}
	}
	if uploadIdx == -1 || uploadIdx == len(parts)-1 {
		return "", fmt.Errorf("%w: not an upload url: %s", domain.ErrImageStore, imageURL)
	}

	rest := parts[uploadIdx+1:]
	if isVersion(rest[0]) && len(rest) > 1 {
		rest = rest[1:]
	}
	id := strings.Join(rest, "/")
	return strings.TrimSuffix(id, path.Ext(id)), nil
}

func isVersion(segment string) bool {
	if len(segment) < 2 || segment[0] != 'v' {
		return false
	}
	for _, c := range segment[1:] {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
