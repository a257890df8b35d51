package upload

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
)

// ローカル保存（CLOUDINARY_URL未設定のときの開発用）。
// static/uploads配下に書いて /static/uploads/... のURLを返す。
type LocalStore struct {
	dir string
}

func NewLocalStore(dir string) *LocalStore {
	if dir == "" {
		dir = "static/uploads"
	}
	return &LocalStore{dir: dir}
}

func (s *LocalStore) Save(ctx context.Context, filename string, file io.Reader) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", err
	}

	//ファイル名の衝突を避けるためにタイムスタンプを付ける
	name := fmt.Sprintf("%d_%s", time.Now().UnixNano(), filepath.Base(filename))
	path := filepath.Join(s.dir, name)

	dst, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		return "", err
	}

	return "/" + filepath.ToSlash(path), nil
}
