package starter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io/fs"
	"path"
	"strings"
	"sync"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/sync/errgroup"
)

// resourceWorkers bounds concurrent file decodes in LoadResources.
const resourceWorkers = 8

// LoadResources reads every file under dir in fsys and decodes it by
// extension: .json to the value encoding/json produces for any, .png, .jpg
// and .jpeg to *image.NRGBA, anything else to its raw bytes. Keys are paths
// relative to dir with a leading slash, such as "/img/tiles.png".
//
// The first failure cancels the remaining work and is returned.
func LoadResources(ctx context.Context, fsys fs.FS, dir string) (map[string]any, error) {
	var files []string
	err := fs.WalkDir(fsys, dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("load resources: %w", err)
	}

	var (
		mu  sync.Mutex
		out = make(map[string]any, len(files))
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(resourceWorkers)
	for _, p := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			v, err := loadResource(fsys, p)
			if err != nil {
				return fmt.Errorf("load resources: %s: %w", p, err)
			}
			mu.Lock()
			out[resourceKey(dir, p)] = v
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func resourceKey(dir, p string) string {
	if dir == "." {
		return "/" + p
	}
	return "/" + strings.TrimPrefix(p, dir+"/")
}

func loadResource(fsys fs.FS, p string) (any, error) {
	data, err := fs.ReadFile(fsys, p)
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(path.Ext(p)) {
	case ".json":
		var v any
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, err
		}
		return v, nil
	case ".png", ".jpg", ".jpeg":
		img, _, err := image.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		return toNRGBA(img), nil
	default:
		return data, nil
	}
}

// toNRGBA returns img as an *image.NRGBA whose bounds start at the origin.
func toNRGBA(img image.Image) *image.NRGBA {
	if n, ok := img.(*image.NRGBA); ok && n.Rect.Min == (image.Point{}) {
		return n
	}
	b := img.Bounds()
	out := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	xdraw.Copy(out, image.Point{}, img, b, xdraw.Src, nil)
	return out
}
