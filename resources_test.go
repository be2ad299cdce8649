package starter

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"testing"
	"testing/fstest"
)

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestLoadResources(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	src.SetNRGBA(1, 0, color.NRGBA{R: 10, G: 20, B: 30, A: 255})
	fsys := fstest.MapFS{
		"assets/level.json":    {Data: []byte(`{"name":"one","size":[3,4]}`)},
		"assets/img/tiles.png": {Data: encodePNG(t, src)},
		"assets/readme.txt":    {Data: []byte("hello")},
		"other/ignored.txt":    {Data: []byte("x")},
	}

	res, err := LoadResources(context.Background(), fsys, "assets")
	if err != nil {
		t.Fatal(err)
	}
	if len(res) != 3 {
		t.Fatalf("loaded %d resources, want 3: %v", len(res), res)
	}

	level, ok := res["/level.json"].(map[string]any)
	if !ok || level["name"] != "one" {
		t.Errorf("/level.json = %#v", res["/level.json"])
	}
	img, ok := res["/img/tiles.png"].(*image.NRGBA)
	if !ok {
		t.Fatalf("/img/tiles.png = %T", res["/img/tiles.png"])
	}
	if img.Bounds() != image.Rect(0, 0, 2, 1) {
		t.Errorf("bounds = %v", img.Bounds())
	}
	if got := img.NRGBAAt(1, 0); got != (color.NRGBA{10, 20, 30, 255}) {
		t.Errorf("pixel = %v", got)
	}
	if b, ok := res["/readme.txt"].([]byte); !ok || string(b) != "hello" {
		t.Errorf("/readme.txt = %#v", res["/readme.txt"])
	}
}

func TestLoadResourcesRoot(t *testing.T) {
	fsys := fstest.MapFS{"a.txt": {Data: []byte("a")}}
	res, err := LoadResources(context.Background(), fsys, ".")
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := res["/a.txt"]; !ok {
		t.Errorf("keys = %v", res)
	}
}

func TestLoadResourcesErrors(t *testing.T) {
	tests := []struct {
		name string
		fsys fstest.MapFS
		dir  string
	}{
		{"bad json", fstest.MapFS{"d/x.json": {Data: []byte("{")}}, "d"},
		{"bad image", fstest.MapFS{"d/x.png": {Data: []byte("not a png")}}, "d"},
		{"missing dir", fstest.MapFS{"d/x.txt": {Data: []byte("x")}}, "nope"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadResources(context.Background(), tt.fsys, tt.dir); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestLoadResourcesCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	fsys := fstest.MapFS{"d/x.txt": {Data: []byte("x")}}
	if _, err := LoadResources(ctx, fsys, "d"); err == nil {
		t.Error("expected error from canceled context")
	}
}

func TestToNRGBAOffset(t *testing.T) {
	src := image.NewRGBA(image.Rect(5, 5, 7, 6))
	src.Set(6, 5, color.RGBA{0, 0, 255, 255})
	out := toNRGBA(src)
	if out.Bounds() != image.Rect(0, 0, 2, 1) {
		t.Fatalf("bounds = %v", out.Bounds())
	}
	if got := out.NRGBAAt(1, 0); got != (color.NRGBA{0, 0, 255, 255}) {
		t.Errorf("pixel = %v", got)
	}
}
