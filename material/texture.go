package material

import (
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/blezek/tga"
	"github.com/h2non/filetype"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "github.com/oov/psd"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"

	"golang.org/x/image/draw"
)

// maxTextureDim bounds decoded texture size. GPU texture units on older
// hardware reject anything larger, so oversized images are scaled down.
const maxTextureDim = 4096

// Texture is a decoded base color image.
type Texture struct {
	Path  string
	Image image.Image
}

// TextureError reports an unreadable or unsupported image file.
type TextureError struct {
	Path string
	Err  error
}

func (e *TextureError) Error() string {
	return fmt.Sprintf("texture %s: %v", e.Path, e.Err)
}

func (e *TextureError) Unwrap() error { return e.Err }

// TextureCache decodes images once per path.
type TextureCache struct {
	textures map[string]*textureEntry
}

type textureEntry struct {
	tex *Texture
	err error
}

func NewTextureCache() *TextureCache {
	return &TextureCache{textures: map[string]*textureEntry{}}
}

// Load returns the cached texture for path, decoding it on first use.
// Failures are cached too and always reported as *TextureError.
func (c *TextureCache) Load(path string) (*Texture, error) {
	if t, ok := c.textures[path]; ok {
		return t.tex, t.err
	}
	t := &textureEntry{}
	t.tex, t.err = decodeTexture(path)
	c.textures[path] = t
	return t.tex, t.err
}

func decodeTexture(path string) (*Texture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &TextureError{Path: path, Err: err}
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil && strings.ToLower(filepath.Ext(path)) == ".tga" {
		// tga has no magic bytes, retry with the dedicated decoder
		f.Seek(0, io.SeekStart)
		img, err = tga.Decode(f)
	}
	if err != nil {
		return nil, &TextureError{Path: path, Err: describeDecodeError(f, err)}
	}
	return &Texture{Path: path, Image: shrinkToFit(img)}, nil
}

func shrinkToFit(img image.Image) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= maxTextureDim && h <= maxTextureDim {
		return img
	}
	scale := float64(maxTextureDim) / float64(w)
	if h > w {
		scale = float64(maxTextureDim) / float64(h)
	}
	dst := image.NewRGBA(image.Rect(0, 0, int(float64(w)*scale), int(float64(h)*scale)))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)
	return dst
}

// describeDecodeError sniffs the file header so the user message names the
// actual file type instead of a generic decode failure.
func describeDecodeError(f *os.File, err error) error {
	head := make([]byte, 261)
	if _, serr := f.ReadAt(head, 0); serr != nil && serr != io.ErrUnexpectedEOF && serr != io.EOF {
		return err
	}
	kind, kerr := filetype.Match(head)
	if kerr != nil || kind == filetype.Unknown {
		return err
	}
	return fmt.Errorf("unsupported image format %q: %w", kind.Extension, err)
}
