package media

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"snail/internal/logging"
	"snail/internal/textutil"
)

// providerDomains maps a sidecar source to the domain used in attributions.
var providerDomains = map[string]string{
	"unsplash": "unsplash.com",
}

// Sidecar is the metadata stored next to a downloaded image.
type Sidecar struct {
	Author string `json:"author"`
	Source string `json:"source"`
}

// Assets are the media references of one record.
type Assets struct {
	Slug        string
	AudioPath   string // empty when the audio file is missing
	ImagePath   string // empty when the image file is missing
	Sound       string // [sound:file] reference or ""
	Image       string // <img> reference or ""
	Attribution string
}

// Files returns the on-disk paths that must be embedded in a package.
func (a Assets) Files() []string {
	var files []string
	if a.AudioPath != "" {
		files = append(files, a.AudioPath)
	}
	if a.ImagePath != "" {
		files = append(files, a.ImagePath)
	}
	return files
}

// Resolver locates media for records of one target language.
type Resolver struct {
	AudioDir  string
	ImagesDir string
	AudioExt  string
	ImageExt  string
	Logger    *slog.Logger
	// Exists reports whether a regular file is present; defaults to an os.Stat check.
	Exists func(path string) bool
}

// NewResolver returns a resolver with the default extensions and file check.
func NewResolver(audioDir, imagesDir string, logger *slog.Logger) *Resolver {
	return &Resolver{
		AudioDir:  audioDir,
		ImagesDir: imagesDir,
		AudioExt:  "mp3",
		ImageExt:  "jpg",
		Logger:    logging.NewComponentLogger(logger, "media"),
		Exists:    fileExists,
	}
}

// Resolve returns the media references for a record key and its English lemma.
func (r *Resolver) Resolve(key, lemma string) Assets {
	slug := textutil.Slugify(lemma)
	assets := Assets{Slug: slug}

	audioFile := withExt(key, r.AudioExt, "mp3")
	audioPath := filepath.Join(r.AudioDir, audioFile)
	if key != "" && r.exists(audioPath) {
		assets.AudioPath = audioPath
		assets.Sound = fmt.Sprintf("[sound:%s]", audioFile)
	} else {
		logging.WarnWithContext(r.logger(), "audio file not found", "media_audio_missing",
			logging.Path(audioPath),
			logging.String("key", key),
			logging.Hint("generate pronunciation audio for this record"),
			logging.Impact("card will have no sound"),
		)
	}

	imageFile := withExt(slug, r.ImageExt, "jpg")
	imagePath := filepath.Join(r.ImagesDir, imageFile)
	if r.exists(imagePath) {
		assets.ImagePath = imagePath
		assets.Image = fmt.Sprintf(`<img src="%s">`, imageFile)
	} else {
		logging.WarnWithContext(r.logger(), "image file not found", "media_image_missing",
			logging.Path(imagePath),
			logging.String("slug", slug),
			logging.Hint("fetch an image for this concept"),
			logging.Impact("card will have no image"),
		)
	}

	assets.Attribution = r.Attribution(slug)
	return assets
}

// Attribution reads {images_dir}/{slug}.json and returns "{domain}/@{author}"
// for a recognized provider. Any other outcome yields "".
func (r *Resolver) Attribution(slug string) string {
	path := filepath.Join(r.ImagesDir, slug+".json")
	if !r.exists(path) {
		return ""
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	var meta Sidecar
	if err := json.Unmarshal(data, &meta); err != nil {
		r.logger().Debug("image sidecar unreadable", logging.Path(path), logging.Error(err))
		return ""
	}
	domain, ok := providerDomains[meta.Source]
	if !ok || strings.TrimSpace(meta.Author) == "" {
		return ""
	}
	return domain + "/@" + meta.Author
}

func (r *Resolver) exists(path string) bool {
	if r.Exists != nil {
		return r.Exists(path)
	}
	return fileExists(path)
}

func (r *Resolver) logger() *slog.Logger {
	if r.Logger == nil {
		return logging.NewNop()
	}
	return r.Logger
}

func withExt(name, ext, fallback string) string {
	ext = strings.TrimPrefix(strings.TrimSpace(ext), ".")
	if ext == "" {
		ext = fallback
	}
	return name + "." + ext
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
