package intake

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var (
	ErrUnsupportedType = errors.New("unsupported media type")
	ErrEmptyMedia      = errors.New("empty media")
)

const genericMIME = "application/octet-stream"

var mimeByExt = map[string]string{
	".mp3":  "audio/mpeg",
	".wav":  "audio/wav",
	".m4a":  "audio/mp4",
	".flac": "audio/flac",
	".ogg":  "audio/ogg",
	".mp4":  "video/mp4",
	".mov":  "video/quicktime",
	".webm": "video/webm",
}

// Media is one uploaded recording. It is not modified after New returns.
type Media struct {
	Filename string
	MIMEType string
	Data     []byte
}

// Validator checks recordings against an extension allow-list.
type Validator struct {
	allowed map[string]struct{}
}

// NewValidator builds a Validator from extensions such as ".mp3".
func NewValidator(extensions []string) *Validator {
	allowed := make(map[string]struct{}, len(extensions))
	for _, ext := range extensions {
		allowed[strings.ToLower(ext)] = struct{}{}
	}
	return &Validator{allowed: allowed}
}

// Allowed reports whether the file name carries an accepted extension.
func (v *Validator) Allowed(name string) bool {
	_, ok := v.allowed[strings.ToLower(filepath.Ext(name))]
	return ok
}

// New validates an upload and returns the Media for it.
// declaredMIME may be empty, in which case it is derived from the extension.
func (v *Validator) New(filename, declaredMIME string, data []byte) (Media, error) {
	filename = filepath.Base(strings.TrimSpace(filename))
	if filename == "" || filename == "." || filename == string(filepath.Separator) {
		return Media{}, fmt.Errorf("%w: missing filename", ErrUnsupportedType)
	}
	if !v.Allowed(filename) {
		return Media{}, fmt.Errorf("%w: %s", ErrUnsupportedType, filepath.Ext(filename))
	}
	if len(data) == 0 {
		return Media{}, fmt.Errorf("%w: %s", ErrEmptyMedia, filename)
	}

	return Media{
		Filename: filename,
		MIMEType: resolveMIME(filename, declaredMIME),
		Data:     data,
	}, nil
}

// FromFile reads a local recording and validates it.
func (v *Validator) FromFile(path string) (Media, error) {
	if !v.Allowed(path) {
		return Media{}, fmt.Errorf("%w: %s", ErrUnsupportedType, filepath.Ext(path))
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Media{}, fmt.Errorf("read media: %w", err)
	}
	return v.New(filepath.Base(path), "", data)
}

func resolveMIME(filename, declared string) string {
	declared = strings.TrimSpace(declared)
	if declared != "" && declared != genericMIME {
		return declared
	}
	if m, ok := mimeByExt[strings.ToLower(filepath.Ext(filename))]; ok {
		return m
	}
	return genericMIME
}
