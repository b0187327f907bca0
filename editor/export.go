package editor

import (
	"encoding/base64"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/ByLCY/imagemark/object"
)

// Export re-renders the object model and encodes the surface verbatim.
// quality is in (0,1] and only affects lossy formats.
func (e *Editor) Export(format string, quality float64) ([]byte, error) {
	if e.destroyed {
		return nil, fmt.Errorf("导出: 编辑器已销毁")
	}
	e.render()
	return e.s.Encode(format, quality)
}

// ExportDataURI encodes the surface and wraps it as a base64 data URI.
func (e *Editor) ExportDataURI(format string, quality float64) (string, error) {
	data, err := e.Export(format, quality)
	if err != nil {
		return "", err
	}
	mime := "image/png"
	switch strings.ToLower(format) {
	case "jpg", "jpeg", "image/jpeg":
		mime = "image/jpeg"
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

// TextAnnotation describes one committed text object for translation
// tooling.
type TextAnnotation struct {
	ID       string
	Text     string
	X, Y     float64
	Color    string
	FontSize float64
}

// ensureID 惰性分配文本对象的稳定标识，对象存活期间保持不变。
func (e *Editor) ensureID(o *object.Object) {
	if o.ID != "" {
		return
	}
	e.idSeq++
	o.ID = "t" + strconv.Itoa(e.idSeq)
}

// TextAnnotations lists the committed text objects, assigning stable
// identifiers on first read.
func (e *Editor) TextAnnotations() []TextAnnotation {
	var out []TextAnnotation
	for _, o := range e.objects {
		if o.Kind != object.Text {
			continue
		}
		e.ensureID(o)
		out = append(out, TextAnnotation{
			ID:       o.ID,
			Text:     o.Text,
			X:        o.X,
			Y:        o.Y,
			Color:    o.Color,
			FontSize: o.FontSize,
		})
	}
	return out
}

// SetTranslations installs (or replaces) the identifier→string map for a
// language. Translation maps live outside history and survive undo/redo.
func (e *Editor) SetTranslations(lang string, m map[string]string) {
	if lang == "" {
		return
	}
	cp := make(map[string]string, len(m))
	for k, v := range m {
		cp[k] = v
	}
	e.translations[lang] = cp
}

// Translations returns a copy of the map for lang, or nil when absent.
func (e *Editor) Translations(lang string) map[string]string {
	m, ok := e.translations[lang]
	if !ok {
		return nil
	}
	cp := make(map[string]string, len(m))
	for k, v := range m {
		cp[k] = v
	}
	return cp
}

// AvailableTranslations lists the known language codes in sorted order.
func (e *Editor) AvailableTranslations() []string {
	langs := make([]string, 0, len(e.translations))
	for lang := range e.translations {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	return langs
}

// ClearTranslations removes the named language maps, or every map when
// called without arguments.
func (e *Editor) ClearTranslations(langs ...string) {
	if len(langs) == 0 {
		e.translations = make(map[string]map[string]string)
		return
	}
	for _, lang := range langs {
		delete(e.translations, lang)
	}
}

// ExportWithTranslations temporarily substitutes every mapped text object's
// content, encodes, then restores the originals and re-renders, leaving the
// live state pixel-identical to before the call. ok is false when no map
// exists for lang.
func (e *Editor) ExportWithTranslations(lang, format string, quality float64) ([]byte, bool, error) {
	if e.destroyed {
		return nil, false, fmt.Errorf("翻译导出: 编辑器已销毁")
	}
	m, known := e.translations[lang]
	if !known {
		return nil, false, nil
	}
	originals := make(map[*object.Object]string)
	for _, o := range e.objects {
		if o.Kind != object.Text {
			continue
		}
		e.ensureID(o)
		if tr, ok := m[o.ID]; ok {
			originals[o] = o.Text
			o.Text = tr
		}
	}
	e.render()
	data, err := e.s.Encode(format, quality)
	for o, text := range originals {
		o.Text = text
	}
	e.render()
	if err != nil {
		return nil, true, fmt.Errorf("编码翻译导出失败: %w", err)
	}
	return data, true, nil
}

// ExportAllVersions exports the plain rendering under the key "original"
// plus one entry per known language.
func (e *Editor) ExportAllVersions(format string, quality float64) (map[string][]byte, error) {
	plain, err := e.Export(format, quality)
	if err != nil {
		return nil, err
	}
	out := map[string][]byte{"original": plain}
	for _, lang := range e.AvailableTranslations() {
		data, ok, err := e.ExportWithTranslations(lang, format, quality)
		if err != nil {
			return nil, err
		}
		if ok {
			out[lang] = data
		}
	}
	return out, nil
}
