package editor

import (
	"fmt"

	"github.com/ByLCY/imagemark/script"
)

// ApplyScript parses a batch annotation script, appends the resulting
// objects to the session and commits exactly one history entry. The editor's
// current style supplies the defaults; data feeds ${path} interpolation in
// text bodies. Objects failing the validity predicate are skipped silently.
func (e *Editor) ApplyScript(src string, data any) error {
	if e.destroyed {
		return fmt.Errorf("应用脚本: 编辑器已销毁")
	}
	objs, err := script.Objects(src, data, script.Defaults{
		Color:       e.color,
		StrokeWidth: e.strokeWidth,
		FontSize:    e.fontSize,
	})
	if err != nil {
		return err
	}
	added := 0
	for _, o := range objs {
		if !o.Committable() {
			continue
		}
		e.objects = append(e.objects, o)
		added++
	}
	if added == 0 {
		return nil
	}
	e.render()
	e.commit()
	return nil
}
