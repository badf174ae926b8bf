package remote

import (
	"sync"

	"github.com/iamFear/mapty/internal/controller"
)

const firstField = "distance"

// Form buffers the values the client last submitted. The controller reads
// them back through FieldValues during Submit.
type Form struct {
	ch Channel

	mu     sync.Mutex
	values controller.FieldValues
}

func NewForm(ch Channel) *Form {
	return &Form{ch: ch, values: controller.FieldValues{Type: "running"}}
}

// SetValues replaces the buffered inputs.
func (f *Form) SetValues(v controller.FieldValues) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values = v
}

func (f *Form) FieldValues() controller.FieldValues {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.values
}

func (f *Form) SetFieldsVisible(visible bool) {
	f.ch.emit(CmdFormVisible, map[string]bool{"visible": visible})
}

func (f *Form) FocusFirstField() {
	f.ch.emit(CmdFormFocus, map[string]string{"field": firstField})
}

// ClearFields empties the numeric inputs. The selected type is kept.
func (f *Form) ClearFields() {
	f.mu.Lock()
	f.values = controller.FieldValues{Type: f.values.Type}
	f.mu.Unlock()
	f.ch.emit(CmdFormClear, struct{}{})
}

func (f *Form) SetFieldGroups(groups controller.FieldGroups) {
	f.ch.emit(CmdFormGroups, groups)
}
