// Package history 实现线性撤销/重做快照栈。
package history

import "github.com/ByLCY/imagemark/object"

// Entry 是一次提交时刻的不可变深拷贝：对象列表、图像编码源与表面像素尺寸。
type Entry struct {
	Objects []*object.Object
	Image   []byte
	Width   int
	Height  int
}

// Stack 维护线性历史与当前游标。游标不在末尾时提交新条目会
// 截断其后的全部条目（标准线性撤销不变式：重做分支被丢弃）。
type Stack struct {
	entries []*Entry
	cursor  int // 当前条目下标；-1 表示空栈
}

// New 返回一个空历史栈。
func New() *Stack {
	return &Stack{cursor: -1}
}

// Push 深拷贝对象列表并连同图像编码与尺寸追加为新条目，游标随之前移。
func (s *Stack) Push(objs []*object.Object, img []byte, w, h int) {
	e := &Entry{
		Objects: object.CloneList(objs),
		Image:   append([]byte(nil), img...),
		Width:   w,
		Height:  h,
	}
	s.entries = append(s.entries[:s.cursor+1], e)
	s.cursor = len(s.entries) - 1
}

// CanUndo 报告游标是否可以后退。
func (s *Stack) CanUndo() bool {
	return s.cursor > 0
}

// CanRedo 报告游标是否可以前进。
func (s *Stack) CanRedo() bool {
	return s.cursor >= 0 && s.cursor < len(s.entries)-1
}

// Undo 后退游标并返回应恢复的条目；位于首条目时为无操作。
func (s *Stack) Undo() (*Entry, bool) {
	if !s.CanUndo() {
		return nil, false
	}
	s.cursor--
	return s.entries[s.cursor], true
}

// Redo 前进游标并返回应恢复的条目；位于末条目时为无操作。
func (s *Stack) Redo() (*Entry, bool) {
	if !s.CanRedo() {
		return nil, false
	}
	s.cursor++
	return s.entries[s.cursor], true
}

// Current 返回游标所指条目。
func (s *Stack) Current() (*Entry, bool) {
	if s.cursor < 0 {
		return nil, false
	}
	return s.entries[s.cursor], true
}

// Len 返回条目总数。
func (s *Stack) Len() int {
	return len(s.entries)
}
