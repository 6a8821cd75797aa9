package scenes

import (
	"unicode"
)

// nameInput 结束界面的名字输入框
type nameInput struct {
	runes []rune
	max   int
}

func newNameInput(initial string, max int) *nameInput {
	n := &nameInput{max: max}
	n.Insert([]rune(initial))
	return n
}

// Insert 追加可打印字符，超出长度的部分丢弃
func (n *nameInput) Insert(rs []rune) {
	for _, r := range rs {
		if len(n.runes) >= n.max {
			return
		}
		if !unicode.IsPrint(r) {
			continue
		}
		n.runes = append(n.runes, r)
	}
}

// Backspace 删除最后一个字符
func (n *nameInput) Backspace() {
	if len(n.runes) > 0 {
		n.runes = n.runes[:len(n.runes)-1]
	}
}

func (n *nameInput) String() string {
	return string(n.runes)
}
