package order

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

var orderNumberPattern = regexp.MustCompile(`^ORD-[0-9A-Z]+-[0-9A-Z]{4}$`)

func TestGenerateOrderNumber_Format(t *testing.T) {
	for i := 0; i < 100; i++ {
		no := GenerateOrderNumber()
		assert.Regexp(t, orderNumberPattern, no)
	}
}

func TestGenerateOrderNumber_Uniqueness(t *testing.T) {
	// 随机后缀只有4位,但同一毫秒内冲突已经极小;
	// 这里验证批量生成不出现成片重复
	seen := make(map[string]bool)
	dups := 0
	for i := 0; i < 1000; i++ {
		no := GenerateOrderNumber()
		if seen[no] {
			dups++
		}
		seen[no] = true
	}
	assert.LessOrEqual(t, dups, 2)
}
